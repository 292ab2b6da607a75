// Package expanded provides a disk-backed set of expanded cube signatures
// for searches whose transposition set would not fit in memory.
package expanded

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// keyPrefix namespaces signature keys inside the database.
var keyPrefix = []byte("sig/")

// Config configures a BadgerSet.
type Config struct {
	// Dir is the database directory. Required unless InMemory is set.
	Dir string

	// InMemory keeps the whole set in memory. Used by tests.
	InMemory bool

	// Reset drops signatures left over from a previous search in Dir.
	Reset bool

	// Logger receives badger's internal messages. Nil disables them.
	Logger *slog.Logger
}

// InMemoryConfig returns a configuration for a throwaway in-memory set.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerSet is a gocube.SignatureSet stored in BadgerDB.
//
// Each signature is a key with an empty value. The size is tracked in
// process and recounted from the database on open.
type BadgerSet struct {
	db  *badger.DB
	len int
}

// Open opens (or creates) a signature set.
func Open(cfg Config) (*BadgerSet, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, errors.New("directory is required for persistent signature set")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("create signature set directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	// Losing the tail of the set on a crash only costs repeated work.
	opts = opts.WithSyncWrites(false).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open signature set: %w", err)
	}

	s := &BadgerSet{db: db}

	if cfg.Reset {
		if err := db.DropPrefix(keyPrefix); err != nil {
			db.Close()
			return nil, fmt.Errorf("reset signature set: %w", err)
		}
	}

	if err := s.recount(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *BadgerSet) recount() error {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = keyPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("count signatures: %w", err)
	}
	s.len = n
	return nil
}

func signatureKey(signature string) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(signature))
	key = append(key, keyPrefix...)
	return append(key, signature...)
}

// Contains reports whether signature has been added.
func (s *BadgerSet) Contains(signature string) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(signatureKey(signature))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("lookup signature: %w", err)
	}
	return found, nil
}

// Add records signature. Adding a signature twice is a no-op.
func (s *BadgerSet) Add(signature string) error {
	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := signatureKey(signature)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return fmt.Errorf("store signature: %w", err)
	}
	if added {
		s.len++
	}
	return nil
}

// Len returns the number of recorded signatures.
func (s *BadgerSet) Len() int {
	return s.len
}

// Close closes the underlying database.
func (s *BadgerSet) Close() error {
	return s.db.Close()
}
