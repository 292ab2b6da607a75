package gocube

// SignatureSet remembers the signatures of expanded cube states.
//
// The search only ever adds to the set, so its size grows for the whole life
// of one search regardless of how much of the tree has been pruned.
type SignatureSet interface {
	Contains(signature string) (bool, error)
	Add(signature string) error
	Len() int
}

// MemorySet is a SignatureSet held in a Go map.
type MemorySet struct {
	seen map[string]struct{}
}

// NewMemorySet creates an empty in-memory signature set.
func NewMemorySet() *MemorySet {
	return &MemorySet{seen: make(map[string]struct{})}
}

// Contains reports whether signature has been added.
func (s *MemorySet) Contains(signature string) (bool, error) {
	_, ok := s.seen[signature]
	return ok, nil
}

// Add records signature.
func (s *MemorySet) Add(signature string) error {
	s.seen[signature] = struct{}{}
	return nil
}

// Len returns the number of recorded signatures.
func (s *MemorySet) Len() int {
	return len(s.seen)
}
