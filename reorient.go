package gocube

// faceTransform re-aligns a face whose reading direction changes when the
// cube is re-viewed from another side. Mirrors are applied before rotation.
type faceTransform struct {
	mirrors []EdgeRef
	rotate  int
}

func (t faceTransform) apply(f Face) Face {
	for _, edge := range t.mirrors {
		f = f.Mirror(edge)
	}
	return f.Rotate(t.rotate)
}

// placement names the current face that fills a role after reorientation.
type placement struct {
	from      FaceRef
	transform faceTransform
}

// reorientation describes one whole-cube turn that brings a face to the
// front. faces is indexed by the new role; undo is the face that has to be
// brought to the front to restore the original view.
type reorientation struct {
	faces [faceRefCount]placement
	undo  FaceRef
}

func rotated(steps int) faceTransform {
	return faceTransform{rotate: steps}
}

func mirrored(edges ...EdgeRef) faceTransform {
	return faceTransform{mirrors: edges}
}

// reorientations is indexed by the face being brought to the front.
//
// Sideways turns keep Top and Bottom in place but rotate them, since the
// border facing the new front changes. Vertical turns move Top or Bottom
// into the Back role (and vice versa), which flips the reading direction of
// that face; a double mirror about perpendicular edges compensates.
var reorientations = [faceRefCount]reorientation{
	Front: {
		undo: Front,
		faces: [faceRefCount]placement{
			Front:  {from: Front},
			Right:  {from: Right},
			Back:   {from: Back},
			Left:   {from: Left},
			Top:    {from: Top},
			Bottom: {from: Bottom},
		},
	},
	Right: {
		undo: Left,
		faces: [faceRefCount]placement{
			Front:  {from: Right},
			Right:  {from: Back},
			Back:   {from: Left},
			Left:   {from: Front},
			Top:    {from: Top, transform: rotated(1)},
			Bottom: {from: Bottom, transform: rotated(3)},
		},
	},
	Back: {
		undo: Back,
		faces: [faceRefCount]placement{
			Front:  {from: Back},
			Right:  {from: Left},
			Back:   {from: Front},
			Left:   {from: Right},
			Top:    {from: Top, transform: rotated(2)},
			Bottom: {from: Bottom, transform: rotated(2)},
		},
	},
	Left: {
		undo: Right,
		faces: [faceRefCount]placement{
			Front:  {from: Left},
			Right:  {from: Front},
			Back:   {from: Right},
			Left:   {from: Back},
			Top:    {from: Top, transform: rotated(3)},
			Bottom: {from: Bottom, transform: rotated(1)},
		},
	},
	Top: {
		undo: Bottom,
		faces: [faceRefCount]placement{
			Front:  {from: Top},
			Right:  {from: Right, transform: rotated(3)},
			Back:   {from: Bottom, transform: mirrored(EdgeTop)},
			Left:   {from: Left, transform: rotated(1)},
			Top:    {from: Back, transform: mirrored(EdgeTop, EdgeLeft)},
			Bottom: {from: Front},
		},
	},
	Bottom: {
		undo: Top,
		faces: [faceRefCount]placement{
			Front:  {from: Bottom},
			Right:  {from: Right, transform: rotated(1)},
			Back:   {from: Top, transform: mirrored(EdgeTop, EdgeLeft)},
			Left:   {from: Left, transform: rotated(3)},
			Top:    {from: Front},
			Bottom: {from: Back, transform: mirrored(EdgeBottom)},
		},
	},
}

// UndoFace returns the face that must be brought to the front to reverse
// RotateCube(target).
func UndoFace(target FaceRef) FaceRef {
	return reorientations[target].undo
}
