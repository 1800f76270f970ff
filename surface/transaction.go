// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/transaction.go
// Summary: Transaction accumulates pending surface operations for one atomic commit.
// Usage: Built up by the window-manager lock domain or the animation goroutine,
// then flushed to a Compositor with Apply.
// Notes: Not safe for concurrent use; each transaction belongs to exactly one
// scheduling domain at a time.

package surface

// OpKind identifies a single compositor operation.
type OpKind int

const (
	OpShow OpKind = iota
	OpHide
	OpSetAlpha
	OpSetPosition
	OpSetSize
	OpSetCrop
	OpClearCrop
	OpSetMatrix
	OpSetLayer
	OpSetRelativeLayer
	OpReparent
)

func (k OpKind) String() string {
	switch k {
	case OpShow:
		return "Show"
	case OpHide:
		return "Hide"
	case OpSetAlpha:
		return "SetAlpha"
	case OpSetPosition:
		return "SetPosition"
	case OpSetSize:
		return "SetSize"
	case OpSetCrop:
		return "SetCrop"
	case OpClearCrop:
		return "ClearCrop"
	case OpSetMatrix:
		return "SetMatrix"
	case OpSetLayer:
		return "SetLayer"
	case OpSetRelativeLayer:
		return "SetRelativeLayer"
	case OpReparent:
		return "Reparent"
	default:
		return "UnknownOp"
	}
}

// Rect is a crop or bounds rectangle in parent coordinates.
type Rect struct {
	X, Y, W, H int
}

// Matrix is a 2x2 transform applied to a surface's content.
type Matrix struct {
	ScaleX, SkewX float32
	SkewY, ScaleY float32
}

// Identity is the no-op transform.
var Identity = Matrix{ScaleX: 1, ScaleY: 1}

// Op is one accumulated compositor operation. Only the fields relevant to
// Kind are meaningful.
type Op struct {
	Kind   OpKind
	Target *Surface

	Alpha    float32
	X, Y     int
	W, H     int
	Crop     Rect
	Matrix   Matrix
	Layer    int
	Relative *Surface // sibling for SetRelativeLayer, new parent for Reparent
}

// Transaction batches surface operations so they land in one compositor
// frame. Apply submits everything atomically and resets the buffer, so a
// transaction can be reused frame after frame.
type Transaction struct {
	ops       []Op
	committed []func()
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Empty reports whether the transaction holds no pending work.
func (t *Transaction) Empty() bool {
	return len(t.ops) == 0 && len(t.committed) == 0
}

// PendingOps returns the number of accumulated operations.
func (t *Transaction) PendingOps() int {
	return len(t.ops)
}

func (t *Transaction) Show(s *Surface) {
	t.ops = append(t.ops, Op{Kind: OpShow, Target: s})
}

func (t *Transaction) Hide(s *Surface) {
	t.ops = append(t.ops, Op{Kind: OpHide, Target: s})
}

func (t *Transaction) SetAlpha(s *Surface, alpha float32) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	t.ops = append(t.ops, Op{Kind: OpSetAlpha, Target: s, Alpha: alpha})
}

func (t *Transaction) SetPosition(s *Surface, x, y int) {
	t.ops = append(t.ops, Op{Kind: OpSetPosition, Target: s, X: x, Y: y})
}

func (t *Transaction) SetSize(s *Surface, w, h int) {
	t.ops = append(t.ops, Op{Kind: OpSetSize, Target: s, W: w, H: h})
}

func (t *Transaction) SetCrop(s *Surface, crop Rect) {
	t.ops = append(t.ops, Op{Kind: OpSetCrop, Target: s, Crop: crop})
}

func (t *Transaction) ClearCrop(s *Surface) {
	t.ops = append(t.ops, Op{Kind: OpClearCrop, Target: s})
}

func (t *Transaction) SetMatrix(s *Surface, m Matrix) {
	t.ops = append(t.ops, Op{Kind: OpSetMatrix, Target: s, Matrix: m})
}

func (t *Transaction) SetLayer(s *Surface, layer int) {
	t.ops = append(t.ops, Op{Kind: OpSetLayer, Target: s, Layer: layer})
}

// SetRelativeLayer stacks s relative to sibling: positive offsets above,
// negative below.
func (t *Transaction) SetRelativeLayer(s, sibling *Surface, offset int) {
	t.ops = append(t.ops, Op{Kind: OpSetRelativeLayer, Target: s, Relative: sibling, Layer: offset})
}

// Reparent moves s under newParent. A nil newParent detaches the surface
// from the hierarchy (used when tearing a leash down).
func (t *Transaction) Reparent(s, newParent *Surface) {
	t.ops = append(t.ops, Op{Kind: OpReparent, Target: s, Relative: newParent})
}

// AddCommittedListener registers fn to run exactly once, after the
// compositor confirms the frame containing this transaction's operations.
func (t *Transaction) AddCommittedListener(fn func()) {
	t.committed = append(t.committed, fn)
}

// Merge drains other into t. Operations keep their order (t's first),
// committed listeners move over too, and other is left empty.
func (t *Transaction) Merge(other *Transaction) {
	if other == nil || other == t {
		return
	}
	t.ops = append(t.ops, other.ops...)
	t.committed = append(t.committed, other.committed...)
	other.ops = nil
	other.committed = nil
}

// Apply submits all accumulated operations atomically to the compositor and
// resets the buffer. Operations targeting released surfaces are dropped
// here: an animation racing a container teardown must not fault, it simply
// stops having an effect.
func (t *Transaction) Apply(c Compositor) {
	if t.Empty() {
		return
	}
	ops := t.ops
	committed := t.committed
	t.ops = nil
	t.committed = nil

	live := ops[:0]
	for _, op := range ops {
		if !op.Target.Valid() {
			continue
		}
		live = append(live, op)
	}
	c.Submit(live, committed)
}
