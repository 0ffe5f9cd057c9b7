package transform

import (
	"gonum.org/v1/gonum/mat"
)

// Sequence is an ordered composition of transforms, applied first to last.
type Sequence struct {
	steps []Transform
}

// NewSequence creates a composition that applies the given transforms in
// order.
func NewSequence(steps ...Transform) Sequence {
	return Sequence{steps: append([]Transform(nil), steps...)}
}

// Compose is shorthand for the sequence that applies a, then b.
func Compose(a, b Transform) Sequence {
	return NewSequence(a, b)
}

// Steps returns a copy of the literal step list. Nested sequences are
// preserved here and only flattened during matrix materialization.
func (s Sequence) Steps() []Transform {
	return append([]Transform(nil), s.steps...)
}

// flatten expands nested sequences into a single ordered step list.
func (s Sequence) flatten() []Transform {
	var out []Transform
	for _, st := range s.steps {
		if nested, ok := st.(Sequence); ok {
			out = append(out, nested.flatten()...)
			continue
		}
		out = append(out, st)
	}
	return out
}

func (s Sequence) Matrix(inputAxes, outputAxes []string) (*mat.Dense, error) {
	steps := s.flatten()
	cur := inputAxes
	var acc *mat.Dense
	for _, st := range steps {
		next := st.resultAxes(cur)
		m, err := st.Matrix(cur, next)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = m
		} else {
			// Right-multiply in application order: the first step's
			// matrix ends up rightmost.
			var prod mat.Dense
			prod.Mul(m, acc)
			acc = &prod
		}
		cur = next
	}
	if acc == nil {
		return Identity{}.Matrix(inputAxes, outputAxes)
	}
	if equalAxes(cur, outputAxes) {
		return acc, nil
	}
	perm, err := Identity{}.Matrix(cur, outputAxes)
	if err != nil {
		return nil, err
	}
	var prod mat.Dense
	prod.Mul(perm, acc)
	return &prod, nil
}

func (s Sequence) Inverse() (Transform, error) {
	steps := s.flatten()
	inv := make([]Transform, len(steps))
	for i, st := range steps {
		ist, err := st.Inverse()
		if err != nil {
			return nil, err
		}
		inv[len(steps)-1-i] = ist
	}
	return Sequence{steps: inv}, nil
}

func (s Sequence) Equal(other Transform) bool {
	o, ok := other.(Sequence)
	if !ok || len(s.steps) != len(o.steps) {
		return false
	}
	for i := range s.steps {
		if !s.steps[i].Equal(o.steps[i]) {
			return false
		}
	}
	return true
}

func (s Sequence) resultAxes(in []string) []string {
	cur := in
	for _, st := range s.flatten() {
		cur = st.resultAxes(cur)
	}
	return cur
}
