package effectchain

// Selection is the set of effects to apply to one job, at most one per
// Kind. The zero value selects nothing; the chain then only normalizes.
type Selection struct {
	slots [numKinds]Effect
}

// NewSelection returns a selection holding the given effects. A later
// effect of the same kind replaces an earlier one.
func NewSelection(fx ...Effect) Selection {
	var s Selection
	for _, e := range fx {
		s.Set(e)
	}

	return s
}

// DefaultSelection returns the selection used when a job names no
// effects: low-pass at 2 kHz followed by the default reverb.
func DefaultSelection() Selection {
	return SelectionFromMask(Mask(LowPass | Reverb))
}

// SelectionFromMask selects every kind in m with default parameters.
func SelectionFromMask(m Mask) Selection {
	var s Selection

	for _, k := range m.Kinds() {
		if e, ok := DefaultEffect(k); ok {
			s.Set(e)
		}
	}

	return s
}

// Set adds e, replacing any effect of the same kind. Pointer variants are
// stored by value. Nil, including a nil variant pointer, is ignored.
func (s *Selection) Set(e Effect) {
	e, ok := byValue(e)
	if !ok {
		return
	}

	if i, ok := e.Kind().index(); ok {
		s.slots[i] = e
	}
}

func byValue(e Effect) (Effect, bool) {
	switch v := e.(type) {
	case nil:
		return nil, false
	case *LowPassEffect:
		return derefEffect(v)
	case *HighPassEffect:
		return derefEffect(v)
	case *ReverbEffect:
		return derefEffect(v)
	case *EchoEffect:
		return derefEffect(v)
	case *PitchShiftEffect:
		return derefEffect(v)
	case *DistortionEffect:
		return derefEffect(v)
	}

	return e, true
}

func derefEffect[T Effect](p *T) (Effect, bool) {
	if p == nil {
		return nil, false
	}

	return *p, true
}

// Remove drops the effect of kind k, if any.
func (s *Selection) Remove(k Kind) {
	if i, ok := k.index(); ok {
		s.slots[i] = nil
	}
}

// Effect returns the selected effect of kind k.
func (s Selection) Effect(k Kind) (Effect, bool) {
	i, ok := k.index()
	if !ok || s.slots[i] == nil {
		return nil, false
	}

	return s.slots[i], true
}

// Mask returns the selected kinds as a bit set.
func (s Selection) Mask() Mask {
	var m Mask

	for i, e := range s.slots {
		if e != nil {
			m |= Mask(Order[i])
		}
	}

	return m
}

// Effects returns the selected effects in evaluation order.
func (s Selection) Effects() []Effect {
	var out []Effect

	for _, e := range s.slots {
		if e != nil {
			out = append(out, e)
		}
	}

	return out
}

// Names returns the wire names of the selected kinds in evaluation order.
func (s Selection) Names() []string {
	kinds := s.Mask().Kinds()
	out := make([]string, len(kinds))

	for i, k := range kinds {
		out[i] = k.String()
	}

	return out
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.Mask() == 0
}
