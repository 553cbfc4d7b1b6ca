package isa

// StackConditionals returns the stack-shape test module. All four tests
// read the depth only and consume nothing.
func StackConditionals() *Table {
	t := New()
	t.Register(cond("ifStackEmpty", func(m Machine) bool {
		return m.Depth() == 0
	}))
	t.Register(cond("ifStackNotEmpty", func(m Machine) bool {
		return m.Depth() != 0
	}))
	t.Register(loop("whileStackEmpty", func(m Machine) bool {
		return m.Depth() == 0
	}))
	// untilStackEmpty loops while data remains; counterpart to
	// whileStackEmpty.
	t.Register(loop("untilStackEmpty", func(m Machine) bool {
		return m.Depth() != 0
	}))
	return t
}
