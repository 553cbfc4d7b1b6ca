package isa

// TuringOps returns the dual-stack operator module. The two stacks form the
// tape of a Turing-style machine; one is active at a time and all other
// instructions work against the active one.
func TuringOps() *Table {
	t := New()
	t.Register(op("toggleStacks", 0, func(m Machine) {
		m.ToggleStack()
	}))
	// switchStack selects the stack named by the top of the current
	// stack, even or odd.
	t.Register(op("switchStack", 1, func(m Machine) {
		m.SelectStack(m.Pop())
	}))
	// shiftStacks moves the top of the inactive stack onto the active
	// one. An empty inactive stack shifts a zero.
	t.Register(op("shiftStacks", 0, func(m Machine) {
		m.Push(m.PopInactive())
	}))
	t.Register(op("activeStackNum", 0, func(m Machine) {
		m.Push(m.ActiveStack())
	}))
	return t
}
