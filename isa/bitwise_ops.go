package isa

// BitwiseOps returns the bitwise operator module. The shift operators move
// two bit positions at a time; the right shift is arithmetic.
func BitwiseOps() *Table {
	t := New()
	t.Register(op("bitAnd", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(a & b)
	}))
	t.Register(op("bitOr", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(a | b)
	}))
	t.Register(op("bitXor", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(a ^ b)
	}))
	t.Register(op("bitShiftLeft", 1, func(m Machine) {
		m.Push(m.Pop() << 2)
	}))
	t.Register(op("bitShiftRight", 1, func(m Machine) {
		m.Push(m.Pop() >> 2)
	}))
	return t
}
