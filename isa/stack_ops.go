package isa

// StackOps returns the stack-manipulation operator module.
func StackOps() *Table {
	t := New()
	t.Register(op("pop", 1, func(m Machine) {
		m.Pop()
	}))
	t.Register(op("dup", 1, func(m Machine) {
		m.Push(m.Peek())
	}))
	t.Register(op("dup2", 2, func(m Machine) {
		a, b := m.Peek2()
		m.Push(b)
		m.Push(a)
	}))
	t.Register(op("swap", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(a)
		m.Push(b)
	}))
	// shuffle rotates the third-from-top element to the top: c b a -> b a c.
	t.Register(op("shuffle", 3, func(m Machine) {
		a, b := m.Pop2()
		c := m.Pop()
		m.Push(b)
		m.Push(a)
		m.Push(c)
	}))
	t.Register(op("clear", 0, func(m Machine) {
		m.Clear()
	}))
	// stackSize pushes the depth as observed before the push.
	t.Register(op("stackSize", 0, func(m Machine) {
		m.Push(Value(m.Depth()))
	}))
	return t
}
