package isa

// MathOps returns the arithmetic operator module. Binary operators consume
// the top two values and combine second-with-top; unary operators rewrite
// the top value in place. Division and modulus by zero push 0; arithmetic
// here has no failing case.
func MathOps() *Table {
	t := New()
	t.Register(op("add", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(b + a)
	}))
	t.Register(op("subtract", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(b - a)
	}))
	t.Register(op("multiply", 2, func(m Machine) {
		a, b := m.Pop2()
		m.Push(b * a)
	}))
	t.Register(op("divide", 2, func(m Machine) {
		a, b := m.Pop2()
		if a != 0 {
			m.Push(b / a)
		} else {
			m.Push(0)
		}
	}))
	t.Register(op("min", 2, func(m Machine) {
		a, b := m.Pop2()
		if a < b {
			m.Push(a)
		} else {
			m.Push(b)
		}
	}))
	t.Register(op("max", 2, func(m Machine) {
		a, b := m.Pop2()
		if a > b {
			m.Push(a)
		} else {
			m.Push(b)
		}
	}))
	t.Register(op("abs", 1, func(m Machine) {
		v := m.Pop()
		if v < 0 {
			v = -v
		}
		m.Push(v)
	}))
	t.Register(op("negate", 1, func(m Machine) {
		m.Push(-m.Pop())
	}))
	t.Register(op("inc", 1, func(m Machine) {
		m.Push(m.Pop() + 1)
	}))
	t.Register(op("dec", 1, func(m Machine) {
		m.Push(m.Pop() - 1)
	}))
	t.Register(op("mod", 2, func(m Machine) {
		a, b := m.Pop2()
		if a != 0 {
			m.Push(b % a)
		} else {
			m.Push(0)
		}
	}))
	t.Register(op("square", 1, func(m Machine) {
		v := m.Pop()
		m.Push(v * v)
	}))
	return t
}
