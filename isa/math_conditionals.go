package isa

// MathConditionals returns the arithmetic test module. Comparison tests
// destructively consume the top two values (top compared against second);
// single-value tests consume one. Reads are underflow-safe, so a test
// against a short stack sees zeros rather than faulting.
//
// The while forms are loop conditionals: a terminator closing one jumps
// back to it and the test runs again. whileZero and whileNotZero peek
// instead of popping, so a loop body can work on the tested value without
// having to re-push operands every iteration.
func MathConditionals() *Table {
	t := New()
	t.Register(cond("ifEqual", func(m Machine) bool {
		a, b := m.Pop2()
		return a == b
	}))
	t.Register(cond("ifUnequal", func(m Machine) bool {
		a, b := m.Pop2()
		return a != b
	}))
	t.Register(cond("ifGreaterThan", func(m Machine) bool {
		a, b := m.Pop2()
		return a > b
	}))
	t.Register(cond("ifLessThan", func(m Machine) bool {
		a, b := m.Pop2()
		return a < b
	}))
	t.Register(cond("ifZero", func(m Machine) bool {
		return m.Pop() == 0
	}))
	t.Register(cond("ifNotZero", func(m Machine) bool {
		return m.Pop() != 0
	}))
	t.Register(cond("ifEven", func(m Machine) bool {
		return m.Pop()&1 == 0
	}))
	t.Register(cond("ifOdd", func(m Machine) bool {
		return m.Pop()&1 != 0
	}))
	t.Register(loop("whileEqual", func(m Machine) bool {
		a, b := m.Pop2()
		return a == b
	}))
	t.Register(loop("whileUnequal", func(m Machine) bool {
		a, b := m.Pop2()
		return a != b
	}))
	t.Register(loop("whileGreaterThan", func(m Machine) bool {
		a, b := m.Pop2()
		return a > b
	}))
	t.Register(loop("whileLessThan", func(m Machine) bool {
		a, b := m.Pop2()
		return a < b
	}))
	t.Register(loop("whileZero", func(m Machine) bool {
		return m.Peek() == 0
	}))
	t.Register(loop("whileNotZero", func(m Machine) bool {
		return m.Peek() != 0
	}))
	return t
}
