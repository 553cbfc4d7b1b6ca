package isa

import "fmt"

// RegisterOps returns the register-machine operator module: generic
// load/store addressed through the stack, plus one dedicated load and
// store per register. Register indices wrap modulo the machine's register
// count, so any index is valid.
func RegisterOps(numRegisters int) *Table {
	t := New()
	t.Register(op("getRegister", 1, func(m Machine) {
		m.Push(m.LoadRegister(m.Pop()))
	}))
	// setRegister pops the register index first, then the value to store.
	t.Register(op("setRegister", 2, func(m Machine) {
		a, b := m.Pop2()
		m.StoreRegister(a, b)
	}))
	for n := 0; n < numRegisters; n++ {
		n := n
		t.Register(op(fmt.Sprintf("setRegister%d", n), 1, func(m Machine) {
			m.StoreRegister(Value(n), m.Pop())
		}))
	}
	for n := 0; n < numRegisters; n++ {
		n := n
		t.Register(op(fmt.Sprintf("getRegister%d", n), 0, func(m Machine) {
			m.Push(m.LoadRegister(Value(n)))
		}))
	}
	return t
}
