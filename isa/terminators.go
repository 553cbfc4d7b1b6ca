package isa

// Terminators returns the terminator module. There is exactly one: end.
// A terminator carries no behavior of its own; the machine derives its
// effect from the branch table.
func Terminators() *Table {
	t := New()
	t.Register(endInstruction)
	return t
}
