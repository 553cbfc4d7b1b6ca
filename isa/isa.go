// Package isa defines the instruction table that genotypes decode against.
//
// The table is a total function from bit patterns to instructions: every
// 32-bit slot maps to exactly one literal, operator, conditional, or
// terminator. There is no invalid encoding, which is what lets the machine
// run arbitrary bit strings without an error path.
package isa

// Value is the single numeric type all instructions operate on. Arithmetic
// wraps on overflow; nothing an instruction does to a Value can fault.
type Value int64

// Kind classifies a decoded instruction. The four kinds are closed: machine
// dispatch switches over them exhaustively with no error arm.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindOperator
	KindConditional
	KindTerminator
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindOperator:
		return "operator"
	case KindConditional:
		return "conditional"
	case KindTerminator:
		return "terminator"
	}
	return "unknown"
}

// Machine is the facility surface instruction bodies run against. All reads
// are underflow-safe: popping or peeking an empty stack yields 0, never an
// error. The vm package provides the implementation; instructions stay
// decoupled from it so the table can be composed and inspected on its own.
type Machine interface {
	Push(v Value)
	Pop() Value
	Pop2() (top, under Value)
	Peek() Value
	Peek2() (top, under Value)
	Depth() int
	Clear()

	// Register file. Indices wrap modulo the register count.
	LoadRegister(n Value) Value
	StoreRegister(n Value, v Value)

	// Dual-stack facility. Every machine carries two stacks; the plain
	// stack machine simply never toggles away from the first.
	ToggleStack()
	SelectStack(n Value)
	ActiveStack() Value
	PopInactive() Value
}

// Instruction is one table entry. Entries are immutable once registered and
// may be shared between tables.
type Instruction struct {
	// Name is the vocabulary word shown by the disassembler and used to
	// compose tables from manifests.
	Name string

	// Kind is KindOperator, KindConditional, or KindTerminator. Literals
	// are not table entries; they are encoded directly in the slot.
	Kind Kind

	// Arity is the number of operands an operator consumes. An operator
	// whose arity exceeds the current stack depth is skipped outright:
	// the pointer advances and the stack is untouched.
	Arity int

	// Cost is accounting metadata summed into run metrics.
	Cost float64

	// Apply performs an operator's effect. It runs only when the stack
	// holds at least Arity values.
	Apply func(Machine)

	// Test evaluates a conditional's predicate.
	Test func(Machine) bool

	// Loop marks a conditional whose closing terminator jumps back to it
	// instead of falling through.
	Loop bool
}

func op(name string, arity int, apply func(Machine)) *Instruction {
	return &Instruction{Name: name, Kind: KindOperator, Arity: arity, Cost: 1, Apply: apply}
}

func cond(name string, test func(Machine) bool) *Instruction {
	return &Instruction{Name: name, Kind: KindConditional, Cost: 1, Test: test}
}

func loop(name string, test func(Machine) bool) *Instruction {
	return &Instruction{Name: name, Kind: KindConditional, Cost: 1, Test: test, Loop: true}
}

// Decoded is the outcome of decoding one slot. Exactly one of the two
// payloads is meaningful: Value for literals, Inst for everything else.
type Decoded struct {
	Kind  Kind
	Value Value
	Inst  *Instruction
}
