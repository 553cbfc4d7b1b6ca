package vm

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/stokes/schlep/isa"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("schlep.vm")

// Variant names a machine profile. It is descriptive: manifests use it to
// select table modules and register counts, but every machine carries every
// facility (both stacks, the register file) so that any table remains total
// on any machine.
type Variant uint8

const (
	VariantStack Variant = iota
	VariantRegister
	VariantTuring
)

func (v Variant) String() string {
	switch v {
	case VariantStack:
		return "stack"
	case VariantRegister:
		return "register"
	case VariantTuring:
		return "turing"
	}
	return "unknown"
}

// ParseVariant maps a profile name to its Variant. Unknown names are an
// error; this parses configuration, not genotypes.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "stack":
		return VariantStack, nil
	case "register":
		return VariantRegister, nil
	case "turing":
		return VariantTuring, nil
	}
	return VariantStack, fmt.Errorf("vm: unknown machine variant %q", s)
}

// DefaultRegisters is the register file size when Options leaves it unset.
const DefaultRegisters = 8

// Options configure a machine. The zero value is a plain stack machine
// with the default register file and no instrumentation.
type Options struct {
	Variant   Variant
	Registers int

	// TrackCoverage records which instruction indices execute.
	TrackCoverage bool

	// Trace logs every step at debug level. Expensive; diagnostics only.
	Trace bool
}

// DefaultOptions returns the standard profile: a stack machine with
// coverage tracking on.
func DefaultOptions() Options {
	return Options{TrackCoverage: true}
}

// Machine executes one program at a time. It is single-goroutine and holds
// no shared state; run many machines for parallelism. A machine is
// reusable: Reset binds it to a new program and clears everything the
// previous run touched.
type Machine struct {
	opts Options
	prog *Program

	ip        int
	steps     int
	budgetHit bool

	stacks    [2]Stack
	active    int
	registers []isa.Value

	coverage []bool
	cost     float64
}

// NewMachine returns a machine with no program bound; call Reset before
// Run.
func NewMachine(opts Options) *Machine {
	if opts.Registers <= 0 {
		opts.Registers = DefaultRegisters
	}
	return &Machine{
		opts:      opts,
		registers: make([]isa.Value, opts.Registers),
	}
}

// Reset binds the machine to a program and returns every facility to its
// initial state.
func (m *Machine) Reset(prog *Program) {
	m.prog = prog
	m.ip = 0
	m.steps = 0
	m.budgetHit = false
	m.cost = 0
	m.active = 0
	m.stacks[0].Reset()
	m.stacks[1].Reset()
	for i := range m.registers {
		m.registers[i] = 0
	}
	if m.opts.TrackCoverage {
		if cap(m.coverage) < len(prog.Code) {
			m.coverage = make([]bool, len(prog.Code))
		} else {
			m.coverage = m.coverage[:len(prog.Code)]
			for i := range m.coverage {
				m.coverage[i] = false
			}
		}
	} else {
		m.coverage = nil
	}
}

// Run executes until the program halts or the step budget is exhausted.
// Reaching the end of the code is the natural halt and takes precedence
// over the budget check, so a program that finishes exactly on budget is
// not flagged. A budget of zero or less permits no steps. Run cannot fail:
// there is no error return and nothing to time out, cancel, or retry.
func (m *Machine) Run(budget int) {
	for {
		if m.ip >= len(m.prog.Code) {
			return
		}
		if m.steps >= budget {
			m.budgetHit = true
			return
		}
		m.Step()
	}
}

// Step executes the instruction under the pointer and advances it. The
// pointer must be in range; Run guarantees that. Every step increments the
// step counter exactly once, whichever arm fires.
func (m *Machine) Step() {
	in := &m.prog.Code[m.ip]
	if m.coverage != nil {
		m.coverage[m.ip] = true
	}
	if m.opts.Trace {
		log.Debugf("step=%d ip=%d %s depth=%d", m.steps, m.ip, in, m.Depth())
	}
	switch in.Kind {
	case isa.KindLiteral:
		m.Push(in.Lit)
		m.cost++
		m.ip++
	case isa.KindOperator:
		// Underflow is a no-op: the pointer advances, the stack is
		// untouched.
		if m.Depth() >= in.Inst.Arity {
			in.Inst.Apply(m)
		}
		m.cost += in.Inst.Cost
		m.ip++
	case isa.KindConditional:
		m.cost += in.Inst.Cost
		if in.Inst.Test(m) {
			m.ip++
		} else {
			// Jump just past the matching terminator. When the
			// terminator is implicit this lands past the end and
			// the next iteration halts.
			m.ip = m.prog.branch.target[m.ip] + 1
		}
	case isa.KindTerminator:
		m.cost += in.Inst.Cost
		if c := m.prog.branch.closes[m.ip]; c >= 0 && m.prog.Code[c].Inst.Loop {
			// Close of a loop: back to the conditional, which
			// tests again.
			m.ip = c
		} else {
			m.ip++
		}
	}
	m.steps++
}

// ---------------------------------------------------------------------------
// Accessors

// IP returns the instruction pointer.
func (m *Machine) IP() int {
	return m.ip
}

// Steps returns the number of instructions dispatched so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Halted reports whether the pointer has run past the end of the code.
func (m *Machine) Halted() bool {
	return m.ip >= len(m.prog.Code)
}

// BudgetExhausted reports whether the last Run stopped on its budget.
func (m *Machine) BudgetExhausted() bool {
	return m.budgetHit
}

// Program returns the bound program.
func (m *Machine) Program() *Program {
	return m.prog
}

// DataStack returns the active stack.
func (m *Machine) DataStack() *Stack {
	return &m.stacks[m.active]
}

// Covered counts distinct instruction indices executed, when coverage
// tracking is on.
func (m *Machine) Covered() int {
	n := 0
	for _, hit := range m.coverage {
		if hit {
			n++
		}
	}
	return n
}

// Coverage returns a copy of the coverage bitmap, or nil when tracking is
// off.
func (m *Machine) Coverage() []bool {
	if m.coverage == nil {
		return nil
	}
	out := make([]bool, len(m.coverage))
	copy(out, m.coverage)
	return out
}

// Cost returns the summed instruction cost of the run.
func (m *Machine) Cost() float64 {
	return m.cost
}

// ---------------------------------------------------------------------------
// isa.Machine facility surface

// Push adds a value to the active stack.
func (m *Machine) Push(v isa.Value) {
	m.stacks[m.active].Push(v)
}

// Pop removes and returns the top of the active stack, 0 when empty.
func (m *Machine) Pop() isa.Value {
	return m.stacks[m.active].Pop()
}

// Pop2 removes and returns the top two values of the active stack.
func (m *Machine) Pop2() (top, under isa.Value) {
	return m.stacks[m.active].Pop2()
}

// Peek returns the top of the active stack without consuming it.
func (m *Machine) Peek() isa.Value {
	return m.stacks[m.active].Peek()
}

// Peek2 returns the top two values of the active stack without consuming
// them.
func (m *Machine) Peek2() (top, under isa.Value) {
	return m.stacks[m.active].Peek2()
}

// Depth returns the active stack's depth.
func (m *Machine) Depth() int {
	return m.stacks[m.active].Depth()
}

// Clear empties the active stack.
func (m *Machine) Clear() {
	m.stacks[m.active].Clear()
}

// LoadRegister reads a register. Indices wrap modulo the register count,
// so every index is valid.
func (m *Machine) LoadRegister(n isa.Value) isa.Value {
	return m.registers[m.regIndex(n)]
}

// StoreRegister writes a register, with the same wraparound.
func (m *Machine) StoreRegister(n isa.Value, v isa.Value) {
	m.registers[m.regIndex(n)] = v
}

func (m *Machine) regIndex(n isa.Value) int {
	c := isa.Value(len(m.registers))
	i := n % c
	if i < 0 {
		i += c
	}
	return int(i)
}

// ToggleStack makes the other stack active.
func (m *Machine) ToggleStack() {
	m.active ^= 1
}

// SelectStack activates stack 0 or 1 by the parity of n.
func (m *Machine) SelectStack(n isa.Value) {
	m.active = int(n & 1)
}

// ActiveStack returns the active stack's number.
func (m *Machine) ActiveStack() isa.Value {
	return isa.Value(m.active)
}

// PopInactive removes and returns the top of the inactive stack, 0 when
// empty.
func (m *Machine) PopInactive() isa.Value {
	return m.stacks[m.active^1].Pop()
}
