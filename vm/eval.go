package vm

import (
	"sync"

	"github.com/stokes/schlep/genome"
	"github.com/stokes/schlep/isa"
)

// Result is the outcome of one evaluation. Every evaluation produces one;
// there is no failure shape. Identical genotype, table, and budget always
// produce identical results except for ProgramID, which is diagnostic
// identity, not semantics.
type Result struct {
	ProgramID string

	// Stack is the final active stack, bottom to top. The breeder's
	// fitness function interprets it.
	Stack []isa.Value

	// Steps is the number of instructions dispatched.
	Steps int

	// BudgetExhausted is set when the run stopped on its step budget
	// rather than by running off the end of the program.
	BudgetExhausted bool

	// Covered and CodeLen describe instruction coverage: Covered of
	// CodeLen distinct instructions executed. Covered is 0 when the
	// machine ran without coverage tracking.
	Covered int
	CodeLen int

	// Cost is the summed cost metadata of every dispatched instruction.
	Cost float64

	// Underflowed records that some read ran past the bottom of a
	// stack. Normal for evolved code; never an error.
	Underflowed bool
}

// Result snapshots the machine's outcome. Valid after Run returns.
func (m *Machine) Result() Result {
	return Result{
		ProgramID:       m.prog.ID,
		Stack:           m.stacks[m.active].Values(),
		Steps:           m.steps,
		BudgetExhausted: m.budgetHit,
		Covered:         m.Covered(),
		CodeLen:         len(m.prog.Code),
		Cost:            m.cost,
		Underflowed:     m.stacks[0].Underflowed() || m.stacks[1].Underflowed(),
	}
}

var defaultTable = isa.Default()

// defaultPool recycles machines for the package-level Evaluate path.
// Pooled machines keep their stacks' and bitmaps' capacity across calls,
// which is the endorsed way to keep per-evaluation allocation flat.
var defaultPool = sync.Pool{
	New: func() any {
		return NewMachine(DefaultOptions())
	},
}

// Evaluate runs a genotype against the default instruction table and
// returns its result. This is the substrate's single external operation:
// any bit string in, exactly one result out, never an error. The genotype
// is borrowed for the duration of the call.
func Evaluate(g *genome.Genotype, budget int) Result {
	m := defaultPool.Get().(*Machine)
	defer defaultPool.Put(m)
	m.Reset(Decode(g, defaultTable))
	m.Run(budget)
	return m.Result()
}

// EvaluateProgram runs an already decoded program on a pooled machine.
// Decoding once and evaluating many times is the cheap path for repeated
// runs of the same genotype.
func EvaluateProgram(p *Program, budget int) Result {
	m := defaultPool.Get().(*Machine)
	defer defaultPool.Put(m)
	m.Reset(p)
	m.Run(budget)
	return m.Result()
}
