package vm

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stokes/schlep/genome"
	"github.com/stokes/schlep/isa"
)

// Env is an evaluation profile: an instruction table plus machine options,
// with a machine pool sized to the profile. A breeder typically builds one
// Env per experiment and feeds every genotype through it. Envs are safe for
// concurrent use; evaluations share nothing but the immutable table.
type Env struct {
	table    *isa.Table
	opts     Options
	parallel int
	pool     sync.Pool
}

// NewEnv returns an Env over the given table and options. A nil table
// means the default table.
func NewEnv(table *isa.Table, opts Options) *Env {
	if table == nil {
		table = defaultTable
	}
	e := &Env{
		table:    table,
		opts:     opts,
		parallel: runtime.GOMAXPROCS(0),
	}
	e.pool.New = func() any {
		return NewMachine(e.opts)
	}
	return e
}

// Table returns the Env's instruction table.
func (e *Env) Table() *isa.Table {
	return e.table
}

// SetParallelism bounds EvaluateBatch fan-out. Values below 1 reset to the
// number of CPUs.
func (e *Env) SetParallelism(n int) {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	e.parallel = n
}

// Evaluate runs one genotype through the profile.
func (e *Env) Evaluate(g *genome.Genotype, budget int) Result {
	return e.EvaluateProgram(Decode(g, e.table), budget)
}

// EvaluateProgram runs a program already decoded against this Env's table.
func (e *Env) EvaluateProgram(p *Program, budget int) Result {
	m := e.pool.Get().(*Machine)
	defer e.pool.Put(m)
	m.Reset(p)
	m.Run(budget)
	return m.Result()
}

// EvaluateBatch runs a population slice with bounded parallelism and
// returns results by position. Evaluations are independent and total, so
// the fan-out has no error or cancellation flow; every slot is filled when
// the call returns. There is deliberately no context parameter: each
// evaluation is already strictly bounded by its budget.
func (e *Env) EvaluateBatch(gs []*genome.Genotype, budget int) []Result {
	results := make([]Result, len(gs))
	var grp errgroup.Group
	grp.SetLimit(e.parallel)
	for i, g := range gs {
		grp.Go(func() error {
			results[i] = e.Evaluate(g, budget)
			return nil
		})
	}
	grp.Wait()
	log.Debugf("batch evaluated: %d genotypes, budget %d", len(gs), budget)
	return results
}
