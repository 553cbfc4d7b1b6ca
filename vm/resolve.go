package vm

import "github.com/stokes/schlep/isa"

// branchTable holds the resolved control flow of a program. For every
// instruction index it answers the two questions execution asks: where does
// a false conditional jump, and which conditional does a terminator close.
type branchTable struct {
	// target[i], for a conditional at i, is the index of its matching
	// terminator; len(code) means the implicit terminator one past the
	// end. Zero for non-conditionals.
	target []int

	// closes[j], for a terminator at j, is the index of the conditional
	// it closes, or -1 for an inert terminator. Zero for
	// non-terminators.
	closes []int
}

// resolveBranches matches conditionals to terminators in one forward pass,
// nearest-enclosing first: a terminator closes the most recently opened
// conditional still open. Unmatched conditionals close at the implicit
// end-of-program terminator; unmatched terminators are inert. The pass
// cannot fail on any instruction sequence.
func resolveBranches(code []Instr) branchTable {
	bt := branchTable{
		target: make([]int, len(code)),
		closes: make([]int, len(code)),
	}
	var open []int
	for i, in := range code {
		switch in.Kind {
		case isa.KindConditional:
			open = append(open, i)
		case isa.KindTerminator:
			if n := len(open); n > 0 {
				c := open[n-1]
				open = open[:n-1]
				bt.target[c] = i
				bt.closes[i] = c
			} else {
				bt.closes[i] = -1
			}
		}
	}
	for _, c := range open {
		bt.target[c] = len(code)
	}
	return bt
}
