// Package vm executes decoded genotypes on a bounded stack machine.
//
// The package upholds one guarantee end to end: totality. Decoding a
// genotype cannot fail, resolving its control flow cannot fail, and running
// it cannot fail. The only outcomes are a halted machine with a final stack
// or an exhausted step budget. Nothing in the execute path returns an
// error, blocks, or panics on program content.
package vm

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/stokes/schlep/genome"
	"github.com/stokes/schlep/isa"
)

// Instr is one decoded instruction. Exactly one payload is meaningful: Lit
// for literals, Inst for table entries.
type Instr struct {
	Kind isa.Kind
	Lit  isa.Value
	Inst *isa.Instruction

	// Offset is the bit position of the instruction's slot in the
	// genotype. Diagnostics only; execution never reads it.
	Offset int
}

func (in Instr) String() string {
	if in.Kind == isa.KindLiteral {
		return strconv.FormatInt(int64(in.Lit), 10)
	}
	return in.Inst.Name
}

// Program is a decoded genotype: the instruction sequence plus its resolved
// branch table. Programs are immutable once decoded and safe to share
// between machines.
type Program struct {
	// ID names this decode for logging and result correlation. Fresh
	// per decode unless the program came from a specimen envelope.
	ID string

	// Parents carries lineage IDs when known. The core only transports
	// them; ancestry is the breeder's concern.
	Parents []string

	Table *isa.Table
	Code  []Instr

	branch branchTable
}

// Decode maps a genotype to a program against the given table. It is
// total: every bit string of every length decodes, a trailing partial slot
// is zero-extended, and the empty genotype yields the empty program, which
// is a valid no-op. The genotype is only read; it is not retained.
func Decode(g *genome.Genotype, t *isa.Table) *Program {
	n := (g.Len() + isa.SlotBits - 1) / isa.SlotBits
	code := make([]Instr, n)
	for k := 0; k < n; k++ {
		off := k * isa.SlotBits
		d := t.DecodeSlot(uint32(g.Uint(off, isa.SlotBits)))
		code[k] = Instr{Kind: d.Kind, Lit: d.Value, Inst: d.Inst, Offset: off}
	}
	return &Program{
		ID:     uuid.New().String(),
		Table:  t,
		Code:   code,
		branch: resolveBranches(code),
	}
}

// Len returns the instruction count.
func (p *Program) Len() int {
	return len(p.Code)
}

// Target returns the branch target of the conditional at i: the index of
// its matching terminator, or Len() when it closes at the implicit
// end-of-program terminator. Returns -1 if i is not a conditional.
func (p *Program) Target(i int) int {
	if i < 0 || i >= len(p.Code) || p.Code[i].Kind != isa.KindConditional {
		return -1
	}
	return p.branch.target[i]
}

// Closes returns the index of the conditional closed by the terminator at
// i, or -1 if the terminator is inert or i is not a terminator.
func (p *Program) Closes(i int) int {
	if i < 0 || i >= len(p.Code) || p.Code[i].Kind != isa.KindTerminator {
		return -1
	}
	return p.branch.closes[i]
}

// Unterminated counts conditionals that close at the implicit terminator
// past the end of the program. The count is a shape diagnostic; such
// programs run like any other.
func (p *Program) Unterminated() int {
	n := 0
	for i, in := range p.Code {
		if in.Kind == isa.KindConditional && p.branch.target[i] == len(p.Code) {
			n++
		}
	}
	return n
}

// String renders the program as its space-joined vocabulary words and
// literal values.
func (p *Program) String() string {
	words := make([]string, len(p.Code))
	for i, in := range p.Code {
		words[i] = in.String()
	}
	return strings.Join(words, " ")
}

// Disassemble renders one instruction per line with index, bit offset, and
// branch annotations.
func (p *Program) Disassemble() string {
	var sb strings.Builder
	for i, in := range p.Code {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte('\t')
		sb.WriteString(in.String())
		switch in.Kind {
		case isa.KindConditional:
			sb.WriteString("\t-> ")
			sb.WriteString(strconv.Itoa(p.branch.target[i]))
			if p.branch.target[i] == len(p.Code) {
				sb.WriteString(" (implicit)")
			}
		case isa.KindTerminator:
			if c := p.branch.closes[i]; c >= 0 {
				sb.WriteString("\t<- ")
				sb.WriteString(strconv.Itoa(c))
			}
		}
		sb.WriteString("\t; bit ")
		sb.WriteString(strconv.Itoa(in.Offset))
		sb.WriteByte('\n')
	}
	return sb.String()
}
