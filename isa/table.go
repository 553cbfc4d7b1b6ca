package isa

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Slot encoding parameters. A genotype is consumed in fixed-width slots;
// the high bit selects between an inline integer literal and an index into
// the table. Indices wrap modulo the table length, so every slot value
// decodes to something.
const (
	// SlotBits is the fixed decode width. A trailing partial slot is
	// zero-extended, never dropped, so a genotype of n bits always
	// yields ceil(n/SlotBits) instructions.
	SlotBits = 32

	literalFlag uint32 = 1 << 31
	literalMask uint32 = literalFlag - 1
	literalBias Value  = 1 << 30

	// MinLiteral and MaxLiteral bound the inline literal range. The low
	// 31 bits of a literal slot are biased so the range is centered.
	MinLiteral Value = -(1 << 30)
	MaxLiteral Value = 1<<30 - 1
)

// endInstruction is the canonical terminator. An empty table resolves every
// index to it so that decoding stays total no matter how a table was
// composed.
var endInstruction = &Instruction{Name: "end", Kind: KindTerminator, Cost: 1}

// Table is an ordered instruction registry. Order is load-bearing: the
// position of an entry is the index bit patterns decode to, so two tables
// composed from the same modules in the same order decode identically.
type Table struct {
	entries []*Instruction
	index   map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Register appends an entry. Registering a duplicate name is a composition
// bug and panics.
func (t *Table) Register(inst *Instruction) {
	if _, dup := t.index[inst.Name]; dup {
		panic(fmt.Sprintf("isa: duplicate instruction %q", inst.Name))
	}
	t.index[inst.Name] = len(t.entries)
	t.entries = append(t.entries, inst)
}

// Extend appends o's entries whose names are not already present, in o's
// order, and returns t for chaining. Existing entries keep their positions.
func (t *Table) Extend(o *Table) *Table {
	for _, inst := range o.entries {
		if _, ok := t.index[inst.Name]; !ok {
			t.Register(inst)
		}
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// At returns the entry at index i, wrapping modulo the table length. An
// empty table resolves every index to the end terminator.
func (t *Table) At(i int) *Instruction {
	if len(t.entries) == 0 {
		return endInstruction
	}
	i %= len(t.entries)
	if i < 0 {
		i += len(t.entries)
	}
	return t.entries[i]
}

// ByName returns the named entry, or nil.
func (t *Table) ByName(name string) *Instruction {
	if i, ok := t.index[name]; ok {
		return t.entries[i]
	}
	return nil
}

// IndexOf returns the position of the named entry, or -1.
func (t *Table) IndexOf(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Names returns the vocabulary in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, inst := range t.entries {
		names[i] = inst.Name
	}
	return names
}

// DecodeSlot maps a 32-bit slot value to an instruction. It is total: the
// high bit selects a literal, anything else indexes the table with
// wraparound. There is no failing case.
func (t *Table) DecodeSlot(slot uint32) Decoded {
	if slot&literalFlag != 0 {
		return Decoded{Kind: KindLiteral, Value: Value(slot&literalMask) - literalBias}
	}
	inst := t.At(int(slot))
	return Decoded{Kind: inst.Kind, Inst: inst}
}

// LiteralSlot encodes a literal value as a slot, clamping to the literal
// range. Inverse of the literal arm of DecodeSlot.
func LiteralSlot(v Value) uint32 {
	if v < MinLiteral {
		v = MinLiteral
	} else if v > MaxLiteral {
		v = MaxLiteral
	}
	return uint32(v+literalBias) | literalFlag
}

// IndexSlot encodes a table index as a slot.
func IndexSlot(i int) uint32 {
	return uint32(i) & literalMask
}

// Fingerprint identifies the decode behavior of the table: the slot
// parameters plus the ordered vocabulary with each entry's kind, arity, and
// loop flag. Tables with equal fingerprints decode every genotype to the
// same program, which is what wire envelopes check before trusting a
// genotype from another process.
func (t *Table) Fingerprint() [32]byte {
	h := sha256.New()
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], SlotBits)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(t.entries)))
	h.Write(hdr[:])
	for _, inst := range t.entries {
		fmt.Fprintf(h, "%s\x00%d %d %t\n", inst.Name, inst.Kind, inst.Arity, inst.Loop)
	}
	var sum [32]byte
	h.Sum(sum[:0])
	return sum
}

// Default returns the standard profile: math conditionals, math operators,
// stack conditionals, stack operators, and the terminator, in that order.
// Bitwise, register, and turing modules are opt-in extensions.
func Default() *Table {
	return New().
		Extend(MathConditionals()).
		Extend(MathOps()).
		Extend(StackConditionals()).
		Extend(StackOps()).
		Extend(Terminators())
}
