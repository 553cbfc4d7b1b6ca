package vm

import (
	"bytes"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stokes/schlep/genome"
	"github.com/stokes/schlep/isa"
)

// ============ Specimen Envelope Tests ============

func TestSpecimenRoundTrip(t *testing.T) {
	g := genome.Random(rand.New(rand.NewSource(21)), 300)
	s := NewSpecimen(g, "parent-a", "parent-b")

	data, err := MarshalSpecimen(s, defaultTable)
	if err != nil {
		t.Fatalf("MarshalSpecimen failed: %v", err)
	}
	got, err := UnmarshalSpecimen(data, defaultTable)
	if err != nil {
		t.Fatalf("UnmarshalSpecimen failed: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("ID = %q, want %q", got.ID, s.ID)
	}
	if !slices.Equal(got.Parents, s.Parents) {
		t.Errorf("Parents = %v, want %v", got.Parents, s.Parents)
	}
	if !got.Genome.Equal(g) {
		t.Error("genome did not survive the round trip")
	}
}

func TestSpecimenEnvelopeIsCanonical(t *testing.T) {
	s := NewSpecimen(genome.Random(rand.New(rand.NewSource(23)), 128))
	a, err := MarshalSpecimen(s, defaultTable)
	if err != nil {
		t.Fatalf("MarshalSpecimen failed: %v", err)
	}
	b, err := MarshalSpecimen(s, defaultTable)
	if err != nil {
		t.Fatalf("MarshalSpecimen failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two encodings of the same specimen differ")
	}
}

func TestSpecimenFingerprintMismatch(t *testing.T) {
	s := NewSpecimen(genome.Random(rand.New(rand.NewSource(25)), 256))
	data, err := MarshalSpecimen(s, defaultTable)
	if err != nil {
		t.Fatalf("MarshalSpecimen failed: %v", err)
	}

	other := isa.Default().Extend(isa.BitwiseOps())
	if _, err := UnmarshalSpecimen(data, other); !errors.Is(err, ErrFingerprintMismatch) {
		t.Errorf("Expected ErrFingerprintMismatch, got %v", err)
	}
}

func TestUnmarshalSpecimenGarbage(t *testing.T) {
	if _, err := UnmarshalSpecimen([]byte("not cbor at all"), defaultTable); err == nil {
		t.Error("Expected an error for a garbage envelope")
	}
}

func TestUnmarshalSpecimenBadPadding(t *testing.T) {
	// A correctly fingerprinted envelope whose buffer breaks the padding
	// rule still fails: the error belongs to the container.
	fp := defaultTable.Fingerprint()
	data, err := cborEncMode.Marshal(wireSpecimen{
		ID:          "bad",
		Fingerprint: fp[:],
		Bits:        3,
		Data:        []byte{0xff},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := UnmarshalSpecimen(data, defaultTable); err == nil {
		t.Error("Expected an error for non-zero padding bits")
	}
}

func TestNewSpecimenClonesParents(t *testing.T) {
	parents := []string{"a", "b"}
	s := NewSpecimen(genome.New(8), parents...)
	parents[0] = "mutated"
	if s.Parents[0] != "a" {
		t.Errorf("Parents[0] = %q, want %q", s.Parents[0], "a")
	}
}

func TestDecodeSpecimenCarriesIdentity(t *testing.T) {
	s := NewSpecimen(asm(t, defaultTable, "1", "2", "add"), "parent-a")
	p := DecodeSpecimen(s, defaultTable)
	if p.ID != s.ID {
		t.Errorf("program ID = %q, want %q", p.ID, s.ID)
	}
	if !slices.Equal(p.Parents, s.Parents) {
		t.Errorf("Parents = %v, want %v", p.Parents, s.Parents)
	}
	r := EvaluateProgram(p, 100)
	if r.ProgramID != s.ID {
		t.Errorf("result carries ID %q, want %q", r.ProgramID, s.ID)
	}
	wantStack(t, r, 3)
}

// ============ Result Envelope Tests ============

func TestResultRoundTrip(t *testing.T) {
	r := run(t, defaultTable, 1000,
		"10", "dup", "1", "whileUnequal",
		"dup", "1", "subtract", "dup", "1", "end",
		"stackSize", "1", "whileUnequal",
		"multiply", "stackSize", "1", "end",
		"end")

	data, err := MarshalResult(r)
	if err != nil {
		t.Fatalf("MarshalResult failed: %v", err)
	}
	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult failed: %v", err)
	}
	if got.ProgramID != r.ProgramID {
		t.Errorf("ProgramID = %q, want %q", got.ProgramID, r.ProgramID)
	}
	sameResult(t, got, r)
}

func TestResultRoundTripPreservesFlags(t *testing.T) {
	r := run(t, defaultTable, 2, "ifEqual", "1", "2", "3", "end")
	if !r.Underflowed || !r.BudgetExhausted {
		t.Fatalf("setup run should underflow and exhaust: %+v", r)
	}
	data, err := MarshalResult(r)
	if err != nil {
		t.Fatalf("MarshalResult failed: %v", err)
	}
	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult failed: %v", err)
	}
	sameResult(t, got, r)
}

func TestUnmarshalResultGarbage(t *testing.T) {
	if _, err := UnmarshalResult([]byte{0xde, 0xad}); err == nil {
		t.Error("Expected an error for a garbage envelope")
	}
}
