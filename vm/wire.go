package vm

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/stokes/schlep/genome"
	"github.com/stokes/schlep/isa"
)

// cborEncMode is the canonical encoding mode for deterministic envelopes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ErrFingerprintMismatch means a specimen was bred against a different
// instruction table than the one decoding it. Accepting it anyway would
// silently change what every slot of the genotype means.
var ErrFingerprintMismatch = errors.New("vm: instruction table fingerprint mismatch")

// Specimen is the unit a breeder ships between processes: a genotype with
// its lineage. Envelopes are stamped with the fingerprint of the table the
// specimen targets, so a receiver can refuse genotypes bred for a different
// language before decoding anything.
//
// Envelope parsing is the one place errors exist on this path. They belong
// to the container, not the genotype: once a Specimen is in hand, decoding
// and running it are total.
type Specimen struct {
	ID      string
	Parents []string
	Genome  *genome.Genotype
}

// NewSpecimen wraps a genotype with a fresh identity.
func NewSpecimen(g *genome.Genotype, parents ...string) *Specimen {
	return &Specimen{
		ID:      uuid.New().String(),
		Parents: slices.Clone(parents),
		Genome:  g,
	}
}

// DecodeSpecimen decodes the specimen's genotype, carrying its identity
// and lineage onto the program.
func DecodeSpecimen(s *Specimen, t *isa.Table) *Program {
	p := Decode(s.Genome, t)
	p.ID = s.ID
	p.Parents = slices.Clone(s.Parents)
	return p
}

type wireSpecimen struct {
	ID          string   `cbor:"id"`
	Parents     []string `cbor:"parents,omitempty"`
	Fingerprint []byte   `cbor:"fingerprint"`
	Bits        int      `cbor:"bits"`
	Data        []byte   `cbor:"data"`
}

// MarshalSpecimen serializes a specimen to CBOR bytes, stamped with the
// given table's fingerprint.
func MarshalSpecimen(s *Specimen, t *isa.Table) ([]byte, error) {
	fp := t.Fingerprint()
	data, err := cborEncMode.Marshal(wireSpecimen{
		ID:          s.ID,
		Parents:     s.Parents,
		Fingerprint: fp[:],
		Bits:        s.Genome.Len(),
		Data:        s.Genome.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("vm: marshal specimen: %w", err)
	}
	return data, nil
}

// UnmarshalSpecimen deserializes a specimen envelope and verifies it was
// bred against the given table.
func UnmarshalSpecimen(data []byte, t *isa.Table) (*Specimen, error) {
	var w wireSpecimen
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("vm: unmarshal specimen: %w", err)
	}
	fp := t.Fingerprint()
	if !bytes.Equal(w.Fingerprint, fp[:]) {
		return nil, ErrFingerprintMismatch
	}
	g, err := genome.FromBytes(w.Data, w.Bits)
	if err != nil {
		return nil, fmt.Errorf("vm: unmarshal specimen: %w", err)
	}
	return &Specimen{
		ID:      w.ID,
		Parents: w.Parents,
		Genome:  g,
	}, nil
}

type wireResult struct {
	ProgramID       string      `cbor:"id"`
	Stack           []isa.Value `cbor:"stack"`
	Steps           int         `cbor:"steps"`
	BudgetExhausted bool        `cbor:"budget-exhausted"`
	Covered         int         `cbor:"covered,omitempty"`
	CodeLen         int         `cbor:"code-len"`
	Cost            float64     `cbor:"cost,omitempty"`
	Underflowed     bool        `cbor:"underflowed,omitempty"`
}

// MarshalResult serializes a result to CBOR bytes for a remote fitness
// evaluator.
func MarshalResult(r Result) ([]byte, error) {
	data, err := cborEncMode.Marshal(wireResult(r))
	if err != nil {
		return nil, fmt.Errorf("vm: marshal result: %w", err)
	}
	return data, nil
}

// UnmarshalResult deserializes a result envelope.
func UnmarshalResult(data []byte) (Result, error) {
	var w wireResult
	if err := cbor.Unmarshal(data, &w); err != nil {
		return Result{}, fmt.Errorf("vm: unmarshal result: %w", err)
	}
	return Result(w), nil
}
