package genome

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is the canonical encoding mode used for all genome wire
// envelopes. Canonical form guarantees byte-identical output for equal
// genotypes, so envelopes can be compared and content-addressed.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("genome: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireGenotype is the CBOR envelope for a genotype.
type wireGenotype struct {
	Bits int    `cbor:"bits"`
	Data []byte `cbor:"data"`
}

// Marshal encodes a genotype as a canonical CBOR envelope.
func Marshal(g *Genotype) ([]byte, error) {
	data, err := cborEncMode.Marshal(wireGenotype{
		Bits: g.Len(),
		Data: g.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("genome: marshal genotype: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an envelope produced by Marshal. Envelopes are external
// input, so malformed CBOR, a length mismatch, or dirty padding bits are
// errors; once a Genotype exists, decoding it never fails.
func Unmarshal(data []byte) (*Genotype, error) {
	var w wireGenotype
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("genome: unmarshal genotype: %w", err)
	}
	return FromBytes(w.Data, w.Bits)
}
