// Package genome defines the bit-string genotype evolved programs decode
// from. A Genotype is an arbitrary sequence of bits with no alignment or
// length requirements; every possible bit string is a usable genotype.
//
// Bits are packed LSB first: bit i of the genotype is bit i&7 of byte i>>3
// in the backing buffer. Unused padding bits in the final byte are kept
// zero so that buffers compare and hash consistently.
package genome

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
)

// Genotype is an arbitrary-length bit string.
//
// The zero value is an empty genotype. Reads past the end of the sequence
// yield zero bits, which is what the decoder's padding rule relies on.
type Genotype struct {
	buf  []byte
	bits int
}

// New returns a zeroed genotype of the given length. A non-positive length
// yields an empty genotype.
func New(bits int) *Genotype {
	if bits < 0 {
		bits = 0
	}
	return &Genotype{
		buf:  make([]byte, (bits+7)/8),
		bits: bits,
	}
}

// FromBits builds a genotype from a slice of bit values. Any non-zero
// element counts as a one bit.
func FromBits(bits []uint8) *Genotype {
	g := New(len(bits))
	for i, b := range bits {
		if b != 0 {
			g.buf[i>>3] |= 1 << (i & 7)
		}
	}
	return g
}

// FromBytes adopts a packed buffer as a genotype of the given bit length.
// The buffer must be exactly the size the length requires and any padding
// bits in the final byte must be zero. The buffer is copied.
func FromBytes(data []byte, bits int) (*Genotype, error) {
	if bits < 0 {
		return nil, fmt.Errorf("genome: negative bit length %d", bits)
	}
	if want := (bits + 7) / 8; len(data) != want {
		return nil, fmt.Errorf("genome: buffer holds %d bytes, want %d for %d bits", len(data), want, bits)
	}
	if rem := bits & 7; rem != 0 {
		if data[len(data)-1]&^byte(1<<rem-1) != 0 {
			return nil, fmt.Errorf("genome: padding bits past bit %d are not zero", bits)
		}
	}
	return &Genotype{
		buf:  bytes.Clone(data),
		bits: bits,
	}, nil
}

// Random returns a uniformly random genotype of the given length.
func Random(r *rand.Rand, bits int) *Genotype {
	g := New(bits)
	r.Read(g.buf)
	g.clearPadding()
	return g
}

func (g *Genotype) clearPadding() {
	if rem := g.bits & 7; rem != 0 {
		g.buf[len(g.buf)-1] &= 1<<rem - 1
	}
}

// Len returns the number of bits in the genotype.
func (g *Genotype) Len() int {
	return g.bits
}

// Bit returns bit i, or 0 if i is out of range. Total reads keep the
// decoder free of bounds checks.
func (g *Genotype) Bit(i int) uint8 {
	if i < 0 || i >= g.bits {
		return 0
	}
	return g.buf[i>>3] >> (i & 7) & 1
}

// SetBit sets bit i, which must be in range.
func (g *Genotype) SetBit(i int, b uint8) {
	if i < 0 || i >= g.bits {
		panic(fmt.Sprintf("genome: bit %d out of range [0,%d)", i, g.bits))
	}
	if b != 0 {
		g.buf[i>>3] |= 1 << (i & 7)
	} else {
		g.buf[i>>3] &^= 1 << (i & 7)
	}
}

// AppendBit appends a single bit.
func (g *Genotype) AppendBit(b uint8) {
	if g.bits&7 == 0 {
		g.buf = append(g.buf, 0)
	}
	if b != 0 {
		g.buf[g.bits>>3] |= 1 << (g.bits & 7)
	}
	g.bits++
}

// AppendUint appends the low width bits of v, LSB first. Width is clamped
// to [0,64].
func (g *Genotype) AppendUint(v uint64, width int) {
	if width > 64 {
		width = 64
	}
	for j := 0; j < width; j++ {
		g.AppendBit(uint8(v >> j & 1))
	}
}

// Uint assembles up to 64 bits starting at off, LSB first. Bits past the
// end of the genotype read as zero, which implements the trailing-slot
// padding rule.
func (g *Genotype) Uint(off, width int) uint64 {
	if width > 64 {
		width = 64
	}
	var v uint64
	for j := 0; j < width; j++ {
		v |= uint64(g.Bit(off+j)) << j
	}
	return v
}

// Bytes returns the packed backing buffer. The caller must not modify it.
func (g *Genotype) Bytes() []byte {
	return g.buf
}

// Clone returns an independent copy.
func (g *Genotype) Clone() *Genotype {
	return &Genotype{
		buf:  bytes.Clone(g.buf),
		bits: g.bits,
	}
}

// Equal reports whether two genotypes hold the same bit string.
func (g *Genotype) Equal(o *Genotype) bool {
	return g.bits == o.bits && bytes.Equal(g.buf, o.buf)
}

// Hash returns a SHA-256 digest over the bit length and packed bits.
// Callers use it as a cache or identity key for genotypes.
func (g *Genotype) Hash() [32]byte {
	h := sha256.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(g.bits))
	h.Write(n[:])
	h.Write(g.buf)
	var sum [32]byte
	h.Sum(sum[:0])
	return sum
}

// String renders the bits in index order.
func (g *Genotype) String() string {
	var sb strings.Builder
	sb.Grow(g.bits)
	for i := 0; i < g.bits; i++ {
		sb.WriteByte('0' + g.Bit(i))
	}
	return sb.String()
}
