package vm

import (
	"testing"

	"github.com/stokes/schlep/isa"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	if v := s.Pop(); v != 3 {
		t.Errorf("Pop = %d, want 3", v)
	}
	if v := s.Pop(); v != 2 {
		t.Errorf("Pop = %d, want 2", v)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", s.Depth())
	}
	if s.Underflowed() {
		t.Error("underflow flagged without an empty read")
	}
}

func TestStackEmptyReadsYieldZero(t *testing.T) {
	s := NewStack()
	if v := s.Pop(); v != 0 {
		t.Errorf("Pop on empty = %d, want 0", v)
	}
	if !s.Underflowed() {
		t.Error("Pop on empty did not set the underflow flag")
	}

	s.Reset()
	if v := s.Peek(); v != 0 {
		t.Errorf("Peek on empty = %d, want 0", v)
	}
	if !s.Underflowed() {
		t.Error("Peek on empty did not set the underflow flag")
	}
}

func TestStackPop2Short(t *testing.T) {
	s := NewStack()
	s.Push(7)
	top, under := s.Pop2()
	if top != 7 || under != 0 {
		t.Errorf("Pop2 on one value = (%d, %d), want (7, 0)", top, under)
	}
	if !s.Underflowed() {
		t.Error("short Pop2 did not set the underflow flag")
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}

func TestStackPeek2(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	top, under := s.Peek2()
	if top != 2 || under != 1 {
		t.Errorf("Peek2 = (%d, %d), want (2, 1)", top, under)
	}
	if s.Depth() != 2 {
		t.Error("Peek2 consumed values")
	}

	s.Reset()
	s.Push(9)
	top, under = s.Peek2()
	if top != 9 || under != 0 {
		t.Errorf("Peek2 on one value = (%d, %d), want (9, 0)", top, under)
	}
}

func TestStackClearAndReset(t *testing.T) {
	s := NewStack()
	s.Push(5)
	s.Pop()
	s.Pop() // sets the flag
	s.Clear()
	if !s.Underflowed() {
		t.Error("Clear dropped the underflow flag; only Reset should")
	}
	s.Reset()
	if s.Underflowed() || s.Depth() != 0 {
		t.Error("Reset did not return the stack to its initial state")
	}
}

func TestStackValuesIsACopy(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	vals := s.Values()
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("Values = %v, want [1 2]", vals)
	}
	vals[0] = 99
	if v := s.Values()[0]; v != 1 {
		t.Errorf("mutating the snapshot changed the stack: %d", v)
	}
}

func TestStackString(t *testing.T) {
	s := NewStack()
	s.Push(isa.Value(-4))
	s.Push(10)
	if got := s.String(); got != "[-4 10]" {
		t.Errorf("String = %q, want %q", got, "[-4 10]")
	}
}
