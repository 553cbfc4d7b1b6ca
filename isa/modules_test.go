package isa

import (
	"reflect"
	"testing"
)

// Module vocabulary and order are load-bearing: entry positions are the
// indices bit patterns decode to. These tests pin them down.

func TestModuleVocabulary(t *testing.T) {
	cases := []struct {
		name  string
		table *Table
		want  []string
	}{
		{
			"MathOps", MathOps(),
			[]string{"add", "subtract", "multiply", "divide", "min", "max",
				"abs", "negate", "inc", "dec", "mod", "square"},
		},
		{
			"StackOps", StackOps(),
			[]string{"pop", "dup", "dup2", "swap", "shuffle", "clear", "stackSize"},
		},
		{
			"BitwiseOps", BitwiseOps(),
			[]string{"bitAnd", "bitOr", "bitXor", "bitShiftLeft", "bitShiftRight"},
		},
		{
			"MathConditionals", MathConditionals(),
			[]string{"ifEqual", "ifUnequal", "ifGreaterThan", "ifLessThan",
				"ifZero", "ifNotZero", "ifEven", "ifOdd",
				"whileEqual", "whileUnequal", "whileGreaterThan", "whileLessThan",
				"whileZero", "whileNotZero"},
		},
		{
			"StackConditionals", StackConditionals(),
			[]string{"ifStackEmpty", "ifStackNotEmpty", "whileStackEmpty", "untilStackEmpty"},
		},
		{
			"Terminators", Terminators(),
			[]string{"end"},
		},
		{
			"RegisterOps", RegisterOps(2),
			[]string{"getRegister", "setRegister",
				"setRegister0", "setRegister1", "getRegister0", "getRegister1"},
		},
		{
			"TuringOps", TuringOps(),
			[]string{"toggleStacks", "switchStack", "shiftStacks", "activeStackNum"},
		},
	}
	for _, c := range cases {
		if got := c.table.Names(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s vocabulary = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDefaultComposition(t *testing.T) {
	tbl := Default()
	if tbl.Len() != 38 {
		t.Fatalf("Default().Len() = %d, want 38", tbl.Len())
	}
	anchors := map[string]int{
		"ifEqual":      0,
		"whileNotZero": 13,
		"add":          14,
		"square":       25,
		"ifStackEmpty": 26,
		"pop":          30,
		"stackSize":    36,
		"end":          37,
	}
	for name, want := range anchors {
		if got := tbl.IndexOf(name); got != want {
			t.Errorf("IndexOf(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestModuleKindsAndArity(t *testing.T) {
	tbl := Default()
	for _, name := range tbl.Names() {
		inst := tbl.ByName(name)
		switch inst.Kind {
		case KindOperator:
			if inst.Apply == nil {
				t.Errorf("%s: operator without Apply", name)
			}
			if inst.Test != nil {
				t.Errorf("%s: operator with a Test", name)
			}
		case KindConditional:
			if inst.Test == nil {
				t.Errorf("%s: conditional without Test", name)
			}
			if inst.Arity != 0 {
				t.Errorf("%s: conditional with arity %d; conditionals use sentinel reads", name, inst.Arity)
			}
		case KindTerminator:
			if inst.Apply != nil || inst.Test != nil {
				t.Errorf("%s: terminator with behavior", name)
			}
		default:
			t.Errorf("%s: unexpected kind %v", name, inst.Kind)
		}
		if inst.Cost != 1 {
			t.Errorf("%s: cost = %v, want 1", name, inst.Cost)
		}
	}
}

func TestLoopFlags(t *testing.T) {
	tbl := Default()
	for _, name := range []string{"whileEqual", "whileUnequal", "whileGreaterThan",
		"whileLessThan", "whileZero", "whileNotZero", "whileStackEmpty", "untilStackEmpty"} {
		if inst := tbl.ByName(name); inst == nil || !inst.Loop {
			t.Errorf("%s: expected loop conditional", name)
		}
	}
	for _, name := range []string{"ifEqual", "ifZero", "ifStackEmpty"} {
		if inst := tbl.ByName(name); inst == nil || inst.Loop {
			t.Errorf("%s: expected non-loop conditional", name)
		}
	}
}
