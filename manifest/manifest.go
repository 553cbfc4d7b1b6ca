// Package manifest handles schlep.toml profile configuration.
//
// A profile describes the language a population is bred against: which
// instruction modules compose the table, in what order, and what machine
// shape runs it. Profiles are configuration, not genotypes: loading and
// validating them can fail, and the errors stop at this boundary.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/stokes/schlep/isa"
	"github.com/stokes/schlep/vm"
)

// Manifest represents a schlep.toml language profile.
type Manifest struct {
	Machine      MachineConfig     `toml:"machine"`
	Instructions InstructionConfig `toml:"instructions"`

	// Dir is the directory containing the schlep.toml file (set at load
	// time).
	Dir string `toml:"-"`
}

// MachineConfig selects the machine shape.
type MachineConfig struct {
	Variant       string `toml:"variant"`
	Registers     int    `toml:"registers"`
	TrackCoverage bool   `toml:"track-coverage"`
}

// InstructionConfig selects and orders the table modules. Order is
// load-bearing: it fixes which bit patterns decode to which instructions,
// so two profiles listing the same modules in a different order describe
// different languages.
type InstructionConfig struct {
	Modules []string `toml:"modules"`
}

// defaultModules composes the standard profile.
var defaultModules = []string{"math-conditionals", "math", "stack-conditionals", "stack"}

// Default returns the standard profile: a stack machine with coverage
// tracking over the default table.
func Default() *Manifest {
	return &Manifest{
		Machine: MachineConfig{
			Variant:       "stack",
			Registers:     vm.DefaultRegisters,
			TrackCoverage: true,
		},
		Instructions: InstructionConfig{
			Modules: append([]string(nil), defaultModules...),
		},
	}
}

// Load parses a schlep.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "schlep.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Machine.Variant == "" {
		m.Machine.Variant = "stack"
	}
	if m.Machine.Registers == 0 {
		m.Machine.Registers = vm.DefaultRegisters
	}
	if len(m.Instructions.Modules) == 0 {
		m.Instructions.Modules = append([]string(nil), defaultModules...)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile in %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a schlep.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "schlep.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks the profile without building anything.
func (m *Manifest) Validate() error {
	if _, err := vm.ParseVariant(m.Machine.Variant); err != nil {
		return err
	}
	if m.Machine.Registers < 0 {
		return fmt.Errorf("manifest: negative register count %d", m.Machine.Registers)
	}
	for _, name := range m.Instructions.Modules {
		if _, ok := moduleTable(name, 1); !ok {
			return fmt.Errorf("manifest: unknown instruction module %q", name)
		}
	}
	return nil
}

// Table composes the instruction table the profile describes. Modules are
// extended in listed order and the terminator module is always appended,
// so every profile's language can close its branches.
func (m *Manifest) Table() (*isa.Table, error) {
	registers := m.Machine.Registers
	if registers <= 0 {
		registers = vm.DefaultRegisters
	}
	t := isa.New()
	for _, name := range m.Instructions.Modules {
		mod, ok := moduleTable(name, registers)
		if !ok {
			return nil, fmt.Errorf("manifest: unknown instruction module %q", name)
		}
		t.Extend(mod)
	}
	t.Extend(isa.Terminators())
	return t, nil
}

// Options maps the profile onto machine options.
func (m *Manifest) Options() (vm.Options, error) {
	variant, err := vm.ParseVariant(m.Machine.Variant)
	if err != nil {
		return vm.Options{}, err
	}
	return vm.Options{
		Variant:       variant,
		Registers:     m.Machine.Registers,
		TrackCoverage: m.Machine.TrackCoverage,
	}, nil
}

// Env builds a ready evaluation environment from the profile.
func (m *Manifest) Env() (*vm.Env, error) {
	table, err := m.Table()
	if err != nil {
		return nil, err
	}
	opts, err := m.Options()
	if err != nil {
		return nil, err
	}
	return vm.NewEnv(table, opts), nil
}

func moduleTable(name string, registers int) (*isa.Table, bool) {
	switch name {
	case "math":
		return isa.MathOps(), true
	case "stack":
		return isa.StackOps(), true
	case "bitwise":
		return isa.BitwiseOps(), true
	case "math-conditionals":
		return isa.MathConditionals(), true
	case "stack-conditionals":
		return isa.StackConditionals(), true
	case "register":
		return isa.RegisterOps(registers), true
	case "turing":
		return isa.TuringOps(), true
	case "terminators":
		return isa.Terminators(), true
	}
	return nil, false
}
