package actuator

import (
	"fmt"
	"sync"
)

// Coils is energization of four coil leads in (c1, c2, c3, c4) order.
type Coils [4]uint8

// Reversed returns the state with lead order reversed.
func (c Coils) Reversed() Coils {
	return Coils{c[3], c[2], c[1], c[0]}
}

// Interferes reports if both leads of the same coil are energized.
func (c Coils) Interferes() bool {
	return c[0] > 0 && c[1] > 0 || c[2] > 0 && c[3] > 0
}

// Mode selects the coil sequence used to step the motor.
type Mode int

const (
	// Single energizes one lead at a time (wave drive). Least torque, most
	// efficient.
	Single Mode = iota
	// Double energizes two leads at a time (full step). Most torque, least
	// efficient.
	Double
	// Half interleaves single and double patterns doubling step resolution.
	Half
)

var (
	modesMu sync.RWMutex
	modes   = []modeDef{
		{
			name: "single",
			seq: []Coils{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, 1},
			},
		},
		{
			name: "double",
			seq: []Coils{
				{1, 0, 1, 0},
				{0, 1, 1, 0},
				{0, 1, 0, 1},
				{1, 0, 0, 1},
			},
		},
		{
			name: "half",
			seq: []Coils{
				{1, 0, 0, 0},
				{1, 0, 1, 0},
				{0, 0, 1, 0},
				{0, 1, 1, 0},
				{0, 1, 0, 0},
				{0, 1, 0, 1},
				{0, 0, 0, 1},
				{1, 0, 0, 1},
			},
		},
	}
	modeNames = map[string]Mode{
		"single": Single,
		"wave":   Single,
		"double": Double,
		"full":   Double,
		"half":   Half,
	}
)

type modeDef struct {
	name string
	seq  []Coils
}

// RegisterMode adds a new step pattern reachable by name and aliases.
func RegisterMode(name string, seq []Coils, aliases ...string) (Mode, error) {
	if len(seq) == 0 {
		return 0, fmt.Errorf("step mode %q: empty pattern", name)
	}
	modesMu.Lock()
	defer modesMu.Unlock()
	names := append([]string{name}, aliases...)
	for _, n := range names {
		if _, ok := modeNames[n]; ok {
			return 0, fmt.Errorf("step mode %q already registered", n)
		}
	}
	m := Mode(len(modes))
	modes = append(modes, modeDef{
		name: name,
		seq:  append([]Coils(nil), seq...),
	})
	for _, n := range names {
		modeNames[n] = m
	}
	return m, nil
}

// LookupMode resolves a mode by name.
func LookupMode(name string) (Mode, bool) {
	modesMu.RLock()
	defer modesMu.RUnlock()
	m, ok := modeNames[name]
	return m, ok
}

// ParseMode resolves a mode by name falling back to Single for names it
// doesn't know.
func ParseMode(name string) Mode {
	if m, ok := LookupMode(name); ok {
		return m
	}
	return Single
}

func (m Mode) def() modeDef {
	modesMu.RLock()
	defer modesMu.RUnlock()
	if m < 0 || int(m) >= len(modes) {
		return modes[Single]
	}
	return modes[m]
}

// Pattern returns a copy of the coil sequence of the mode.
func (m Mode) Pattern() []Coils {
	return append([]Coils(nil), m.def().seq...)
}

func (m Mode) String() string {
	return m.def().name
}
