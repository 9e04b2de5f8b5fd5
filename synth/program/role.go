package program

import "fmt"

// Role is the way a modulator feeds the operator that lists it.
type Role uint8

const (
	// RoleAmp modulators pull amplitude toward Amp2.
	RoleAmp Role = iota
	// RoleAmpRatio modulators pull amplitude toward Amp*Amp2.
	RoleAmpRatio
	// RoleFreq modulators pull frequency toward Freq2.
	RoleFreq
	// RoleFreqRatio modulators pull frequency toward Freq*Freq2.
	RoleFreqRatio
	// RolePhase modulators add absolute phase offsets.
	RolePhase
	// RoleFreqPhase modulators add frequency-relative phase offsets.
	RoleFreqPhase
	// RoleCarrier operators are layered onto the output.
	RoleCarrier

	NumRoles
)

var roleNames = [NumRoles]string{
	RoleAmp:       "amp",
	RoleAmpRatio:  "ramp",
	RoleFreq:      "freq",
	RoleFreqRatio: "rfreq",
	RolePhase:     "phase",
	RoleFreqPhase: "fphase",
	RoleCarrier:   "carrier",
}

func (r Role) String() string {
	if r < NumRoles {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", r)
}

// ParseRole resolves a role by name.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("program: unknown role %q", name)
}

// ModLists maps each role to its modulator operator ids.
type ModLists [NumRoles][]int

// RoleSet is a set of roles.
type RoleSet uint8

// Has reports whether r is in s.
func (s RoleSet) Has(r Role) bool { return s&(1<<r) != 0 }

// With returns s with r added.
func (s RoleSet) With(r Role) RoleSet { return s | 1<<r }

// Set replaces the list for r and marks it as updated.
func (o *OpData) Set(r Role, ids ...int) {
	o.Mods[r] = ids
	o.ModsSet = o.ModsSet.With(r)
}
