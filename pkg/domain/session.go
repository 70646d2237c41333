package domain

// Role is a participant's declared dynamic for the session.
type Role string

// participant roles
const (
	RoleDom    Role = "dom"
	RoleSub    Role = "sub"
	RoleSwitch Role = "switch"
	RoleVoyeur Role = "voyeur"
)

// Roles returns all selectable roles.
func Roles() []Role {
	return []Role{RoleDom, RoleSub, RoleSwitch, RoleVoyeur}
}

// ParseRole returns the role matching s, falling back to switch.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDom, RoleSub, RoleSwitch, RoleVoyeur:
		return Role(s)
	default:
		return RoleSwitch
	}
}

// Intensity is the global scene intensity level.
type Intensity string

// intensity levels, ordered from mildest to wildest
const (
	IntensityCasual      Intensity = "casual"
	IntensityAdventurous Intensity = "adventurous"
	IntensityWeird       Intensity = "weird"
	IntensityDemon       Intensity = "demon"
)

var intensityRank = map[Intensity]int{
	IntensityCasual:      0,
	IntensityAdventurous: 1,
	IntensityWeird:       2,
	IntensityDemon:       3,
}

// Intensities returns all intensity levels in escalation order.
func Intensities() []Intensity {
	return []Intensity{IntensityCasual, IntensityAdventurous, IntensityWeird, IntensityDemon}
}

// ParseIntensity returns the intensity matching s, falling back to adventurous.
func ParseIntensity(s string) Intensity {
	if _, ok := intensityRank[Intensity(s)]; ok {
		return Intensity(s)
	}
	return IntensityAdventurous
}

// Restricted reports whether this intensity uses the shortened selection cycle
// without the "not" state.
func (i Intensity) Restricted() bool {
	return i == IntensityDemon
}

// Escalate returns the higher of two intensities. Unknown values rank as
// adventurous.
func Escalate(a, b Intensity) Intensity {
	ra, ok := intensityRank[a]
	if !ok {
		ra = intensityRank[IntensityAdventurous]
		a = IntensityAdventurous
	}
	rb, ok := intensityRank[b]
	if !ok {
		rb = intensityRank[IntensityAdventurous]
		b = IntensityAdventurous
	}
	if rb > ra {
		return b
	}
	return a
}

// PartnerSnapshot captures one participant's finished selections. It is taken
// when a participant completes their turn and is immutable afterwards.
type PartnerSnapshot struct {
	Name       string               `json:"name"`
	Role       Role                 `json:"role"`
	Selections map[Category]Grouped `json:"selections"`
}

// Category returns the snapshot's grouped selection for a category, empty when
// the category was never touched.
func (p PartnerSnapshot) Category(c Category) Grouped {
	if p.Selections == nil {
		return Grouped{}
	}
	return p.Selections[c]
}

// Label renders the participant as "<name> (<role>)", or the bare role when no
// name is set.
func (p PartnerSnapshot) Label() string {
	if p.Name == "" {
		return string(p.Role)
	}
	return p.Name + " (" + string(p.Role) + ")"
}
