package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateNext(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		restricted bool
		want       State
	}{
		{"unset to wants", StateUnset, false, StateWants},
		{"wants to okay", StateWants, false, StateOkay},
		{"okay to not", StateOkay, false, StateNot},
		{"not wraps to unset", StateNot, false, StateUnset},
		{"restricted okay wraps to unset", StateOkay, true, StateUnset},
		{"restricted unset to wants", StateUnset, true, StateWants},
		{"garbage treated as unset", State("bogus"), false, StateWants},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Next(tt.restricted))
		})
	}

	t.Run("full cycle length 4 normal", func(t *testing.T) {
		s := StateUnset
		for i := 0; i < 4; i++ {
			s = s.Next(false)
		}
		assert.Equal(t, StateUnset, s)
	})

	t.Run("full cycle length 3 restricted", func(t *testing.T) {
		s := StateUnset
		for i := 0; i < 3; i++ {
			s = s.Next(true)
		}
		assert.Equal(t, StateUnset, s)
	})
}

func TestSelectionCycle(t *testing.T) {
	sel := Selection{}

	assert.Equal(t, StateWants, sel.Cycle("rope", false))
	assert.Equal(t, StateOkay, sel.Cycle("rope", false))
	assert.Equal(t, StateNot, sel.Cycle("rope", false))

	// cycling back to unset removes the key, keeping the map sparse
	assert.Equal(t, StateUnset, sel.Cycle("rope", false))
	_, present := sel["rope"]
	assert.False(t, present)
}

func TestSelectionGroups(t *testing.T) {
	sel := Selection{
		"rope":      StateWants,
		"cuffs":     StateWants,
		"blindfold": StateOkay,
		"gag":       StateNot,
	}
	g := sel.Groups()
	assert.Equal(t, []string{"cuffs", "rope"}, g.Wants)
	assert.Equal(t, []string{"blindfold"}, g.Okay)
	assert.Equal(t, []string{"gag"}, g.Avoid)
	assert.False(t, g.Empty())
	assert.True(t, Selection{}.Groups().Empty())
}

func TestEscalate(t *testing.T) {
	tests := []struct {
		a, b, want Intensity
	}{
		{IntensityCasual, IntensityWeird, IntensityWeird},
		{IntensityDemon, IntensityCasual, IntensityDemon},
		{IntensityAdventurous, IntensityAdventurous, IntensityAdventurous},
		{Intensity("junk"), IntensityCasual, IntensityAdventurous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escalate(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestPartnerSnapshotLabel(t *testing.T) {
	p := PartnerSnapshot{Name: "Alex", Role: RoleDom}
	assert.Equal(t, "Alex (dom)", p.Label())

	anon := PartnerSnapshot{Role: RoleSwitch}
	assert.Equal(t, "switch", anon.Label())
}

func TestParseFallbacks(t *testing.T) {
	assert.Equal(t, RoleSwitch, ParseRole("pirate"))
	assert.Equal(t, RoleDom, ParseRole("dom"))
	assert.Equal(t, IntensityAdventurous, ParseIntensity(""))
	assert.Equal(t, IntensityDemon, ParseIntensity("demon"))
	assert.True(t, IntensityDemon.Restricted())
	assert.False(t, IntensityCasual.Restricted())
}
