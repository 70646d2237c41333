// Package catalog holds the built-in item schema, the default no-go list and
// the default prompt template. Everything here is a starting point the user
// can override; nothing is consulted after the first persisted change.
package catalog

import "github.com/scenarch/scenarch/pkg/domain"

// Items returns the built-in item names for a category. Unknown categories
// return nil.
func Items(c domain.Category) []string {
	return schema[c]
}

// DefaultSelection returns a fresh selection for a category with every
// built-in item tagged "wants". Used on first load and after a corrupt
// state fallback.
func DefaultSelection(c domain.Category) domain.Selection {
	sel := make(domain.Selection)
	for _, item := range schema[c] {
		sel[item] = domain.StateWants
	}
	return sel
}

// DefaultNoGoList returns the stock set of always-excluded terms.
func DefaultNoGoList() []string {
	out := make([]string, len(defaultNoGo))
	copy(out, defaultNoGo)
	return out
}

var schema = map[domain.Category][]string{
	domain.CategoryToys: {
		"rope", "cuffs", "blindfold", "feather tickler", "paddle", "flogger",
		"massage oil", "gag", "collar", "wax candle", "ice cubes", "riding crop",
		"silk scarf", "vibrator",
	},
	domain.CategoryKinks: {
		"bondage", "sensory play", "roleplay", "spanking", "dominance",
		"submission", "teasing", "edging", "dirty talk", "wax play",
		"temperature play", "praise", "degradation", "voyeurism", "exhibitionism",
	},
	domain.CategoryOutfits: {
		"lingerie", "leather", "lace", "silk robe", "latex", "stockings",
		"costume", "nothing at all", "collar and leash", "formal wear",
	},
	domain.CategorySettings: {
		"bedroom", "hotel room", "candlelit bath", "cabin retreat", "kitchen",
		"office after hours", "beach at night", "dungeon", "car", "shower",
	},
}

// defaultNoGo is the stock hard-limit list; these terms are excluded from
// every generated scene regardless of per-session selections.
var defaultNoGo = []string{
	"minors", "animals", "non-consent", "blood", "scat",
	"permanent marks", "injury", "family members",
}

// DefaultTemplate is the fixed prompt structure used when no custom template
// is active. Section ordering matters: preferred items always precede
// optional ones within each category block.
const DefaultTemplate = `Write an intimate scene incorporating the following elements.

[INVENTORY & PREFERENCES]
Toys:
{all_toys}

Kinks:
{all_kinks}

Outfits:
{all_wardrobe}

Settings:
{all_settings}

[SCENE CONFIGURATION]
Intensity Level: {intensity}
Roles/Dynamics: {participants}

[RESTRICTIONS]
Strictly avoid: {no_go_list}

{toneModifier}`

// ToneModifier returns the intensity-specific tone instruction appended to
// the default template.
func ToneModifier(i domain.Intensity) string {
	switch i {
	case domain.IntensityCasual:
		return "Keep the tone playful, warm and affectionate. Build slowly."
	case domain.IntensityWeird:
		return "Lean into the unconventional. Surprise with unexpected twists and odd pairings."
	case domain.IntensityDemon:
		return "No holds barred. Push boundaries hard, relentless pace, overwhelming detail."
	default:
		return "Confident and exploratory tone, balancing comfort with novelty."
	}
}
