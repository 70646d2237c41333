// Package prompt merges partner selections and renders them into a
// generation prompt. Everything here is pure: no input combination produces
// an error, empty categories degrade to a literal "none".
package prompt

import (
	"sort"
	"strings"

	"github.com/scenarch/scenarch/pkg/catalog"
	"github.com/scenarch/scenarch/pkg/domain"
)

// MergedData is the structured result of combining partner snapshots,
// returned alongside the rendered text for diagnostics.
type MergedData struct {
	Categories map[domain.Category]domain.Grouped `json:"categories"`
	Roles      []string                           `json:"roles"`
	Intensity  domain.Intensity                   `json:"intensity"`
}

// Result is the assembled prompt plus the merged data that produced it.
type Result struct {
	Text string     `json:"text"`
	Data MergedData `json:"data"`
}

// Merge combines two partner snapshots into a single preference set. Per
// category, the wants, okay and avoid sets are unioned with duplicates
// collapsed; the result does not depend on argument order except for the
// ordering of the role labels.
func Merge(a, b domain.PartnerSnapshot, intensity domain.Intensity) MergedData {
	cats := make(map[domain.Category]domain.Grouped, 4)
	for _, c := range domain.Categories() {
		ga, gb := a.Category(c), b.Category(c)
		cats[c] = domain.Grouped{
			Wants: union(ga.Wants, gb.Wants),
			Okay:  union(ga.Okay, gb.Okay),
			Avoid: union(ga.Avoid, gb.Avoid),
		}
	}
	return MergedData{
		Categories: cats,
		Roles:      []string{a.Label(), b.Label()},
		Intensity:  intensity,
	}
}

// Solo wraps a single snapshot as merged data. The role is rendered bare,
// without the "<name> (<role>)" decoration used for pairs.
func Solo(p domain.PartnerSnapshot, intensity domain.Intensity) MergedData {
	cats := make(map[domain.Category]domain.Grouped, 4)
	for _, c := range domain.Categories() {
		cats[c] = p.Category(c)
	}
	return MergedData{
		Categories: cats,
		Roles:      []string{string(p.Role)},
		Intensity:  intensity,
	}
}

// Build renders merged data into prompt text. When template is empty the
// fixed default structure is used; otherwise each recognized placeholder is
// substituted and unrecognized ones are left verbatim.
func Build(data MergedData, noGo []string, template string) Result {
	if template == "" {
		template = catalog.DefaultTemplate
	}

	r := strings.NewReplacer(
		"{intensity}", string(data.Intensity),
		"{participants}", strings.Join(data.Roles, ", "),
		"{all_toys}", formatCategory(data.Categories[domain.CategoryToys]),
		"{all_kinks}", formatCategory(data.Categories[domain.CategoryKinks]),
		"{all_wardrobe}", formatCategory(data.Categories[domain.CategoryOutfits]),
		"{all_settings}", formatCategory(data.Categories[domain.CategorySettings]),
		"{no_go_list}", strings.Join(noGo, ", "),
		"{toneModifier}", catalog.ToneModifier(data.Intensity),
	)

	return Result{Text: r.Replace(template), Data: data}
}

// formatCategory renders one category's sets as labeled blocks. Preferred
// items always come first; this signals generation priority downstream.
func formatCategory(g domain.Grouped) string {
	var parts []string
	if len(g.Wants) > 0 {
		parts = append(parts, "PREFERRED (Must Include): "+strings.Join(g.Wants, ", "))
	}
	if len(g.Okay) > 0 {
		parts = append(parts, "ACCEPTED (Optional): "+strings.Join(g.Okay, ", "))
	}
	if len(g.Avoid) > 0 {
		parts = append(parts, "AVOID IF POSSIBLE: "+strings.Join(g.Avoid, ", "))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "\n")
}

// union merges two string sets, collapsing duplicates, sorted output.
func union(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
