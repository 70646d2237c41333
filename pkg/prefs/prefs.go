// Package prefs keeps the user-facing preference state: per-category item
// selections, custom items, role, intensity, the no-go list and the active
// prompt template. All state is held in memory and written through to the
// settings store after every mutation, so a restart resumes where the user
// left off.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/scenarch/scenarch/pkg/catalog"
	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/repository"
)

// Settings is the persistence surface the store writes through to.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store owns the in-memory preference state. Safe for concurrent use.
type Store struct {
	settings Settings

	mu         sync.Mutex
	selections map[domain.Category]domain.Selection
	custom     map[domain.Category][]string
	role       domain.Role
	intensity  domain.Intensity
	noGo       []string
	template   string
	params     domain.SamplingParams
	summary    string
}

// NewStore creates a preference store writing through to the given settings
// backend. Call Load before first use.
func NewStore(settings Settings) *Store {
	return &Store{
		settings:   settings,
		selections: make(map[domain.Category]domain.Selection),
		custom:     make(map[domain.Category][]string),
		role:       domain.RoleSwitch,
		intensity:  domain.IntensityAdventurous,
		noGo:       catalog.DefaultNoGoList(),
		params:     domain.DefaultSamplingParams(),
	}
}

// Load populates the store from persisted state. Missing keys fall back to
// defaults: every built-in item starts as "wants". Malformed values are
// treated the same as missing ones rather than failing the load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range domain.Categories() {
		sel, err := s.loadSelection(ctx, c)
		if err != nil {
			return err
		}
		s.selections[c] = sel

		custom, err := s.loadCustom(ctx, c)
		if err != nil {
			return err
		}
		s.custom[c] = custom
	}

	if v, err := s.settings.Get(ctx, repository.KeyRole); err != nil {
		return fmt.Errorf("load role: %w", err)
	} else if v != "" {
		var raw string
		if json.Unmarshal([]byte(v), &raw) == nil {
			s.role = domain.ParseRole(raw)
		}
	}

	if v, err := s.settings.Get(ctx, repository.KeyIntensity); err != nil {
		return fmt.Errorf("load intensity: %w", err)
	} else if v != "" {
		var raw string
		if json.Unmarshal([]byte(v), &raw) == nil {
			s.intensity = domain.ParseIntensity(raw)
		}
	}

	if v, err := s.settings.Get(ctx, repository.KeyNoGoList); err != nil {
		return fmt.Errorf("load no-go list: %w", err)
	} else if v != "" {
		var list []string
		if json.Unmarshal([]byte(v), &list) == nil {
			s.noGo = list
		}
	}

	if v, err := s.settings.Get(ctx, repository.KeyPromptTemplate); err != nil {
		return fmt.Errorf("load template: %w", err)
	} else if v != "" {
		var tpl string
		if json.Unmarshal([]byte(v), &tpl) == nil {
			s.template = tpl
		}
	}

	if v, err := s.settings.Get(ctx, repository.KeySamplingParams); err != nil {
		return fmt.Errorf("load sampling params: %w", err)
	} else if v != "" {
		params := domain.DefaultSamplingParams()
		if json.Unmarshal([]byte(v), &params) == nil {
			s.params = params
		}
	}

	if v, err := s.settings.Get(ctx, repository.KeyChatSummary); err != nil {
		return fmt.Errorf("load chat summary: %w", err)
	} else if v != "" {
		var sum string
		if json.Unmarshal([]byte(v), &sum) == nil {
			s.summary = sum
		}
	}

	return nil
}

func (s *Store) loadSelection(ctx context.Context, c domain.Category) (domain.Selection, error) {
	v, err := s.settings.Get(ctx, repository.KeySelectionPrefix+string(c))
	if err != nil {
		return nil, fmt.Errorf("load %s selection: %w", c, err)
	}
	if v == "" {
		return catalog.DefaultSelection(c), nil
	}
	var sel domain.Selection
	if err := json.Unmarshal([]byte(v), &sel); err != nil {
		return catalog.DefaultSelection(c), nil // corrupt state resets to defaults
	}
	return sel, nil
}

func (s *Store) loadCustom(ctx context.Context, c domain.Category) ([]string, error) {
	v, err := s.settings.Get(ctx, repository.KeyCustomPrefix+string(c))
	if err != nil {
		return nil, fmt.Errorf("load %s custom items: %w", c, err)
	}
	if v == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// Cycle advances the item's tri-state in its category and persists the
// selection. Demon intensity skips the hard-exclude state.
func (s *Store) Cycle(ctx context.Context, c domain.Category, item string) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(c)
	sel.Cycle(item, s.intensity.Restricted())
	if err := s.persistSelection(ctx, c, sel); err != nil {
		return "", err
	}
	return sel[item], nil
}

// SetState pins an item to a specific state, bypassing the cycle order.
func (s *Store) SetState(ctx context.Context, c domain.Category, item string, st domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(c)
	sel.Set(item, st)
	return s.persistSelection(ctx, c, sel)
}

// AddCustom registers a user-defined item in the category. Names are
// lowercased and trimmed; empty names are ignored, duplicates are a no-op.
// New items start as "wants".
func (s *Store) AddCustom(ctx context.Context, c domain.Category, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.custom[c], name) || slices.Contains(catalog.Items(c), name) {
		return nil
	}
	s.custom[c] = append(s.custom[c], name)
	if err := s.persistCustom(ctx, c); err != nil {
		return err
	}

	sel := s.selection(c)
	sel.Set(name, domain.StateWants)
	return s.persistSelection(ctx, c, sel)
}

// RemoveCustom drops a user-defined item and its selection state. Built-in
// items cannot be removed.
func (s *Store) RemoveCustom(ctx context.Context, c domain.Category, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.custom[c], name)
	if idx < 0 {
		return nil
	}
	s.custom[c] = slices.Delete(s.custom[c], idx, idx+1)
	if err := s.persistCustom(ctx, c); err != nil {
		return err
	}

	sel := s.selection(c)
	delete(sel, name)
	return s.persistSelection(ctx, c, sel)
}

// Items lists every item in the category, built-ins first then custom ones
// in insertion order.
func (s *Store) Items(c domain.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(catalog.Items(c))
	return append(out, s.custom[c]...)
}

// Selection returns a copy of the category's current selection state.
func (s *Store) Selection(c domain.Category) domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection(c).Clone()
}

// Snapshot captures the full preference state for merging, labeled with the
// given display name.
func (s *Store) Snapshot(name string) domain.PartnerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.PartnerSnapshot{
		Name:       name,
		Role:       s.role,
		Selections: make(map[domain.Category]domain.Grouped, len(s.selections)),
	}
	for _, c := range domain.Categories() {
		snap.Selections[c] = s.selection(c).Groups()
	}
	return snap
}

// Role returns the user's current role.
func (s *Store) Role() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// SetRole updates and persists the user's role.
func (s *Store) SetRole(ctx context.Context, r domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = r
	return s.persistJSON(ctx, repository.KeyRole, string(r))
}

// Intensity returns the current intensity level.
func (s *Store) Intensity() domain.Intensity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intensity
}

// SetIntensity updates and persists the intensity level. Switching into
// demon mode promotes existing hard-excludes to "okay" so the restricted
// cycle never strands an unreachable state.
func (s *Store) SetIntensity(ctx context.Context, i domain.Intensity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intensity = i
	if err := s.persistJSON(ctx, repository.KeyIntensity, string(i)); err != nil {
		return err
	}

	if !i.Restricted() {
		return nil
	}
	for _, c := range domain.Categories() {
		sel := s.selection(c)
		changed := false
		for item, st := range sel {
			if st == domain.StateNot {
				sel[item] = domain.StateOkay
				changed = true
			}
		}
		if changed {
			if err := s.persistSelection(ctx, c, sel); err != nil {
				return err
			}
		}
	}
	return nil
}

// NoGoList returns a copy of the hard-limit terms.
func (s *Store) NoGoList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.noGo)
}

// SetNoGoList replaces and persists the hard-limit terms.
func (s *Store) SetNoGoList(ctx context.Context, list []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noGo = slices.Clone(list)
	return s.persistJSON(ctx, repository.KeyNoGoList, s.noGo)
}

// Template returns the active custom template, empty when the built-in
// default is in effect.
func (s *Store) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetTemplate activates a custom prompt template; an empty string reverts to
// the built-in default.
func (s *Store) SetTemplate(ctx context.Context, tpl string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = tpl
	if tpl == "" {
		return s.settings.Delete(ctx, repository.KeyPromptTemplate)
	}
	return s.persistJSON(ctx, repository.KeyPromptTemplate, tpl)
}

// Params returns the current sampling parameters.
func (s *Store) Params() domain.SamplingParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams updates and persists the sampling parameters.
func (s *Store) SetParams(ctx context.Context, p domain.SamplingParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	return s.persistJSON(ctx, repository.KeySamplingParams, p)
}

// Summary returns the continuity summary carried between scene generations.
func (s *Store) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// SetSummary replaces and persists the continuity summary; an empty string
// clears it.
func (s *Store) SetSummary(ctx context.Context, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	if summary == "" {
		return s.settings.Delete(ctx, repository.KeyChatSummary)
	}
	return s.persistJSON(ctx, repository.KeyChatSummary, summary)
}

// ClearSelections empties every category's selection so all items sit
// untagged. Custom items stay registered, and role, intensity, no-go list,
// template, sampling params and summary are untouched. The empty maps are
// persisted, so a reload keeps the cleared state instead of falling back to
// the all-wants defaults.
func (s *Store) ClearSelections(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range domain.Categories() {
		s.selections[c] = domain.Selection{}
		if err := s.persistSelection(ctx, c, s.selections[c]); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards all preference state and returns every category to its
// all-wants defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range domain.Categories() {
		s.selections[c] = catalog.DefaultSelection(c)
		s.custom[c] = nil
		if err := s.settings.Delete(ctx, repository.KeySelectionPrefix+string(c)); err != nil {
			return fmt.Errorf("reset %s selection: %w", c, err)
		}
		if err := s.settings.Delete(ctx, repository.KeyCustomPrefix+string(c)); err != nil {
			return fmt.Errorf("reset %s custom items: %w", c, err)
		}
	}

	s.role = domain.RoleSwitch
	s.intensity = domain.IntensityAdventurous
	s.noGo = catalog.DefaultNoGoList()
	s.template = ""
	s.params = domain.DefaultSamplingParams()
	s.summary = ""

	for _, key := range []string{
		repository.KeyRole, repository.KeyIntensity, repository.KeyNoGoList,
		repository.KeyPromptTemplate, repository.KeySamplingParams, repository.KeyChatSummary,
	} {
		if err := s.settings.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// selection returns the live selection map for a category, creating the
// default one on first touch. Caller must hold the lock.
func (s *Store) selection(c domain.Category) domain.Selection {
	sel, ok := s.selections[c]
	if !ok {
		sel = catalog.DefaultSelection(c)
		s.selections[c] = sel
	}
	return sel
}

func (s *Store) persistSelection(ctx context.Context, c domain.Category, sel domain.Selection) error {
	if err := s.persistJSON(ctx, repository.KeySelectionPrefix+string(c), sel); err != nil {
		return fmt.Errorf("persist %s selection: %w", c, err)
	}
	return nil
}

func (s *Store) persistCustom(ctx context.Context, c domain.Category) error {
	if err := s.persistJSON(ctx, repository.KeyCustomPrefix+string(c), s.custom[c]); err != nil {
		return fmt.Errorf("persist %s custom items: %w", c, err)
	}
	return nil
}

func (s *Store) persistJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.settings.Set(ctx, key, string(data))
}
