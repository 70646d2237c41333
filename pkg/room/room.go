// Package room implements the in-memory rendezvous store for remote
// sessions. Rooms are identified by short uppercase codes, hold at most two
// participants' synced selections and expire after a period of inactivity.
package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/scenarch/scenarch/pkg/domain"
)

// Selection is a participant's flattened preference payload as synced over
// the wire. Inventory carries toys, outfit carries wardrobe items.
type Selection struct {
	Role      string   `json:"role"`
	Intensity string   `json:"intensity"`
	Inventory []string `json:"inventory"`
	Outfit    []string `json:"outfit"`
	Kinks     []string `json:"kinks"`
}

// Merged is the combined preference set of every participant in a room.
// Sets are unioned with duplicates collapsed; intensity escalates to the
// highest level any participant selected.
type Merged struct {
	Intensity domain.Intensity `json:"intensity"`
	Roles     []string         `json:"roles"`
	Toys      []string         `json:"toys"`
	Kinks     []string         `json:"kinks"`
	Outfits   []string         `json:"outfits"`
}

// Status describes a room's participant state.
type Status struct {
	Code              string   `json:"room_code"`
	PartnersConnected int      `json:"partners_connected"`
	PartnerIDs        []string `json:"partner_ids"`
}

var (
	// ErrNotFound is returned for unknown or expired room codes.
	ErrNotFound = errors.New("room not found")
	// ErrEmpty is returned when generation is requested before any
	// participant has synced.
	ErrEmpty = errors.New("room empty or waiting for partner")
	// ErrFull is returned when a third participant tries to sync.
	ErrFull = errors.New("room already has two participants")
)

const (
	codeLen     = 4
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type roomState struct {
	code         string
	createdAt    time.Time
	lastActivity time.Time
	participants map[string]Selection
}

// Manager owns all live rooms. Safe for concurrent use.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	rooms map[string]*roomState
}

// NewManager creates a room manager. Rooms idle longer than ttl are dropped
// by Prune; ttl <= 0 disables expiry.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:   ttl,
		now:   time.Now,
		rooms: make(map[string]*roomState),
	}
}

// Create opens a new room and returns its code.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newCode()
	m.rooms[code] = &roomState{
		code:         code,
		createdAt:    m.now(),
		lastActivity: m.now(),
		participants: make(map[string]Selection),
	}
	return code
}

// Join validates that a room exists and returns its canonical code. Joining
// does not register a participant; the first Sync does.
func (m *Manager) Join(code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = strings.ToUpper(code)
	r, ok := m.rooms[code]
	if !ok {
		return "", ErrNotFound
	}
	r.lastActivity = m.now()
	return code, nil
}

// Close deletes a room.
func (m *Manager) Close(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = strings.ToUpper(code)
	if _, ok := m.rooms[code]; !ok {
		return ErrNotFound
	}
	delete(m.rooms, code)
	return nil
}

// Sync stores a participant's current selection in the room, replacing any
// previous payload from the same participant. Returns the number of
// participants that have synced so far.
func (m *Manager) Sync(code, userID string, sel Selection) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = strings.ToUpper(code)
	r, ok := m.rooms[code]
	if !ok {
		return 0, ErrNotFound
	}
	if _, known := r.participants[userID]; !known && len(r.participants) >= 2 {
		return 0, ErrFull
	}
	r.participants[userID] = sel
	r.lastActivity = m.now()
	return len(r.participants), nil
}

// Status reports who is connected to a room.
func (m *Manager) Status(code string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = strings.ToUpper(code)
	r, ok := m.rooms[code]
	if !ok {
		return Status{}, ErrNotFound
	}
	ids := make([]string, 0, len(r.participants))
	for id := range r.participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return Status{Code: code, PartnersConnected: len(r.participants), PartnerIDs: ids}, nil
}

// Merge combines every synced participant's selection in the room.
func (m *Manager) Merge(code string) (Merged, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = strings.ToUpper(code)
	r, ok := m.rooms[code]
	if !ok {
		return Merged{}, ErrNotFound
	}
	if len(r.participants) == 0 {
		return Merged{}, ErrEmpty
	}

	ids := make([]string, 0, len(r.participants))
	for id := range r.participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sels := make([]Selection, 0, len(ids))
	for _, id := range ids {
		sels = append(sels, r.participants[id])
	}
	return MergeSelections(sels...), nil
}

// MergeSelections unions the given selections; intensity escalates to the
// highest level present. Used both for rooms and for solo payloads.
func MergeSelections(sels ...Selection) Merged {
	out := Merged{Intensity: domain.IntensityAdventurous}
	toys := map[string]struct{}{}
	kinks := map[string]struct{}{}
	outfits := map[string]struct{}{}

	first := true
	for _, s := range sels {
		intensity := domain.ParseIntensity(s.Intensity)
		if first {
			out.Intensity = intensity
			first = false
		} else {
			out.Intensity = domain.Escalate(out.Intensity, intensity)
		}
		out.Roles = append(out.Roles, string(domain.ParseRole(s.Role)))
		collect(toys, s.Inventory)
		collect(kinks, s.Kinks)
		collect(outfits, s.Outfit)
	}

	out.Toys = sorted(toys)
	out.Kinks = sorted(kinks)
	out.Outfits = sorted(outfits)
	return out
}

// Prune drops every room idle longer than the TTL and returns how many were
// removed.
func (m *Manager) Prune() int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for code, r := range m.rooms {
		if r.lastActivity.Before(cutoff) {
			delete(m.rooms, code)
			removed++
		}
	}
	return removed
}

// Run prunes expired rooms on the given interval until the context is
// canceled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(); n > 0 {
				lgr.Printf("[INFO] pruned %d expired rooms", n)
			}
		}
	}
}

// newCode generates a room code not currently in use. Caller must hold the
// lock.
func (m *Manager) newCode() string {
	for {
		b := make([]byte, codeLen)
		for i := range b {
			b[i] = codeCharset[rand.IntN(len(codeCharset))]
		}
		code := string(b)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}

func collect(set map[string]struct{}, items []string) {
	for _, item := range items {
		set[item] = struct{}{}
	}
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// String implements fmt.Stringer for diagnostics.
func (s Status) String() string {
	return fmt.Sprintf("room %s: %d connected", s.Code, s.PartnersConnected)
}
