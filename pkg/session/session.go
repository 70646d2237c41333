// Package session coordinates how a scene gets assembled: alone on one
// device, two people passing a single device, or two devices paired through
// a backend room. The coordinator owns the state machine and, in remote
// mode, the background sync and polling workers.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/scenarch/scenarch/pkg/client"
	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/prefs"
	"github.com/scenarch/scenarch/pkg/prompt"
	"github.com/scenarch/scenarch/pkg/room"
)

// State identifies where the coordinator is in the session flow.
type State string

// session states
const (
	StateSolo            State = "solo"
	StateTogetherFirst   State = "together:first-participant"
	StateTogetherHandoff State = "together:handoff"
	StateTogetherSecond  State = "together:second-participant"
	StateTogetherReady   State = "together:ready"
	StateRemoteUnpaired  State = "remote:unpaired"
	StateRemotePaired    State = "remote:paired"
)

//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure -fmt goimports . Backend

// Backend is the subset of the generation client the coordinator uses.
type Backend interface {
	CreateRoom(ctx context.Context) (client.RoomResult, error)
	JoinRoom(ctx context.Context, code string) (client.RoomResult, error)
	LeaveRoom(ctx context.Context, code string) error
	RoomStatus(ctx context.Context, code string) (room.Status, error)
	Sync(ctx context.Context, code, userID string, sel room.Selection) error
	GenerateRoom(ctx context.Context, code string) (client.GenerateResult, error)
}

// Config tunes the coordinator's timers. Zero values get production
// defaults; tests shrink them.
type Config struct {
	DebounceDelay time.Duration // quiet period before a preference change is synced
	PollInterval  time.Duration // cadence of partner status polling
	PollWindow    time.Duration // how long polling runs before silently stopping
}

// Coordinator drives the session state machine. Safe for concurrent use.
type Coordinator struct {
	prefs   *prefs.Store
	backend Backend
	userID  string

	debounceDelay time.Duration
	pollInterval  time.Duration
	pollWindow    time.Duration

	mu         sync.Mutex
	state      State
	snapA      domain.PartnerSnapshot
	snapB      domain.PartnerSnapshot
	intensityA domain.Intensity
	intensityB domain.Intensity
	roomCode   string

	syncCh     chan struct{}
	cancelSync context.CancelFunc
	wg         sync.WaitGroup
}

// NewCoordinator creates a coordinator starting in solo state.
func NewCoordinator(store *prefs.Store, backend Backend, cfg Config) *Coordinator {
	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = time.Second
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.PollWindow == 0 {
		cfg.PollWindow = 10 * time.Minute
	}
	return &Coordinator{
		prefs:         store,
		backend:       backend,
		userID:        uuid.New().String(),
		debounceDelay: cfg.DebounceDelay,
		pollInterval:  cfg.PollInterval,
		pollWindow:    cfg.PollWindow,
		state:         StateSolo,
	}
}

// State returns the current session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RoomCode returns the active rendezvous code, empty outside remote mode.
func (c *Coordinator) RoomCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomCode
}

// UserID returns this side's participant identity.
func (c *Coordinator) UserID() string { return c.userID }

// StartTogether begins a same-device pair session. Live selections are
// cleared to unset so the first participant enters theirs from a blank
// slate; role, intensity, no-go list and templates stay as they are.
func (c *Coordinator) StartTogether(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSolo {
		return fmt.Errorf("together session can only start from solo, currently %s", c.state)
	}
	if err := c.prefs.ClearSelections(ctx); err != nil {
		return fmt.Errorf("clear selections for first participant: %w", err)
	}
	c.state = StateTogetherFirst
	return nil
}

// CompleteFirst captures the first participant's snapshot, clears the live
// selections again for the second participant and moves to the handoff gate.
func (c *Coordinator) CompleteFirst(ctx context.Context, firstName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateTogetherFirst {
		return fmt.Errorf("first participant not active, currently %s", c.state)
	}

	c.snapA = c.prefs.Snapshot(firstName)
	c.intensityA = c.prefs.Intensity()
	if err := c.prefs.ClearSelections(ctx); err != nil {
		return fmt.Errorf("clear selections for handoff: %w", err)
	}
	c.state = StateTogetherHandoff
	return nil
}

// ConfirmHandoff is the manual gate between participants: the first person
// confirms they have passed the device, opening selection entry for the
// second.
func (c *Coordinator) ConfirmHandoff() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateTogetherHandoff {
		return fmt.Errorf("no handoff pending, currently %s", c.state)
	}
	c.state = StateTogetherSecond
	return nil
}

// CompleteSecond captures the second participant's snapshot and readies the
// session for merged generation.
func (c *Coordinator) CompleteSecond(secondName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateTogetherSecond {
		return fmt.Errorf("second participant not active, currently %s", c.state)
	}
	c.snapB = c.prefs.Snapshot(secondName)
	c.intensityB = c.prefs.Intensity()
	c.state = StateTogetherReady
	return nil
}

// CancelSession abandons any together or remote session and returns to
// solo. Captured snapshots are discarded.
func (c *Coordinator) CancelSession(ctx context.Context) {
	c.mu.Lock()
	code := c.roomCode
	c.snapA, c.snapB = domain.PartnerSnapshot{}, domain.PartnerSnapshot{}
	c.roomCode = ""
	c.state = StateSolo
	cancel := c.cancelSync
	c.cancelSync = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		c.wg.Wait()
	}
	if code != "" {
		if err := c.backend.LeaveRoom(ctx, code); err != nil {
			lgr.Printf("[WARN] failed to close room %s: %v", code, err)
		}
	}
}

// CreateRemote opens a backend room and enters remote mode. On failure the
// coordinator stays in its prior state.
func (c *Coordinator) CreateRemote(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state != StateSolo {
		c.mu.Unlock()
		return "", fmt.Errorf("remote session can only start from solo, currently %s", c.state)
	}
	c.mu.Unlock()

	res, err := c.backend.CreateRoom(ctx)
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	c.enterRemote(res.Code)
	return res.Code, nil
}

// JoinRemote joins an existing backend room by code and enters remote mode.
// On failure the coordinator stays in its prior state.
func (c *Coordinator) JoinRemote(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.state != StateSolo {
		c.mu.Unlock()
		return fmt.Errorf("remote session can only start from solo, currently %s", c.state)
	}
	c.mu.Unlock()

	res, err := c.backend.JoinRoom(ctx, code)
	if err != nil {
		return fmt.Errorf("join room: %w", err)
	}
	c.enterRemote(res.Code)
	return nil
}

// enterRemote flips to unpaired state and starts the sync and poll workers.
func (c *Coordinator) enterRemote(code string) {
	workerCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.roomCode = code
	c.state = StateRemoteUnpaired
	c.syncCh = make(chan struct{}, 1)
	c.cancelSync = cancel
	c.mu.Unlock()

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.syncWorker(workerCtx)
	}()
	go func() {
		defer c.wg.Done()
		c.pollWorker(workerCtx)
	}()

	// push the initial state right away so the partner sees us
	c.NotifyChange()
}

// NotifyChange signals that local selections changed and should be synced
// after the debounce quiet period. No-op outside remote mode.
func (c *Coordinator) NotifyChange() {
	c.mu.Lock()
	ch := c.syncCh
	c.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default: // a sync is already pending
	}
}

// syncWorker pushes local selections to the room, debounced: each change
// signal resets the quiet timer and only the last state within a burst is
// sent. Failures are logged and retried on the next change.
func (c *Coordinator) syncWorker(ctx context.Context) {
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	for {
		select {
		case <-ctx.Done():
			debounceTimer.Stop()
			return
		case <-c.syncCh:
			debounceTimer.Stop()
			debounceTimer.Reset(c.debounceDelay)
		case <-debounceTimer.C:
			if err := c.backend.Sync(ctx, c.RoomCode(), c.userID, c.selection()); err != nil {
				lgr.Printf("[WARN] sync failed, will retry on next change: %v", err)
			}
		}
	}
}

// pollWorker checks partner presence on a fixed cadence and flips to paired
// when a second participant shows up. Polling silently stops after the
// window expires; the session state is left as is.
func (c *Coordinator) pollWorker(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(c.pollWindow)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			lgr.Printf("[INFO] partner polling window expired for room %s", c.RoomCode())
			return
		case <-ticker.C:
			status, err := c.backend.RoomStatus(ctx, c.RoomCode())
			if err != nil {
				lgr.Printf("[DEBUG] room status poll failed: %v", err)
				continue
			}
			c.mu.Lock()
			if status.PartnersConnected >= 2 && c.state == StateRemoteUnpaired {
				c.state = StateRemotePaired
				lgr.Printf("[INFO] partner joined room %s", c.roomCode)
			}
			c.mu.Unlock()
		}
	}
}

// selection flattens the current preferences into the sync wire shape.
// Wants and okay items are included; avoided items are not sent.
func (c *Coordinator) selection() room.Selection {
	toys := c.prefs.Selection(domain.CategoryToys).Groups()
	kinks := c.prefs.Selection(domain.CategoryKinks).Groups()
	outfits := c.prefs.Selection(domain.CategoryOutfits).Groups()

	return room.Selection{
		Role:      string(c.prefs.Role()),
		Intensity: string(c.prefs.Intensity()),
		Inventory: append(toys.Wants, toys.Okay...),
		Kinks:     append(kinks.Wants, kinks.Okay...),
		Outfit:    append(outfits.Wants, outfits.Okay...),
	}
}

// AssemblePrompt renders the generation prompt for local modes. In solo the
// live selections are used directly; in together:ready the two snapshots are
// merged with intensity escalated to the higher of the two. Remote sessions
// must use GenerateRemote instead.
func (c *Coordinator) AssemblePrompt() (prompt.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var data prompt.MergedData
	switch c.state {
	case StateSolo:
		data = prompt.Solo(c.prefs.Snapshot(""), c.prefs.Intensity())
	case StateTogetherReady:
		data = prompt.Merge(c.snapA, c.snapB, domain.Escalate(c.intensityA, c.intensityB))
	case StateRemoteUnpaired, StateRemotePaired:
		return prompt.Result{}, fmt.Errorf("remote sessions delegate merging to the backend")
	default:
		return prompt.Result{}, fmt.Errorf("session not ready for generation, currently %s", c.state)
	}
	return prompt.Build(data, c.prefs.NoGoList(), c.prefs.Template()), nil
}

// GenerateRemote asks the backend to merge the room and generate. Only valid
// once paired.
func (c *Coordinator) GenerateRemote(ctx context.Context) (client.GenerateResult, error) {
	c.mu.Lock()
	state, code := c.state, c.roomCode
	c.mu.Unlock()

	if state != StateRemotePaired {
		return client.GenerateResult{}, fmt.Errorf("remote generation requires a paired session, currently %s", state)
	}
	res, err := c.backend.GenerateRoom(ctx, code)
	if err != nil {
		return client.GenerateResult{}, fmt.Errorf("remote generate: %w", err)
	}
	return res, nil
}
