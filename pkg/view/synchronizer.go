package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Manu343726/nesview/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// ErrRender is reported when a display panics while applying a panel update
var ErrRender = errors.New("render failed")

// Mode selects what a step refreshes
type Mode int

const (
	// ModeFull refreshes instructions, CPU state and memory after a step
	ModeFull Mode = iota
	// ModeInstructionsOnly refreshes only the instruction panel after a step
	ModeInstructionsOnly
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeInstructionsOnly:
		return "instructions"
	default:
		return "unknown"
	}
}

// ParseMode parses "full" or "instructions"
func ParseMode(text string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "full":
		return ModeFull, nil
	case "instructions", "instructions-only":
		return ModeInstructionsOnly, nil
	default:
		return ModeFull, fmt.Errorf("unknown refresh mode %q (expected full or instructions)", text)
	}
}

// Options configures a Synchronizer
type Options struct {
	Mode Mode
	// Dispatcher runs display updates (default: Immediate)
	Dispatcher Dispatcher
	// Logger (default: slog.Default())
	Logger *slog.Logger
}

// Synchronizer runs fetch and render cycles: it fetches from the backend,
// renders panel views and applies them to the display through the
// dispatcher.
//
// Reads are never cached or merged, every refresh re-fetches and re-renders
// the whole panel. Responses are applied in arrival order, so the panels do
// not form a consistent snapshot of a single backend state.
type Synchronizer struct {
	backend    Backend
	display    Display
	dispatcher Dispatcher
	mode       Mode
	logger     *slog.Logger

	// steps are serialized, a step waits for the previous one and its refresh
	stepMu sync.Mutex
}

// NewSynchronizer creates a synchronizer between a backend and a display
func NewSynchronizer(backend Backend, display Display, opts Options) *Synchronizer {
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = Immediate
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Synchronizer{
		backend:    backend,
		display:    display,
		dispatcher: dispatcher,
		mode:       opts.Mode,
		logger:     logger,
	}
}

// Mode returns the step refresh mode
func (s *Synchronizer) Mode() Mode {
	return s.mode
}

// apply runs an update of one or more panels on the dispatcher. A panicking
// display is contained to those panels, which are flagged stale.
func (s *Synchronizer) apply(update func(), panels ...string) {
	s.dispatcher.Dispatch(func() {
		defer func() {
			if r := recover(); r != nil {
				for _, panel := range panels {
					err := fmt.Errorf("%w: %v: %v", ErrRender, panel, r)
					s.logger.Error("panel update failed", "panel", panel, "error", err)
					s.display.ShowStale(panel, err)
				}
			}
		}()

		update()
	})
}

func (s *Synchronizer) stale(err error, panels ...string) {
	for _, panel := range panels {
		s.logger.Warn("panel refresh failed", "panel", panel, "error", err)
	}

	s.dispatcher.Dispatch(func() {
		for _, panel := range panels {
			s.display.ShowStale(panel, err)
		}
	})
}

// RefreshInstructions fetches the instruction listing, replaces the
// instruction panel and scrolls the current line to the center of the
// panel. Without a current line nothing is scrolled.
func (s *Synchronizer) RefreshInstructions(ctx context.Context) error {
	listing, err := s.backend.Instructions(ctx)
	if err != nil {
		s.stale(err, PanelInstructions)
		return err
	}

	view := BuildInstructionView(listing)

	if len(view.CurrentLines()) > 1 {
		s.logger.Warn("several instructions match the current PC", "pc", view.Pc, "lines", view.CurrentLines())
	}

	s.apply(func() {
		s.display.ShowInstructions(view)

		if view.HasCurrent() {
			s.display.ScrollToCenter(view.Current)
		}
	}, PanelInstructions)

	return nil
}

// RefreshCpuState fetches and renders the register panel
func (s *Synchronizer) RefreshCpuState(ctx context.Context) error {
	state, err := s.backend.CpuState(ctx)
	if err != nil {
		s.stale(err, PanelCpuState)
		return err
	}

	view := BuildCpuStateView(state)
	s.logger.Debug("cpu state", "pc", utils.FormatHex(state.PC), "flags", view.ActiveFlags(), "status", view.Status)

	s.apply(func() {
		s.display.ShowCpuState(view)
	}, PanelCpuState)

	return nil
}

// RefreshMemory fetches and renders both memory dump panels
func (s *Synchronizer) RefreshMemory(ctx context.Context) error {
	dump, err := s.backend.MemoryDump(ctx)
	if err != nil {
		s.stale(err, PanelZeroPage, PanelStack)
		return err
	}

	view := BuildMemoryView(dump)

	// both regions are rendered by one update, a failure leaves both stale
	s.apply(func() {
		s.display.ShowMemory(view)
	}, PanelZeroPage, PanelStack)

	return nil
}

// Refresh fires the three reads concurrently. Each panel is applied as soon
// as its own response arrives, independently of the others. Refresh waits
// for all of them and returns the first error.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	var group errgroup.Group

	group.Go(func() error { return s.RefreshInstructions(ctx) })
	group.Go(func() error { return s.RefreshCpuState(ctx) })
	group.Go(func() error { return s.RefreshMemory(ctx) })

	return group.Wait()
}

// Step asks the backend to execute one instruction and then refreshes the
// panels selected by the mode. A failed step triggers no refresh.
func (s *Synchronizer) Step(ctx context.Context) error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if err := s.backend.Step(ctx); err != nil {
		s.logger.Error("step failed", "error", err)
		s.dispatcher.Dispatch(func() {
			s.display.ShowMessage(LevelError, "step failed: %v", err)
		})
		return err
	}

	s.logger.Debug("stepped", "mode", s.mode)

	if s.mode == ModeInstructionsOnly {
		return s.RefreshInstructions(ctx)
	}

	return s.Refresh(ctx)
}

// Poll refreshes every interval until ctx is done. Refresh errors are
// already reported to the display and do not stop polling.
func (s *Synchronizer) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid poll interval %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}
