// Package view provides the render and synchronization layer of the debugger
// front-end. It turns backend responses into panel views and applies them to
// a presentation layer, keeping the viewport anchored on the current
// instruction. It does not depend on any particular frontend, so the same
// synchronizer drives the terminal UI and the console.
package view

import (
	"context"

	"github.com/Manu343726/nesview/pkg/api"
)

// Panel identifiers. Presentation layers use them as fixed element names.
const (
	PanelInstructions = "instructions"
	PanelCpuState     = "cpu-state"
	PanelZeroPage     = "zero-page-dump"
	PanelStack        = "stack-dump"
)

// Panels lists every panel identifier
var Panels = []string{PanelInstructions, PanelCpuState, PanelZeroPage, PanelStack}

// Backend is the fetch layer the synchronizer reads from
type Backend interface {
	Instructions(ctx context.Context) (api.InstructionListing, error)
	CpuState(ctx context.Context) (api.CpuState, error)
	MemoryDump(ctx context.Context) (api.MemoryDump, error)
	Step(ctx context.Context) error
}

// MessageLevel indicates the severity of a message
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
	LevelDebug
)

// String returns the string representation of a MessageLevel
func (l MessageLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Display is the interface that presentation layers must implement.
// All methods are called from the dispatcher's thread only.
type Display interface {
	// ShowInstructions replaces the whole instruction panel content
	ShowInstructions(view InstructionView)

	// ScrollToCenter scrolls the instruction panel so that the given line
	// sits in the vertical center of the panel, without animation
	ScrollToCenter(line int)

	// ShowCpuState rewrites every register and flag field
	ShowCpuState(view CpuStateView)

	// ShowMemory replaces the zero page and stack panel contents
	ShowMemory(view MemoryView)

	// ShowStale flags a panel whose last refresh failed. The panel keeps
	// displaying its previous content.
	ShowStale(panel string, err error)

	// ShowMessage displays a status message to the user
	ShowMessage(level MessageLevel, format string, args ...interface{})
}

// Dispatcher runs display updates on the presentation layer's event thread
type Dispatcher interface {
	Dispatch(update func())
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(update func())

func (f DispatcherFunc) Dispatch(update func()) {
	f(update)
}

// Immediate runs updates synchronously on the calling goroutine
var Immediate Dispatcher = DispatcherFunc(func(update func()) { update() })
