// Package tui implements the interactive terminal debugger view on top of
// tview. The App owns the tview application and acts as both the display and
// the dispatcher of a view.Synchronizer.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Manu343726/nesview/pkg/view"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Controller is the subset of the synchronizer driven by key bindings
type Controller interface {
	Refresh(ctx context.Context) error
	Step(ctx context.Context) error
	Poll(ctx context.Context, interval time.Duration) error
}

// Options configures the terminal UI
type Options struct {
	// Backend is shown in the status bar
	Backend string
	// Mode is shown in the status bar
	Mode view.Mode
	// RefreshInterval enables periodic refreshes when positive
	RefreshInterval time.Duration
	// LogLines bounds the log panel history
	LogLines int
}

const defaultLogLines = 500

var panelTitles = map[string]string{
	view.PanelInstructions: "Instructions",
	view.PanelCpuState:     "CPU State",
	view.PanelZeroPage:     "Zero Page",
	view.PanelStack:        "Stack",
}

// App is the tview based debugger view
type App struct {
	app    *tview.Application
	root   tview.Primitive
	opts   Options
	panels map[string]*tview.TextView
	logs   *tview.TextView
	status *tview.TextView

	mu      sync.Mutex
	message string

	// logsChanged coalesces log writes into at most one pending redraw
	logsChanged chan struct{}
}

var (
	_ view.Display    = (*App)(nil)
	_ view.Dispatcher = (*App)(nil)
)

func newPanel(title string) *tview.TextView {
	panel := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWrap(false).
		SetScrollable(true)

	panel.SetBorder(true).SetTitle(" " + title + " ")
	return panel
}

// New builds the application layout. Nothing is drawn until Run is called.
func New(opts Options) *App {
	if opts.LogLines <= 0 {
		opts.LogLines = defaultLogLines
	}

	a := &App{
		app:    tview.NewApplication(),
		opts:   opts,
		panels: make(map[string]*tview.TextView, len(view.Panels)),

		logsChanged: make(chan struct{}, 1),
	}

	for _, panel := range view.Panels {
		a.panels[panel] = newPanel(panelTitles[panel])
	}

	a.logs = tview.NewTextView().
		SetScrollable(true).
		SetMaxLines(opts.LogLines)
	a.logs.SetBorder(true).SetTitle(" Log ")
	a.logs.SetChangedFunc(a.notifyLogs)

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.updateStatus()

	memory := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.panels[view.PanelZeroPage], 0, 1, false).
		AddItem(a.panels[view.PanelStack], 0, 1, false)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.panels[view.PanelCpuState], 11, 0, false).
		AddItem(memory, 0, 1, false)

	main := tview.NewFlex().
		AddItem(a.panels[view.PanelInstructions], 0, 2, true).
		AddItem(side, 0, 1, false)

	a.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(main, 0, 3, true).
		AddItem(a.logs, 8, 0, false).
		AddItem(a.status, 1, 0, false)

	return a
}

// LogWriter returns the log panel as a writer, suitable for a slog handler
func (a *App) LogWriter() io.Writer {
	return a.logs
}

// notifyLogs never blocks: log lines are also written from the event loop
// and before it starts.
func (a *App) notifyLogs() {
	select {
	case a.logsChanged <- struct{}{}:
	default:
	}
}

func (a *App) redrawLogs(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.logsChanged:
			a.app.QueueUpdateDraw(func() {})
		}
	}
}

// Dispatch queues an update on the tview event loop and redraws after it
func (a *App) Dispatch(update func()) {
	a.app.QueueUpdateDraw(update)
}

// Run starts the event loop, performs an initial refresh and blocks until the
// user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, controller Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.app.SetInputCapture(a.inputHandler(ctx, controller))

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	go a.redrawLogs(ctx)
	go controller.Refresh(ctx)

	if a.opts.RefreshInterval > 0 {
		go controller.Poll(ctx, a.opts.RefreshInterval)
	}

	return a.app.SetRoot(a.root, true).
		SetFocus(a.panels[view.PanelInstructions]).
		Run()
}

func (a *App) inputHandler(ctx context.Context, controller Controller) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		switch action := keyAction(event); action {
		case ActionStep:
			go controller.Step(ctx)
		case ActionRefresh:
			go controller.Refresh(ctx)
		case ActionQuit:
			a.app.Stop()
		default:
			return event
		}

		return nil
	}
}

func (a *App) clearStale(panel string) {
	a.panels[panel].
		SetTitle(" " + panelTitles[panel] + " ").
		SetBorderColor(tview.Styles.BorderColor)
}

// ShowInstructions replaces the listing and highlights the current lines
func (a *App) ShowInstructions(v view.InstructionView) {
	panel := a.panels[view.PanelInstructions]

	panel.SetText(InstructionMarkup(v))
	panel.SetTitle(fmt.Sprintf(" %s (PC %s) ", panelTitles[view.PanelInstructions], view.InstructionLine{Pc: v.Pc}.Label()))
	panel.SetBorderColor(tview.Styles.BorderColor)

	if v.HasCurrent() {
		panel.Highlight(currentRegion)
	} else {
		panel.Highlight()
	}
}

// ScrollToCenter puts the given line in the middle of the instruction panel
func (a *App) ScrollToCenter(line int) {
	panel := a.panels[view.PanelInstructions]
	_, _, _, height := panel.GetInnerRect()

	row := line - height/2
	if row < 0 {
		row = 0
	}

	panel.ScrollTo(row, 0)
}

// ShowCpuState rewrites the register and flag panel
func (a *App) ShowCpuState(v view.CpuStateView) {
	a.panels[view.PanelCpuState].SetText(CpuStateMarkup(v))
	a.clearStale(view.PanelCpuState)
}

// ShowMemory rewrites the zero page and stack panels
func (a *App) ShowMemory(v view.MemoryView) {
	a.panels[view.PanelZeroPage].SetText(DumpMarkup(v.ZeroPage))
	a.clearStale(view.PanelZeroPage)

	a.panels[view.PanelStack].SetText(DumpMarkup(v.Stack))
	a.clearStale(view.PanelStack)
}

// ShowStale marks the panel border and reports the error in the status bar
func (a *App) ShowStale(panel string, err error) {
	if p, ok := a.panels[panel]; ok {
		p.SetTitle(" " + panelTitles[panel] + " (stale) ").
			SetBorderColor(tcell.ColorRed)
	}

	a.ShowMessage(view.LevelWarning, "%s is stale: %v", panel, err)
}

var levelColors = map[view.MessageLevel]string{
	view.LevelInfo:    "white",
	view.LevelSuccess: "green",
	view.LevelWarning: "yellow",
	view.LevelError:   "red",
	view.LevelDebug:   "gray",
}

// ShowMessage shows a message in the status bar
func (a *App) ShowMessage(level view.MessageLevel, format string, args ...interface{}) {
	a.mu.Lock()
	a.message = "[" + levelColors[level] + "]" + tview.Escape(fmt.Sprintf(format, args...)) + "[-]"
	a.mu.Unlock()

	a.updateStatus()
}

func (a *App) updateStatus() {
	a.mu.Lock()
	message := a.message
	a.mu.Unlock()

	text := fmt.Sprintf("[::b]nesview[::-] %s [gray](%s)[-]  %s",
		tview.Escape(a.opts.Backend), a.opts.Mode, KeyBindingsHint())

	if message != "" {
		text += "  | " + message
	}

	a.status.SetText(text)
}
