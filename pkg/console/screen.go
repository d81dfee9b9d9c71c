// Package console implements the debugger views for line-oriented terminals.
//
// A Screen is both the view.Display and the view.Dispatcher of a
// synchronizer: updates are serialized by the screen and printed as soon as
// they have been applied.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Manu343726/nesview/pkg/view"
	"github.com/fatih/color"
)

// Options configures a Screen
type Options struct {
	// Window is the number of instruction lines printed around the current
	// line. Zero prints the whole listing.
	Window int
	// NoColor disables ANSI colors
	NoColor bool
}

type palette struct {
	header    *color.Color
	marker    *color.Color
	address   *color.Color
	current   *color.Color
	register  *color.Color
	value     *color.Color
	flagSet   *color.Color
	flagClear *color.Color
	opcode    *color.Color
	operand   *color.Color
	immediate *color.Color
	target    *color.Color
	success   *color.Color
	warning   *color.Color
	error     *color.Color
	debug     *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header:    color.New(color.FgWhite, color.Bold, color.Underline),
		marker:    color.New(color.FgGreen, color.Bold),
		address:   color.New(color.FgCyan),
		current:   color.New(color.FgYellow, color.Bold),
		register:  color.New(color.FgGreen),
		value:     color.New(color.FgWhite, color.Bold),
		flagSet:   color.New(color.FgGreen, color.Bold),
		flagClear: color.New(color.FgHiBlack),
		opcode:    color.New(color.FgYellow, color.Bold),
		operand:   color.New(color.FgGreen),
		immediate: color.New(color.FgCyan),
		target:    color.New(color.FgMagenta),
		success:   color.New(color.FgGreen),
		warning:   color.New(color.FgYellow),
		error:     color.New(color.FgRed, color.Bold),
		debug:     color.New(color.FgHiBlack),
	}

	colors := []*color.Color{
		p.header, p.marker, p.address, p.current, p.register, p.value, p.flagSet, p.flagClear,
		p.opcode, p.operand, p.immediate, p.target, p.success, p.warning, p.error, p.debug,
	}

	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return p
}

// Screen prints panel updates to a writer
type Screen struct {
	mu     sync.Mutex
	out    io.Writer
	window int
	colors palette

	pending *view.InstructionView
}

var (
	_ view.Display    = (*Screen)(nil)
	_ view.Dispatcher = (*Screen)(nil)
)

// NewScreen creates a screen printing to out
func NewScreen(out io.Writer, opts Options) *Screen {
	return &Screen{
		out:    out,
		window: opts.Window,
		colors: newPalette(opts.NoColor),
	}
}

// Dispatch applies an update and prints its result. Updates coming from
// different goroutines are serialized.
func (s *Screen) Dispatch(update func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.flush()
	update()
}

// ShowInstructions replaces the pending instruction listing. It is printed
// once the update that showed it completes, so that a following
// ScrollToCenter can still move the window.
func (s *Screen) ShowInstructions(v view.InstructionView) {
	v.Current = -1
	s.pending = &v
}

// ScrollToCenter centers the printed window on the given line
func (s *Screen) ScrollToCenter(line int) {
	if s.pending != nil {
		s.pending.Current = line
	}
}

func (s *Screen) flush() {
	if s.pending == nil {
		return
	}

	v := *s.pending
	s.pending = nil
	s.printInstructions(v)
}

func (s *Screen) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Screen) colorizeInstruction(text string) string {
	var builder strings.Builder

	for _, token := range view.TokenizeInstruction(text) {
		switch token.Kind {
		case view.TokenOpcode:
			builder.WriteString(s.colors.opcode.Sprint(token.Text))
		case view.TokenRegister:
			builder.WriteString(s.colors.operand.Sprint(token.Text))
		case view.TokenImmediate:
			builder.WriteString(s.colors.immediate.Sprint(token.Text))
		case view.TokenAddress:
			builder.WriteString(s.colors.target.Sprint(token.Text))
		default:
			builder.WriteString(token.Text)
		}
	}

	return builder.String()
}

func (s *Screen) printInstructions(v view.InstructionView) {
	s.printf("%s\n", s.colors.header.Sprintf("=== Instructions (PC %s) ===", view.InstructionLine{Pc: v.Pc}.Label()))

	if len(v.Lines) == 0 {
		s.printf("  (empty listing)\n")
		return
	}

	begin, end := v.Window(s.window)

	if begin > 0 {
		s.printf("   %s\n", s.colors.debug.Sprintf("... %d more", begin))
	}

	for _, line := range v.Lines[begin:end] {
		if line.Current {
			s.printf("%s %s %s\n",
				s.colors.marker.Sprint("=>"),
				s.colors.current.Sprint(line.Label()),
				s.colorizeInstruction(line.Text))
		} else {
			s.printf("   %s %s\n",
				s.colors.address.Sprint(line.Label()),
				s.colorizeInstruction(line.Text))
		}
	}

	if end < len(v.Lines) {
		s.printf("   %s\n", s.colors.debug.Sprintf("... %d more", len(v.Lines)-end))
	}
}

// ShowCpuState prints registers and flags
func (s *Screen) ShowCpuState(v view.CpuStateView) {
	s.printf("%s\n", s.colors.header.Sprint("=== CPU State ==="))

	fields := make([]string, 0, len(v.Registers))
	for _, register := range v.Registers {
		fields = append(fields, fmt.Sprintf("%s: %s",
			s.colors.register.Sprint(strings.ToUpper(register.Name)),
			s.colors.value.Sprint(register.Text)))
	}
	s.printf("%s\n", strings.Join(fields, "  "))

	flags := make([]string, 0, len(v.Flags))
	for _, flag := range v.Flags {
		if flag.Active {
			flags = append(flags, s.colors.flagSet.Sprint(flag.Name))
		} else {
			flags = append(flags, s.colors.flagClear.Sprint(flag.Name))
		}
	}
	s.printf("%s %s  %s\n",
		s.colors.register.Sprint("Flags:"),
		strings.Join(flags, " "),
		s.colors.debug.Sprintf("(P=%s)", v.Status))
}

func (s *Screen) printRegion(title string, dump string) {
	s.printf("%s\n", s.colors.header.Sprintf("=== %s ===", title))

	for _, line := range strings.Split(strings.TrimSuffix(dump, "\n"), "\n") {
		if line == "" {
			continue
		}

		address, value, _ := strings.Cut(line, " ")
		s.printf("%s %s\n", s.colors.address.Sprint(address), value)
	}
}

// ShowMemory prints the zero page and stack dumps
func (s *Screen) ShowMemory(v view.MemoryView) {
	s.printRegion("Zero Page", v.ZeroPage)
	s.printRegion("Stack", v.Stack)
}

// ShowStale warns that a panel could not be refreshed
func (s *Screen) ShowStale(panel string, err error) {
	s.printf("%s\n", s.colors.warning.Sprintf("! %s is stale: %v", panel, err))
}

// ShowMessage displays a message with a color based on its level
func (s *Screen) ShowMessage(level view.MessageLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	switch level {
	case view.LevelError:
		s.printf("%s\n", s.colors.error.Sprint(message))
	case view.LevelWarning:
		s.printf("%s\n", s.colors.warning.Sprint(message))
	case view.LevelSuccess:
		s.printf("%s\n", s.colors.success.Sprint(message))
	case view.LevelDebug:
		s.printf("%s\n", s.colors.debug.Sprint(message))
	default:
		s.printf("%s\n", message)
	}
}

// Message prints a message outside of any synchronizer update
func (s *Screen) Message(level view.MessageLevel, format string, args ...interface{}) {
	s.Dispatch(func() {
		s.ShowMessage(level, format, args...)
	})
}
