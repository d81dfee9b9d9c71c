package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Manu343726/nesview/pkg/utils"
	"github.com/Manu343726/nesview/pkg/view"
	"github.com/chzyer/readline"
)

var ErrUnknownCommand = errors.New("unknown command")

// Controller is the part of the synchronizer driven by shell commands
type Controller interface {
	Refresh(ctx context.Context) error
	RefreshInstructions(ctx context.Context) error
	RefreshCpuState(ctx context.Context) error
	RefreshMemory(ctx context.Context) error
	Step(ctx context.Context) error
}

type shellCommand struct {
	usage       string
	description string
	run         func(ctx context.Context, args []string) error
}

// Shell is an interactive prompt driving a synchronizer
type Shell struct {
	controller Controller
	screen     *Screen
	commands   map[string]shellCommand
	aliases    map[string]string
}

// NewShell creates a shell. Command output goes through screen.
func NewShell(controller Controller, screen *Screen) *Shell {
	s := &Shell{
		controller: controller,
		screen:     screen,
		aliases: map[string]string{
			"s":    "step",
			"r":    "refresh",
			"ins":  "instructions",
			"q":    "quit",
			"exit": "quit",
		},
	}

	s.commands = map[string]shellCommand{
		"step": {
			usage:       "step [count]",
			description: "execute count instructions (default 1) refreshing after each one",
			run:         s.step,
		},
		"refresh": {
			usage:       "refresh",
			description: "refresh every panel",
			run:         func(ctx context.Context, args []string) error { return s.controller.Refresh(ctx) },
		},
		"instructions": {
			usage:       "instructions",
			description: "refresh the instruction listing",
			run:         func(ctx context.Context, args []string) error { return s.controller.RefreshInstructions(ctx) },
		},
		"regs": {
			usage:       "regs",
			description: "refresh the CPU state",
			run:         func(ctx context.Context, args []string) error { return s.controller.RefreshCpuState(ctx) },
		},
		"mem": {
			usage:       "mem",
			description: "refresh the zero page and stack dumps",
			run:         func(ctx context.Context, args []string) error { return s.controller.RefreshMemory(ctx) },
		},
		"help": {
			usage:       "help",
			description: "show this help",
			run: func(ctx context.Context, args []string) error {
				s.screen.Message(view.LevelInfo, "%s", s.Help())
				return nil
			},
		},
		"quit": {
			usage:       "quit",
			description: "leave the shell",
		},
	}

	return s
}

// Commands returns the command names in alphabetical order
func (s *Shell) Commands() []string {
	return utils.SortedKeys(s.commands)
}

// Help lists every command with its usage
func (s *Shell) Help() string {
	lines := utils.Map(s.Commands(), func(name string) string {
		command := s.commands[name]
		return fmt.Sprintf("  %-16s %s", command.usage, command.description)
	})

	return "Commands:\n" + strings.Join(lines, "\n")
}

func (s *Shell) step(ctx context.Context, args []string) error {
	count := 1

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		count = n
	}

	for i := 0; i < count; i++ {
		if err := s.controller.Step(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Execute runs a single command line. It returns true when the shell should
// exit.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	if alias, ok := s.aliases[name]; ok {
		name = alias
	}

	command, ok := s.commands[name]
	if !ok {
		return false, utils.MakeError(ErrUnknownCommand, "%q (try help)", fields[0])
	}

	if command.run == nil {
		return true, nil
	}

	return false, command.run(ctx, fields[1:])
}

func (s *Shell) completer() *readline.PrefixCompleter {
	items := utils.Map(s.Commands(), func(name string) readline.PrefixCompleterInterface {
		return readline.PcItem(name)
	})

	return readline.NewPrefixCompleter(items...)
}

// ShellOptions configures the interactive prompt
type ShellOptions struct {
	Prompt      string
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run reads commands until quit, EOF or ctx cancellation. Command errors are
// reported and do not stop the shell.
func (s *Shell) Run(ctx context.Context, opts ShellOptions) error {
	if opts.Prompt == "" {
		opts.Prompt = "nesview> "
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           opts.Stdin,
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer rl.Close()

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		quit, err := s.Execute(ctx, line)
		if err != nil {
			s.screen.Message(view.LevelError, "%v", err)
		}
		if quit {
			return nil
		}
	}

	return ctx.Err()
}
