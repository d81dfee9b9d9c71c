package cmd

import (
	"os"
	"path/filepath"

	"github.com/Manu343726/nesview/pkg/config"
	"github.com/Manu343726/nesview/pkg/console"
	"github.com/Manu343726/nesview/pkg/view"
	"github.com/spf13/cobra"
)

// lines used by the CPU state panel, headers and markers in console output
const reservedLines = 8

var stepCount int

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print every panel once",
	Long: `Fetches the instruction listing, the CPU state and the memory dumps and
prints them. The instruction listing is cut to a window centered on the
current instruction (see --window).`,
	Args: cobra.NoArgs,
	Run:  runPrint,
}

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Execute instructions and print the resulting state",
	Long: `Asks the backend to execute one instruction (or --count instructions) and
prints the panels refreshed after each step. With --mode instructions only
the instruction listing is printed.`,
	Args: cobra.NoArgs,
	Run:  runStep,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive debugger prompt",
	Long: `Starts a prompt with command history and completion. Type help to list the
available commands.`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

func init() {
	RootCmd.AddCommand(printCmd, stepCmd, shellCmd)
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 1, "Number of instructions to execute")
}

// newConsole builds a screen on stdout and a synchronizer writing to it
func newConsole(cfg config.Config, s *session) (*console.Screen, *view.Synchronizer) {
	window := cfg.Window
	if window == 0 {
		window = console.TerminalWindow(os.Stdout, reservedLines)
	}

	screen := console.NewScreen(os.Stdout, console.Options{
		Window:  window,
		NoColor: cfg.NoColor,
	})

	return screen, view.NewSynchronizer(s.client, screen, view.Options{
		Mode:       cfg.ViewMode(),
		Dispatcher: screen,
		Logger:     s.logger,
	})
}

func runPrint(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	s, err := newSession(cfg, os.Stderr)
	exitOnError(err, "connecting to %v", cfg.Backend)
	defer s.Close()

	_, synchronizer := newConsole(cfg, s)

	ctx, cancel := signalContext()
	defer cancel()

	exitOnError(synchronizer.Refresh(ctx), "refreshing from %v", cfg.Backend)
}

func runStep(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if stepCount <= 0 {
		exitOnError(config.ErrInvalidConfig, "--count must be positive, got %v", stepCount)
	}

	s, err := newSession(cfg, os.Stderr)
	exitOnError(err, "connecting to %v", cfg.Backend)
	defer s.Close()

	_, synchronizer := newConsole(cfg, s)

	ctx, cancel := signalContext()
	defer cancel()

	for i := 0; i < stepCount; i++ {
		exitOnError(synchronizer.Step(ctx), "step %v of %v", i+1, stepCount)
	}
}

func runShell(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	s, err := newSession(cfg, os.Stderr)
	exitOnError(err, "connecting to %v", cfg.Backend)
	defer s.Close()

	screen, synchronizer := newConsole(cfg, s)
	shell := console.NewShell(synchronizer, screen)

	ctx, cancel := signalContext()
	defer cancel()

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".nesview_history")
	}

	screen.Message(view.LevelInfo, "Connected to %v. Type help to list the commands.", s.client.BaseURL())

	if err := shell.Run(ctx, console.ShellOptions{HistoryFile: historyFile}); err != nil && ctx.Err() == nil {
		exitOnError(err, "running shell")
	}
}
