package cmd

import (
	"log/slog"

	"github.com/Manu343726/nesview/pkg/tui"
	"github.com/Manu343726/nesview/pkg/view"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive debugger view",
	Long: `Opens a terminal UI with the instruction listing, CPU state, zero page and
stack panels. The listing is scrolled so that the current instruction stays
in the middle of the panel.

` + tui.KeyBindingsDoc(),
	Args: cobra.NoArgs,
	Run:  runView,
}

func init() {
	RootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	app := tui.New(tui.Options{
		Backend:         cfg.Backend,
		Mode:            cfg.ViewMode(),
		RefreshInterval: cfg.RefreshInterval,
	})

	// the terminal belongs to the UI, logs go to the log panel instead of stderr
	s, err := newSession(cfg, nil, slog.NewTextHandler(app.LogWriter(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
	exitOnError(err, "connecting to %v", cfg.Backend)
	defer s.Close()

	synchronizer := view.NewSynchronizer(s.client, app, view.Options{
		Mode:       cfg.ViewMode(),
		Dispatcher: app,
		Logger:     s.logger,
	})

	ctx, cancel := signalContext()
	defer cancel()

	if err := app.Run(ctx, synchronizer); err != nil {
		s.Close()
		exitOnError(err, "running debugger view")
	}
}
