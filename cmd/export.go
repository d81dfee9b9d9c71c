package cmd

import (
	"os"

	"github.com/Manu343726/nesview/pkg/snapshot"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the current backend state as YAML",
	Long: `Fetches the instruction listing, the CPU state and the memory dumps and
writes them as a YAML document. Addresses and registers are written as 0x
prefixed hexadecimal. By default the document is written to stdout.`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file. If not specified, the snapshot is written to stdout.")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	s, err := newSession(cfg, os.Stderr)
	exitOnError(err, "connecting to %v", cfg.Backend)
	defer s.Close()

	ctx, cancel := signalContext()
	defer cancel()

	state, err := snapshot.Take(ctx, s.client, s.client.BaseURL())
	exitOnError(err, "exporting")

	if exportOutput != "" {
		exitOnError(state.WriteFile(exportOutput), "writing snapshot")
	} else {
		exitOnError(state.WriteYAML(os.Stdout), "writing snapshot")
	}

	s.logger.Info("snapshot exported", "instructions", len(state.Instructions.Instructions), "pc", state.CpuState.PC)
}
