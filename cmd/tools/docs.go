package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/tui"
	"github.com/Manu343726/nesview/pkg/utils"
	"github.com/spf13/cobra"
)

var supportedModules = map[string]func() string{
	"api":  api.ContractDoc,
	"keys": tui.KeyBindingsDoc,
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show nesview documentation",
	Long: `Dumps the documentation of the specified nesview module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(utils.SortedKeys(supportedModules), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: utils.SortedKeys(supportedModules),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			fmt.Fprint(file, supportedModules[args[0]]())
		} else {
			fmt.Print(supportedModules[args[0]]())
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
