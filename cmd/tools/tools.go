package tools

import (
	"github.com/spf13/cobra"
)

// ToolsCmd groups the commands that do not talk to the backend
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "nesview miscellaneous tools",
}
