package view

import (
	"strings"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/utils"
)

// MemoryView is the rendered content of both dump panels
type MemoryView struct {
	ZeroPage string
	Stack    string
}

// FormatCell formats a cell as "[AAAA] value", with the address zero-padded
// to four uppercase hex digits
func FormatCell(cell api.MemoryCell) string {
	return "[" + utils.FormatHexPadded(cell.Address, 4) + "] " + cell.Value
}

// DumpToString renders a region one cell per line, in the order received
func DumpToString(cells []api.MemoryCell) string {
	var builder strings.Builder

	for _, cell := range cells {
		builder.WriteString(FormatCell(cell))
		builder.WriteByte('\n')
	}

	return builder.String()
}

// BuildMemoryView renders both regions
func BuildMemoryView(dump api.MemoryDump) MemoryView {
	return MemoryView{
		ZeroPage: DumpToString(dump.ZeroPage),
		Stack:    DumpToString(dump.Stack),
	}
}
