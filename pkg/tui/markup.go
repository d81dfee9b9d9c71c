package tui

import (
	"strings"

	"github.com/Manu343726/nesview/pkg/view"
	"github.com/rivo/tview"
)

// currentRegion tags every line matching the listing PC
const currentRegion = "current"

var tokenColors = map[view.TokenKind]string{
	view.TokenOpcode:    "yellow",
	view.TokenRegister:  "green",
	view.TokenImmediate: "aqua",
	view.TokenAddress:   "fuchsia",
}

func colorizeInstruction(text string) string {
	var builder strings.Builder

	for _, token := range view.TokenizeInstruction(text) {
		escaped := tview.Escape(token.Text)

		if c, ok := tokenColors[token.Kind]; ok {
			builder.WriteString("[" + c + "]" + escaped + "[-]")
		} else {
			builder.WriteString(escaped)
		}
	}

	return builder.String()
}

// InstructionMarkup renders the instruction panel content. Current lines are
// wrapped in the "current" region so the panel can highlight them.
func InstructionMarkup(v view.InstructionView) string {
	var builder strings.Builder

	for _, line := range v.Lines {
		if line.Current {
			builder.WriteString(`["` + currentRegion + `"][yellow::b]> ` + line.Label() + `[-:-:-] `)
			builder.WriteString(colorizeInstruction(line.Text))
			builder.WriteString(`[""]`)
		} else {
			builder.WriteString("  [teal]" + line.Label() + "[-] ")
			builder.WriteString(colorizeInstruction(line.Text))
		}

		builder.WriteByte('\n')
	}

	return builder.String()
}

// CpuStateMarkup renders registers one per line followed by the flag toggles
func CpuStateMarkup(v view.CpuStateView) string {
	var builder strings.Builder

	for _, register := range v.Registers {
		builder.WriteString("[green]" + padRight(strings.ToUpper(register.Name), 3) + "[-] [white::b]" + register.Text + "[-:-:-]\n")
	}

	builder.WriteByte('\n')

	for i, flag := range v.Flags {
		if i > 0 {
			builder.WriteByte(' ')
		}

		if flag.Active {
			builder.WriteString("[black:green]" + flag.Name + "[-:-]")
		} else {
			builder.WriteString("[gray]" + flag.Name + "[-]")
		}
	}

	builder.WriteString("\n[green]P  [-] [white::b]" + v.Status + "[-:-:-]\n")
	return builder.String()
}

// DumpMarkup renders a region dump with highlighted addresses
func DumpMarkup(dump string) string {
	var builder strings.Builder

	for _, line := range strings.Split(strings.TrimSuffix(dump, "\n"), "\n") {
		if line == "" {
			continue
		}

		address, value, _ := strings.Cut(line, " ")
		builder.WriteString("[teal]" + tview.Escape(address) + "[-] " + tview.Escape(value) + "\n")
	}

	return builder.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
