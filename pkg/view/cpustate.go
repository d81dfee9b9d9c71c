package view

import (
	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/utils"
)

// Register field names
const (
	RegisterPC = "pc"
	RegisterA  = "a"
	RegisterX  = "x"
	RegisterY  = "y"
	RegisterSP = "sp"
)

// Flag indicator names
const (
	FlagCarry            = "carry"
	FlagZero             = "zero"
	FlagInterruptDisable = "interrupt-disable"
	FlagDecimalMode      = "decimal-mode"
	FlagB                = "b"
	FlagOverflow         = "overflow"
	FlagNegative         = "negative"
)

// RegisterNames lists the register fields in display order
var RegisterNames = []string{RegisterPC, RegisterA, RegisterX, RegisterY, RegisterSP}

// FlagNames is the fixed, exhaustive set of flag indicators in display order
var FlagNames = []string{
	FlagCarry,
	FlagZero,
	FlagInterruptDisable,
	FlagDecimalMode,
	FlagB,
	FlagOverflow,
	FlagNegative,
}

// RegisterField is a rendered register value
type RegisterField struct {
	Name string
	Text string
}

// FlagIndicator is a rendered flag toggle
type FlagIndicator struct {
	Name   string
	Active bool
}

// CpuStateView is the rendered CPU state panel
type CpuStateView struct {
	Registers []RegisterField
	Flags     []FlagIndicator
	// Status is the packed processor status register as two hex digits
	Status string
}

// BuildCpuStateView renders every register as uppercase hex and evaluates
// each flag independently
func BuildCpuStateView(state api.CpuState) CpuStateView {
	registers := []api.Word{state.PC, state.A, state.X, state.Y, state.SP}
	flags := []bool{
		state.Flags.Carry,
		state.Flags.Zero,
		state.Flags.InterruptDisable,
		state.Flags.DecimalMode,
		state.Flags.B,
		state.Flags.Overflow,
		state.Flags.Negative,
	}

	view := CpuStateView{
		Registers: make([]RegisterField, len(RegisterNames)),
		Flags:     make([]FlagIndicator, len(FlagNames)),
		Status:    utils.FormatHexPadded(state.Flags.Status(), 2),
	}

	for i, name := range RegisterNames {
		view.Registers[i] = RegisterField{Name: name, Text: utils.FormatHex(registers[i])}
	}

	for i, name := range FlagNames {
		view.Flags[i] = FlagIndicator{Name: name, Active: flags[i]}
	}

	return view
}

// ActiveFlags returns the names of the active flags in display order
func (v CpuStateView) ActiveFlags() []string {
	active := []string{}

	for _, flag := range v.Flags {
		if flag.Active {
			active = append(active, flag.Name)
		}
	}

	return active
}
