package view

import (
	"strings"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/utils"
)

// Line classes
const (
	ClassCurrent = "current"
	ClassNext    = "next"
)

// InstructionLine is one rendered line of the instruction panel
type InstructionLine struct {
	// Address is the listing key of the instruction
	Address api.Word
	// Pc is the instruction's own address, which is the one displayed
	Pc      api.Word
	Text    string
	Current bool
}

// Label returns the displayed address: uppercase hex, no padding
func (l InstructionLine) Label() string {
	return utils.FormatHex(l.Pc)
}

// Class returns "current" for lines matching the listing PC and "next" otherwise
func (l InstructionLine) Class() string {
	if l.Current {
		return ClassCurrent
	}
	return ClassNext
}

// String formats the line as "ADDR text"
func (l InstructionLine) String() string {
	return l.Label() + " " + l.Text
}

// InstructionView is the rendered instruction panel
type InstructionView struct {
	// Pc is the listing's current program counter
	Pc    api.Word
	Lines []InstructionLine
	// Current is the index of the line the panel scrolls to, or -1 when no
	// line matches the listing PC
	Current int
}

// BuildInstructionView classifies every instruction of the listing in wire
// order. An instruction is current iff its own Pc equals the listing Pc.
// When several instructions match, all of them are flagged and the first one
// is the scroll target.
func BuildInstructionView(listing api.InstructionListing) InstructionView {
	view := InstructionView{
		Pc:      listing.Pc,
		Lines:   make([]InstructionLine, 0, len(listing.Instructions)),
		Current: -1,
	}

	for i, record := range listing.Instructions {
		current := record.Pc == listing.Pc

		view.Lines = append(view.Lines, InstructionLine{
			Address: record.Address,
			Pc:      record.Pc,
			Text:    record.InstructionText,
			Current: current,
		})

		if current && view.Current < 0 {
			view.Current = i
		}
	}

	return view
}

// HasCurrent returns true if some line matches the listing PC
func (v InstructionView) HasCurrent() bool {
	return v.Current >= 0
}

// CurrentLines returns the indices of every line flagged as current
func (v InstructionView) CurrentLines() []int {
	indices := []int{}

	for i, line := range v.Lines {
		if line.Current {
			indices = append(indices, i)
		}
	}

	return indices
}

// Window returns the [begin, end) range of at most height lines centered on
// the scroll target. Without a current line the window starts at the top.
func (v InstructionView) Window(height int) (begin, end int) {
	if height <= 0 || height >= len(v.Lines) {
		return 0, len(v.Lines)
	}

	if v.Current >= 0 {
		begin = v.Current - height/2
	}

	if begin < 0 {
		begin = 0
	}
	if begin+height > len(v.Lines) {
		begin = len(v.Lines) - height
	}

	return begin, begin + height
}

// String renders every line as "ADDR text", one per line
func (v InstructionView) String() string {
	var builder strings.Builder

	for _, line := range v.Lines {
		builder.WriteString(line.String())
		builder.WriteByte('\n')
	}

	return builder.String()
}
