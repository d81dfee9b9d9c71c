package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []InstructionToken
	}{
		{
			name: "implied",
			text: "NOP",
			expected: []InstructionToken{
				{Kind: TokenOpcode, Text: "NOP"},
			},
		},
		{
			name: "immediate",
			text: "LDX #$00",
			expected: []InstructionToken{
				{Kind: TokenOpcode, Text: "LDX"},
				{Kind: TokenText, Text: " "},
				{Kind: TokenImmediate, Text: "#$00"},
			},
		},
		{
			name: "indexed indirect",
			text: "LDA ($20),Y",
			expected: []InstructionToken{
				{Kind: TokenOpcode, Text: "LDA"},
				{Kind: TokenText, Text: " ("},
				{Kind: TokenAddress, Text: "$20"},
				{Kind: TokenText, Text: "),"},
				{Kind: TokenRegister, Text: "Y"},
			},
		},
		{
			name: "accumulator",
			text: "LSR A",
			expected: []InstructionToken{
				{Kind: TokenOpcode, Text: "LSR"},
				{Kind: TokenText, Text: " "},
				{Kind: TokenRegister, Text: "A"},
			},
		},
		{
			name: "unofficial opcode",
			text: "*NOP $04",
			expected: []InstructionToken{
				{Kind: TokenOpcode, Text: "*NOP"},
				{Kind: TokenText, Text: " "},
				{Kind: TokenAddress, Text: "$04"},
			},
		},
		{
			name: "not an instruction",
			text: "[PC outside listing]",
			expected: []InstructionToken{
				{Kind: TokenText, Text: "[PC outside listing]"},
			},
		},
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizeInstruction(tt.text))
		})
	}
}

func TestTokenizeInstruction_RoundTrips(t *testing.T) {
	for _, text := range []string{"JMP $C5F5", "STA $0200,X", "BNE $C72A", "  INX", "JSR ($FFFC)", "???"} {
		var builder strings.Builder
		for _, token := range TokenizeInstruction(text) {
			builder.WriteString(token.Text)
		}
		assert.Equal(t, text, builder.String())
	}
}
