package view

import "regexp"

// TokenKind classifies the parts of an instruction text for highlighting
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpcode
	TokenRegister
	TokenImmediate
	TokenAddress
)

// InstructionToken is a highlighted span of an instruction text
type InstructionToken struct {
	Kind TokenKind
	Text string
}

// Regex patterns for 6502 assembly syntax
var (
	opcodePattern  = regexp.MustCompile(`^\s*\*?[A-Za-z]{3}\b`)
	operandPattern = regexp.MustCompile(`#\$?[0-9A-Fa-f]+|\$[0-9A-Fa-f]+|\b[AXY]\b`)
)

// TokenizeInstruction splits an instruction text into highlightable spans.
// Concatenating the spans always gives back the original text.
func TokenizeInstruction(text string) []InstructionToken {
	opcodeLoc := opcodePattern.FindStringIndex(text)
	if opcodeLoc == nil {
		if text == "" {
			return nil
		}
		return []InstructionToken{{Kind: TokenText, Text: text}}
	}

	tokens := []InstructionToken{{Kind: TokenOpcode, Text: text[:opcodeLoc[1]]}}
	rest := text[opcodeLoc[1]:]
	position := 0

	for _, match := range operandPattern.FindAllStringIndex(rest, -1) {
		if match[0] > position {
			tokens = append(tokens, InstructionToken{Kind: TokenText, Text: rest[position:match[0]]})
		}

		operand := rest[match[0]:match[1]]
		kind := TokenRegister

		switch operand[0] {
		case '#':
			kind = TokenImmediate
		case '$':
			kind = TokenAddress
		}

		tokens = append(tokens, InstructionToken{Kind: kind, Text: operand})
		position = match[1]
	}

	if position < len(rest) {
		tokens = append(tokens, InstructionToken{Kind: TokenText, Text: rest[position:]})
	}

	return tokens
}
