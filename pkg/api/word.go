package api

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Manu343726/nesview/pkg/utils"
)

// Word is an unsigned register or address value.
//
// The backend transport may serialize the same quantity either as a JSON
// number or as text, so Word accepts both representations when decoding.
// Comparing two Words is therefore always a plain integer comparison.
type Word uint32

// ParseWord parses a decimal or 0x-prefixed hexadecimal value. Surrounding
// whitespace is ignored and integral floating point text (e.g. "16.0") is
// accepted.
func ParseWord(text string) (Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, utils.MakeError(ErrInvalidNumber, "empty value")
	}

	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		value, err := strconv.ParseUint(text[2:], 16, 32)
		if err != nil {
			return 0, utils.MakeError(ErrInvalidNumber, "%q", text)
		}
		return Word(value), nil
	}

	if value, err := strconv.ParseUint(text, 10, 32); err == nil {
		return Word(value), nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value < 0 || value > math.MaxUint32 || value != math.Trunc(value) {
		return 0, utils.MakeError(ErrInvalidNumber, "%q", text)
	}

	return Word(value), nil
}

// UnmarshalJSON decodes a Word from a JSON number or a JSON string
func (w *Word) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))

	switch {
	case text == "null":
		return utils.MakeError(ErrInvalidNumber, "null")
	case strings.HasPrefix(text, `"`):
		if err := json.Unmarshal(data, &text); err != nil {
			return utils.MakeError(ErrInvalidNumber, "%v", err)
		}
	}

	value, err := ParseWord(text)
	if err != nil {
		return err
	}

	*w = value
	return nil
}

// MarshalYAML encodes a Word as 0x prefixed hexadecimal text, which
// ParseWord reads back
func (w Word) MarshalYAML() (interface{}, error) {
	return "0x" + utils.FormatHexPadded(w, 4), nil
}
