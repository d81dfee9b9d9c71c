package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/Manu343726/nesview/pkg/utils"
)

type member struct {
	key   string
	value json.RawMessage
	index uint64
	isIdx bool
}

// arrayIndex reports whether key is a canonical array index: plain decimal
// without leading zeros, below 2^32-1.
func arrayIndex(key string) (uint64, bool) {
	value, err := strconv.ParseUint(key, 10, 32)
	if err != nil || value == math.MaxUint32 || strconv.FormatUint(value, 10) != key {
		return 0, false
	}

	return value, true
}

// forEachMember walks the members of a JSON object. Canonical array index
// keys come first in ascending numeric order, every other key follows in the
// order it appears on the wire. A JSON null is treated as an empty object.
func forEachMember(data json.RawMessage, visit func(key string, value json.RawMessage) error) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return utils.MakeError(ErrUnexpectedShape, "reading object: %v", err)
	}
	if token == nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return utils.MakeError(ErrUnexpectedShape, "expected object, got %v", token)
	}

	var members []member

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return utils.MakeError(ErrUnexpectedShape, "reading object key: %v", err)
		}

		key, ok := token.(string)
		if !ok {
			return utils.MakeError(ErrUnexpectedShape, "expected object key, got %v", token)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return utils.MakeError(ErrUnexpectedShape, "reading value of %q: %v", key, err)
		}

		index, isIdx := arrayIndex(key)
		members = append(members, member{key: key, value: value, index: index, isIdx: isIdx})
	}

	if _, err := decoder.Token(); err != nil && err != io.EOF {
		return utils.MakeError(ErrUnexpectedShape, "closing object: %v", err)
	}

	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.isIdx != b.isIdx {
			return a.isIdx
		}
		return a.isIdx && a.index < b.index
	})

	for _, m := range members {
		if err := visit(m.key, m.value); err != nil {
			return err
		}
	}

	return nil
}

// scalarText returns the display text of a JSON scalar: strings are unquoted,
// everything else is kept as its literal JSON text.
func scalarText(value json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(value)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", utils.MakeError(ErrUnexpectedShape, "%v", err)
		}
		return text, nil
	}

	return string(trimmed), nil
}

// UnmarshalJSON decodes a listing in the member order of forEachMember. A key
// that is not an address falls back to the record Pc.
func (l *InstructionListing) UnmarshalJSON(data []byte) error {
	var wire struct {
		Pc           *Word
		Instructions json.RawMessage
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Pc == nil {
		return utils.MakeError(ErrMissingField, "listing Pc")
	}
	if len(wire.Instructions) == 0 {
		return utils.MakeError(ErrMissingField, "listing Instructions")
	}

	listing := InstructionListing{Pc: *wire.Pc}

	err := forEachMember(wire.Instructions, func(key string, value json.RawMessage) error {
		var record struct {
			Pc              *Word
			InstructionText *string
		}

		if err := json.Unmarshal(value, &record); err != nil {
			return utils.MakeError(ErrUnexpectedShape, "instruction %v: %v", key, err)
		}
		if record.Pc == nil {
			return utils.MakeError(ErrMissingField, "instruction %v: Pc", key)
		}
		if record.InstructionText == nil {
			return utils.MakeError(ErrMissingField, "instruction %v: InstructionText", key)
		}

		address, err := ParseWord(key)
		if err != nil {
			address = *record.Pc
		}

		listing.Instructions = append(listing.Instructions, InstructionRecord{
			Address:         address,
			Pc:              *record.Pc,
			InstructionText: *record.InstructionText,
		})

		return nil
	})

	if err != nil {
		return err
	}

	*l = listing
	return nil
}

// UnmarshalJSON decodes the CPU state, requiring every register and the flags object
func (s *CpuState) UnmarshalJSON(data []byte) error {
	var wire struct {
		PC, A, X, Y, SP *Word
		Flags           *FlagSet
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	registers := []struct {
		name  string
		value *Word
	}{
		{"PC", wire.PC},
		{"A", wire.A},
		{"X", wire.X},
		{"Y", wire.Y},
		{"SP", wire.SP},
	}

	for _, register := range registers {
		if register.value == nil {
			return utils.MakeError(ErrMissingField, "register %v", register.name)
		}
	}

	if wire.Flags == nil {
		return utils.MakeError(ErrMissingField, "Flags")
	}

	*s = CpuState{
		PC:    *wire.PC,
		A:     *wire.A,
		X:     *wire.X,
		Y:     *wire.Y,
		SP:    *wire.SP,
		Flags: *wire.Flags,
	}

	return nil
}

func decodeRegion(name string, data json.RawMessage) ([]MemoryCell, error) {
	if len(data) == 0 {
		return nil, utils.MakeError(ErrMissingField, "region %v", name)
	}

	cells := []MemoryCell{}

	err := forEachMember(data, func(key string, value json.RawMessage) error {
		address, err := ParseWord(key)
		if err != nil {
			return utils.MakeError(err, "region %v address", name)
		}

		text, err := scalarText(value)
		if err != nil {
			return utils.MakeError(err, "region %v value at %v", name, key)
		}

		cells = append(cells, MemoryCell{Address: address, Value: text})
		return nil
	})

	return cells, err
}

// UnmarshalJSON decodes both memory regions in the member order of forEachMember
func (d *MemoryDump) UnmarshalJSON(data []byte) error {
	var wire struct {
		ZeroPage json.RawMessage
		Stack    json.RawMessage
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	zeroPage, err := decodeRegion("ZeroPage", wire.ZeroPage)
	if err != nil {
		return err
	}

	stack, err := decodeRegion("Stack", wire.Stack)
	if err != nil {
		return err
	}

	*d = MemoryDump{ZeroPage: zeroPage, Stack: stack}
	return nil
}
