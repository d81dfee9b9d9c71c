package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Word
		wantErr  bool
	}{
		{name: "decimal", text: "49152", expected: 49152},
		{name: "hex lowercase prefix", text: "0xc000", expected: 0xC000},
		{name: "hex uppercase prefix", text: "0XFF", expected: 0xFF},
		{name: "surrounding spaces", text: "  10 ", expected: 10},
		{name: "leading zeros are decimal", text: "010", expected: 10},
		{name: "integral float", text: "16.0", expected: 16},
		{name: "exponent", text: "1e3", expected: 1000},
		{name: "empty", text: "", wantErr: true},
		{name: "negative", text: "-1", wantErr: true},
		{name: "fractional", text: "1.5", wantErr: true},
		{name: "garbage", text: "PC", wantErr: true},
		{name: "bad hex", text: "0xZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseWord(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestWord_UnmarshalJSON(t *testing.T) {
	var values []Word

	require.NoError(t, json.Unmarshal([]byte(`[32768, "32768", "0x8000", " 32768 "]`), &values))
	assert.Equal(t, []Word{0x8000, 0x8000, 0x8000, 0x8000}, values)

	var w Word
	assert.ErrorIs(t, json.Unmarshal([]byte(`null`), &w), ErrInvalidNumber)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"abc"`), &w), ErrInvalidNumber)
	assert.Error(t, json.Unmarshal([]byte(`true`), &w))
}

func TestInstructionListing_IndexKeysAscending(t *testing.T) {
	body := `{
		"Instructions": {
			"49152": {"Pc": 49152, "InstructionText": "JMP $C5F5"},
			"49155": {"Pc": 49155, "InstructionText": "LDX #$00"},
			"100":   {"Pc": 100, "InstructionText": "BRK"}
		},
		"Pc": 49155
	}`

	var listing InstructionListing
	require.NoError(t, json.Unmarshal([]byte(body), &listing))

	assert.Equal(t, Word(49155), listing.Pc)
	assert.Equal(t, []InstructionRecord{
		{Address: 100, Pc: 100, InstructionText: "BRK"},
		{Address: 49152, Pc: 49152, InstructionText: "JMP $C5F5"},
		{Address: 49155, Pc: 49155, InstructionText: "LDX #$00"},
	}, listing.Instructions)
}

func TestInstructionListing_MarshalledMapKeys(t *testing.T) {
	type record struct {
		Pc              int
		InstructionText string
	}

	instructions := map[int]record{}
	for _, pc := range []int{0x8000, 0xC000, 0xC5F5, 0x9000, 0xFFFA} {
		instructions[pc] = record{Pc: pc, InstructionText: "NOP"}
	}

	body, err := json.Marshal(struct {
		Pc           int
		Instructions map[int]record
	}{Pc: 0xC000, Instructions: instructions})
	require.NoError(t, err)

	var listing InstructionListing
	require.NoError(t, json.Unmarshal(body, &listing))

	var pcs []Word
	for _, record := range listing.Instructions {
		pcs = append(pcs, record.Pc)
	}
	assert.Equal(t, []Word{0x8000, 0x9000, 0xC000, 0xC5F5, 0xFFFA}, pcs)
}

func TestInstructionListing_NonNumericKeyUsesPc(t *testing.T) {
	body := `{"Pc": 2, "Instructions": {
		"start": {"Pc": 1, "InstructionText": "SEI"},
		"2":     {"Pc": 2, "InstructionText": "CLD"}
	}}`

	var listing InstructionListing
	require.NoError(t, json.Unmarshal([]byte(body), &listing))

	assert.Equal(t, []InstructionRecord{
		{Address: 2, Pc: 2, InstructionText: "CLD"},
		{Address: 1, Pc: 1, InstructionText: "SEI"},
	}, listing.Instructions)
}

func TestInstructionListing_MixedRepresentations(t *testing.T) {
	body := `{"Pc": "49155", "Instructions": {"49155": {"Pc": 49155, "InstructionText": "LDX #$00"}}}`

	var listing InstructionListing
	require.NoError(t, json.Unmarshal([]byte(body), &listing))

	require.Len(t, listing.Instructions, 1)
	assert.Equal(t, listing.Pc, listing.Instructions[0].Pc)
}

func TestInstructionListing_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected error
	}{
		{
			name:     "missing Pc",
			body:     `{"Instructions": {}}`,
			expected: ErrMissingField,
		},
		{
			name:     "missing instructions",
			body:     `{"Pc": 1}`,
			expected: ErrMissingField,
		},
		{
			name:     "record without Pc",
			body:     `{"Pc": 1, "Instructions": {"1": {"InstructionText": "NOP"}}}`,
			expected: ErrMissingField,
		},
		{
			name:     "record without text",
			body:     `{"Pc": 1, "Instructions": {"1": {"Pc": 1}}}`,
			expected: ErrMissingField,
		},
		{
			name:     "instructions is an array",
			body:     `{"Pc": 1, "Instructions": [{"Pc": 1, "InstructionText": "NOP"}]}`,
			expected: ErrUnexpectedShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var listing InstructionListing
			assert.ErrorIs(t, json.Unmarshal([]byte(tt.body), &listing), tt.expected)
		})
	}
}

func TestInstructionListing_NullInstructionsIsEmpty(t *testing.T) {
	var listing InstructionListing
	require.NoError(t, json.Unmarshal([]byte(`{"Pc": 1, "Instructions": null}`), &listing))
	assert.Empty(t, listing.Instructions)
}

func TestCpuState_UnmarshalJSON(t *testing.T) {
	body := `{
		"PC": 50677, "A": 10, "X": "255", "Y": 0, "SP": 253,
		"Flags": {"Carry": true, "Zero": false, "InterruptDisable": true, "DecimalMode": false,
		          "B": false, "Overflow": false, "Negative": true, "Unused": true}
	}`

	var state CpuState
	require.NoError(t, json.Unmarshal([]byte(body), &state))

	assert.Equal(t, CpuState{
		PC: 50677, A: 10, X: 255, Y: 0, SP: 253,
		Flags: FlagSet{Carry: true, InterruptDisable: true, Negative: true},
	}, state)
}

func TestCpuState_MissingFields(t *testing.T) {
	var state CpuState

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"PC": 1, "A": 1, "X": 1, "Y": 1, "Flags": {}}`), &state), ErrMissingField)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"PC": 1, "A": 1, "X": 1, "Y": 1, "SP": 1}`), &state), ErrMissingField)
}

func TestMemoryDump_UnmarshalJSON(t *testing.T) {
	body := `{
		"ZeroPage": {"5": "00", "16": 7, "0": "FF"},
		"Stack": {"509": "C6", "511": null}
	}`

	var dump MemoryDump
	require.NoError(t, json.Unmarshal([]byte(body), &dump))

	assert.Equal(t, []MemoryCell{
		{Address: 0, Value: "FF"},
		{Address: 5, Value: "00"},
		{Address: 16, Value: "7"},
	}, dump.ZeroPage)
	assert.Equal(t, []MemoryCell{
		{Address: 509, Value: "C6"},
		{Address: 511, Value: "null"},
	}, dump.Stack)
}

func TestMemoryDump_MarshalledMapKeys(t *testing.T) {
	zeroPage := map[int]string{}
	for address := 0; address < 0x100; address += 0x20 {
		zeroPage[address] = "00"
	}

	body, err := json.Marshal(struct {
		ZeroPage map[int]string
		Stack    map[int]string
	}{
		ZeroPage: zeroPage,
		Stack:    map[int]string{0x1FF: "C6", 0x1FD: "00", 0x1FE: "F5"},
	})
	require.NoError(t, err)

	var dump MemoryDump
	require.NoError(t, json.Unmarshal(body, &dump))

	addresses := func(cells []MemoryCell) (result []Word) {
		for _, cell := range cells {
			result = append(result, cell.Address)
		}
		return result
	}

	assert.Equal(t, []Word{0x00, 0x20, 0x40, 0x60, 0x80, 0xA0, 0xC0, 0xE0}, addresses(dump.ZeroPage))
	assert.Equal(t, []Word{0x1FD, 0x1FE, 0x1FF}, addresses(dump.Stack))
}

func TestMemoryDump_OtherKeysFollowIndexKeys(t *testing.T) {
	body := `{"ZeroPage": {"0x10": "A", "9": "B", "007": "C", "1": "D"}, "Stack": {}}`

	var dump MemoryDump
	require.NoError(t, json.Unmarshal([]byte(body), &dump))

	assert.Equal(t, []MemoryCell{
		{Address: 1, Value: "D"},
		{Address: 9, Value: "B"},
		{Address: 0x10, Value: "A"},
		{Address: 7, Value: "C"},
	}, dump.ZeroPage)
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		key      string
		expected uint64
		ok       bool
	}{
		{"0", 0, true},
		{"224", 224, true},
		{"4294967294", 4294967294, true},
		{"4294967295", 0, false},
		{"007", 0, false},
		{"0x10", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		index, ok := arrayIndex(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.expected, index, tt.key)
	}
}

func TestMemoryDump_MissingRegion(t *testing.T) {
	var dump MemoryDump
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"ZeroPage": {}}`), &dump), ErrMissingField)
}
