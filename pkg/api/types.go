// Package api describes the HTTP contract exposed by the emulator backend and
// decodes its responses into the types the views consume.
//
// Every value in this package is ephemeral: it is decoded from a single
// response body, rendered once and dropped. Nothing here is cached.
package api

// Backend endpoint paths
const (
	PathInstructions = "/instructions"
	PathStep         = "/step"
	PathCpuState     = "/cpu-state"
	PathMemoryDump   = "/memory-dump"
)

// InstructionRecord is one disassembled instruction of a listing
type InstructionRecord struct {
	// Address is the listing key the record was published under, or Pc when
	// the key is not a number
	Address Word `yaml:"address"`
	// Pc is the address reported by the record itself
	Pc              Word   `yaml:"pc"`
	InstructionText string `yaml:"text"`
}

// InstructionListing is the backend's current instruction window. Instructions
// keep the order in which the backend sent them, which the backend produces
// in ascending address order.
type InstructionListing struct {
	Pc           Word                `yaml:"pc"`
	Instructions []InstructionRecord `yaml:"instructions"`
}

// FlagSet contains the processor status flags
type FlagSet struct {
	Carry            bool `json:"Carry" yaml:"carry"`
	Zero             bool `json:"Zero" yaml:"zero"`
	InterruptDisable bool `json:"InterruptDisable" yaml:"interrupt-disable"`
	DecimalMode      bool `json:"DecimalMode" yaml:"decimal-mode"`
	B                bool `json:"B" yaml:"b"`
	Overflow         bool `json:"Overflow" yaml:"overflow"`
	Negative         bool `json:"Negative" yaml:"negative"`
}

// CpuState is a snapshot of the processor registers
type CpuState struct {
	PC    Word    `json:"PC" yaml:"pc"`
	A     Word    `json:"A" yaml:"a"`
	X     Word    `json:"X" yaml:"x"`
	Y     Word    `json:"Y" yaml:"y"`
	SP    Word    `json:"SP" yaml:"sp"`
	Flags FlagSet `json:"Flags" yaml:"flags"`
}

// MemoryCell is one address/value pair of a memory region dump. Value is
// presentation-ready text as sent by the backend.
type MemoryCell struct {
	Address Word   `yaml:"address"`
	Value   string `yaml:"value"`
}

// MemoryDump contains the zero page and stack regions
type MemoryDump struct {
	ZeroPage []MemoryCell `yaml:"zero-page"`
	Stack    []MemoryCell `yaml:"stack"`
}
