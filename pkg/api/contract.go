package api

import (
	"fmt"
	"strings"
)

// Endpoint describes one backend operation
type Endpoint struct {
	Name        string
	Method      string
	Path        string
	Fields      []string
	Description string
}

// Endpoints is the backend contract consumed by the client
var Endpoints = []Endpoint{
	{
		Name:        "instructions",
		Method:      "GET",
		Path:        PathInstructions,
		Fields:      []string{"Pc", "Instructions.<address>.Pc", "Instructions.<address>.InstructionText"},
		Description: "Disassembly listing around the program counter, keyed by address in display order",
	},
	{
		Name:        "step",
		Method:      "POST",
		Path:        PathStep,
		Description: "Executes one instruction. Any 2xx status is a success, the body is ignored",
	},
	{
		Name:        "cpu-state",
		Method:      "GET",
		Path:        PathCpuState,
		Fields:      []string{"PC", "A", "X", "Y", "SP", "Flags.{Carry,Zero,InterruptDisable,DecimalMode,B,Overflow,Negative}"},
		Description: "Register values and status flags",
	},
	{
		Name:        "memory-dump",
		Method:      "GET",
		Path:        PathMemoryDump,
		Fields:      []string{"ZeroPage.<address>", "Stack.<address>"},
		Description: "Zero page and stack contents keyed by address in display order",
	},
}

// ContractDoc documents the backend HTTP contract
func ContractDoc() string {
	var builder strings.Builder

	builder.WriteString("Backend HTTP contract\n")
	builder.WriteString("Numbers may be JSON numbers or strings, decimal or 0x prefixed hex.\n")

	for _, endpoint := range Endpoints {
		fmt.Fprintf(&builder, "\n%s %s (%s)\n  %s\n", endpoint.Method, endpoint.Path, endpoint.Name, endpoint.Description)

		for _, field := range endpoint.Fields {
			fmt.Fprintf(&builder, "  - %s\n", field)
		}
	}

	return builder.String()
}
