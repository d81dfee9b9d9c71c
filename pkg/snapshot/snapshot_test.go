package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stubBackend struct {
	memoryErr error
}

func (b *stubBackend) Instructions(ctx context.Context) (api.InstructionListing, error) {
	return api.InstructionListing{
		Pc: 0xC000,
		Instructions: []api.InstructionRecord{
			{Address: 0xC000, Pc: 0xC000, InstructionText: "JMP $C5F5"},
		},
	}, nil
}

func (b *stubBackend) CpuState(ctx context.Context) (api.CpuState, error) {
	return api.CpuState{PC: 0xC000, SP: 0xFD, Flags: api.FlagSet{InterruptDisable: true}}, nil
}

func (b *stubBackend) MemoryDump(ctx context.Context) (api.MemoryDump, error) {
	if b.memoryErr != nil {
		return api.MemoryDump{}, b.memoryErr
	}

	return api.MemoryDump{
		ZeroPage: []api.MemoryCell{{Address: 0, Value: "00"}},
		Stack:    []api.MemoryCell{{Address: 0x1FD, Value: "C6"}},
	}, nil
}

func (b *stubBackend) Step(ctx context.Context) error {
	return nil
}

func TestTake(t *testing.T) {
	snapshot, err := Take(context.Background(), &stubBackend{}, "http://localhost:8080")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", snapshot.Backend)
	assert.Equal(t, api.Word(0xC000), snapshot.Instructions.Pc)
	assert.Equal(t, api.Word(0xFD), snapshot.CpuState.SP)
	assert.Len(t, snapshot.Memory.Stack, 1)
}

func TestTake_FailsOnAnyRead(t *testing.T) {
	_, err := Take(context.Background(), &stubBackend{memoryErr: errors.New("connection reset")}, "backend")
	assert.ErrorContains(t, err, "connection reset")
}

func TestWriteYAML(t *testing.T) {
	snapshot, err := Take(context.Background(), &stubBackend{}, "backend")
	require.NoError(t, err)
	snapshot.TakenAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var out bytes.Buffer
	require.NoError(t, snapshot.WriteYAML(&out))

	var document map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &document))

	cpu := document["cpu-state"].(map[string]interface{})
	assert.Equal(t, "0xC000", cpu["pc"])
	assert.Equal(t, true, cpu["flags"].(map[string]interface{})["interrupt-disable"])

	instructions := document["instructions"].(map[string]interface{})["instructions"].([]interface{})
	assert.Equal(t, "JMP $C5F5", instructions[0].(map[string]interface{})["text"])

	stack := document["memory"].(map[string]interface{})["stack"].([]interface{})
	assert.Equal(t, "0x01FD", stack[0].(map[string]interface{})["address"])
}

func TestWriteFile(t *testing.T) {
	snapshot, err := Take(context.Background(), &stubBackend{}, "backend")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, snapshot.WriteFile(path))

	var expected bytes.Buffer
	require.NoError(t, snapshot.WriteYAML(&expected))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected.String(), string(written))
}

func TestWriteFile_ReportsCreateErrors(t *testing.T) {
	snapshot, err := Take(context.Background(), &stubBackend{}, "backend")
	require.NoError(t, err)

	err = snapshot.WriteFile(filepath.Join(t.TempDir(), "missing", "state.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
