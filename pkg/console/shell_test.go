package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingController struct {
	calls   []string
	stepErr error
}

func (c *recordingController) Refresh(ctx context.Context) error {
	c.calls = append(c.calls, "refresh")
	return nil
}

func (c *recordingController) RefreshInstructions(ctx context.Context) error {
	c.calls = append(c.calls, "instructions")
	return nil
}

func (c *recordingController) RefreshCpuState(ctx context.Context) error {
	c.calls = append(c.calls, "cpu-state")
	return nil
}

func (c *recordingController) RefreshMemory(ctx context.Context) error {
	c.calls = append(c.calls, "memory")
	return nil
}

func (c *recordingController) Step(ctx context.Context) error {
	c.calls = append(c.calls, "step")
	return c.stepErr
}

func TestShell_Execute(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
		quit     bool
	}{
		{line: "", expected: nil},
		{line: "step", expected: []string{"step"}},
		{line: "s 3", expected: []string{"step", "step", "step"}},
		{line: "  REFRESH ", expected: []string{"refresh"}},
		{line: "r", expected: []string{"refresh"}},
		{line: "regs", expected: []string{"cpu-state"}},
		{line: "mem", expected: []string{"memory"}},
		{line: "ins", expected: []string{"instructions"}},
		{line: "quit", quit: true},
		{line: "exit", quit: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			controller := &recordingController{}
			shell := NewShell(controller, NewScreen(&bytes.Buffer{}, Options{NoColor: true}))

			quit, err := shell.Execute(context.Background(), tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.quit, quit)
			assert.Equal(t, tt.expected, controller.calls)
		})
	}
}

func TestShell_ExecuteErrors(t *testing.T) {
	controller := &recordingController{}
	shell := NewShell(controller, NewScreen(&bytes.Buffer{}, Options{NoColor: true}))

	_, err := shell.Execute(context.Background(), "run")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = shell.Execute(context.Background(), "step zero")
	assert.Error(t, err)

	_, err = shell.Execute(context.Background(), "step -1")
	assert.Error(t, err)

	assert.Empty(t, controller.calls)
}

func TestShell_StepStopsOnFailure(t *testing.T) {
	controller := &recordingController{stepErr: errors.New("backend down")}
	shell := NewShell(controller, NewScreen(&bytes.Buffer{}, Options{NoColor: true}))

	_, err := shell.Execute(context.Background(), "step 5")
	assert.EqualError(t, err, "backend down")
	assert.Equal(t, []string{"step"}, controller.calls)
}

func TestShell_Help(t *testing.T) {
	var out bytes.Buffer
	shell := NewShell(&recordingController{}, NewScreen(&out, Options{NoColor: true}))

	_, err := shell.Execute(context.Background(), "help")
	require.NoError(t, err)

	assert.Equal(t, []string{"help", "instructions", "mem", "quit", "refresh", "regs", "step"}, shell.Commands())
	assert.Contains(t, out.String(), "step [count]")
	assert.Contains(t, out.String(), "refresh every panel")
}
