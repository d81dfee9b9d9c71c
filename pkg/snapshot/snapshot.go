// Package snapshot captures the decoded backend state for offline use.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/view"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Snapshot is the state of the three backend reads at roughly the same time.
// The reads are concurrent, so they may not describe the same emulator step.
type Snapshot struct {
	Backend      string                 `yaml:"backend"`
	TakenAt      time.Time              `yaml:"taken-at"`
	Instructions api.InstructionListing `yaml:"instructions"`
	CpuState     api.CpuState           `yaml:"cpu-state"`
	Memory       api.MemoryDump         `yaml:"memory"`
}

// Take fetches the three reads concurrently. It fails if any of them fails.
func Take(ctx context.Context, backend view.Backend, name string) (*Snapshot, error) {
	snapshot := &Snapshot{Backend: name, TakenAt: time.Now().UTC()}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		snapshot.Instructions, err = backend.Instructions(ctx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.CpuState, err = backend.CpuState(ctx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.Memory, err = backend.MemoryDump(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("taking snapshot of %v: %w", name, err)
	}

	return snapshot, nil
}

// WriteYAML encodes the snapshot as a YAML document
func (s *Snapshot) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return encoder.Close()
}

// WriteFile writes the YAML document to path. The file is closed before
// returning and a failed close is reported like a failed write.
func (s *Snapshot) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %v: %w", path, err)
	}

	if err := s.WriteYAML(file); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %v: %w", path, err)
	}

	return nil
}
