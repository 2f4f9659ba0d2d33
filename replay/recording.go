// Package replay records the per-tick intent of a character and plays it
// back. Simulation is deterministic for a given config, spawn and frame list,
// so a recording also pins the expected final state.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
)

const Version = 1

var ErrVersion = errors.New("replay: unsupported recording version")

type Frame struct {
	DeltaTime float64          `cbor:"dt"`
	Intent    component.Intent `cbor:"intent"`
}

// Recording is the on-disk replay format.
type Recording struct {
	Version int                    `cbor:"version"`
	Arena   string                 `cbor:"arena,omitempty"`
	Config  component.PlayerConfig `cbor:"config"`
	Spawn   common.Vec3            `cbor:"spawn"`
	Yaw     float64                `cbor:"yaw"`
	Frames  []Frame                `cbor:"frames"`
	Final   *component.PlayerState `cbor:"final,omitempty"`
}

func Marshal(rec *Recording) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("replay: marshal: nil recording")
	}
	out := *rec
	out.Version = Version
	b, err := cbor.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("replay: marshal: %w", err)
	}
	return b, nil
}

func Unmarshal(b []byte) (*Recording, error) {
	var rec Recording
	if err := cbor.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("replay: unmarshal: %w", err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

func Save(path string, rec *Recording) error {
	b, err := Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("replay: save %s: %w", path, err)
	}
	return nil
}

func Load(path string) (*Recording, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", path, err)
	}
	return Unmarshal(b)
}
