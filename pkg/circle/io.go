package circle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// =============================================================================
// Set - Circle Set Serialization
// =============================================================================

// Set is the canonical serialization format for a set of circles, with
// optional per-circle movement weights for the repulsion engine.
//
// The format is human-readable and round-trips losslessly:
// read → pack → write preserves circle order and identity.
type Set struct {
	Circles []Circle  `json:"circles" bson:"circles"`
	Weights []float64 `json:"weights,omitempty" bson:"weights,omitempty"`
}

// Validate checks structural constraints on the set: weights, when present,
// must align one-to-one with circles and lie in [0, 1].
func (s Set) Validate() error {
	if len(s.Weights) > 0 && len(s.Weights) != len(s.Circles) {
		return errors.New(errors.ErrCodeInvalidInput,
			"weights length %d does not match circle count %d", len(s.Weights), len(s.Circles))
	}
	for i, w := range s.Weights {
		if w < 0 || w > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "weight %d out of range [0,1]: %g", i, w)
		}
	}
	return nil
}

// MarshalSet converts a circle set to pretty-printed JSON bytes.
func MarshalSet(s Set) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteSet writes a circle set as JSON to w.
func WriteSet(s Set, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSetFile writes a circle set to a JSON file.
// The file is created with 0644 permissions.
func WriteSetFile(s Set, path string) error {
	data, err := MarshalSet(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSet decodes a JSON circle set from r and validates it.
func ReadSet(r io.Reader) (Set, error) {
	var s Set
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Set{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// ReadSetFile reads a circle set from a JSON file.
func ReadSetFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSet(f)
}
