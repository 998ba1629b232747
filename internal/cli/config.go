// Package cli holds the command plumbing shared by the arbor binary:
// project config loading, engine construction and run helpers.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/pkg/domain"
)

// ConfigFileName is the optional per-project configuration file, looked up
// in the target directory.
const ConfigFileName = ".arbor.yaml"

// LoadFileConfig overlays settings from dir/.arbor.yaml onto base. A missing
// file is not an error; a malformed one is. Flag precedence is handled by
// the caller: defaults < file < explicit flags.
func LoadFileConfig(dir string, base domain.Config) (domain.Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return base, fmt.Errorf("parsing %s: %w", path, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &base,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(doc); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}

	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return base, nil
}
