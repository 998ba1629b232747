package domain

import "fmt"

// Config holds the immutable knobs for one traversal and render pass.
// Zero values are not usable directly; start from Default().
type Config struct {
	// Level bounds the descent depth. The node one level past the limit is
	// still emitted as a boundary signal before that branch halts.
	Level int `json:"level" yaml:"level" mapstructure:"level"`

	// Subpackages descends into child packages (fmt -> fmt/internal is
	// still gated by Private).
	Subpackages bool `json:"subpackages" yaml:"subpackages" mapstructure:"subpackages"`

	// Modules descends into the individual source files of a package.
	Modules bool `json:"modules" yaml:"modules" mapstructure:"modules"`

	// Private shows underscore-prefixed and unexported names.
	Private bool `json:"private" yaml:"private" mapstructure:"private"`

	// Dunders shows __name__-style generated artifacts.
	Dunders bool `json:"dunders" yaml:"dunders" mapstructure:"dunders"`

	// Tests shows test scaffolding (TestXxx, *_test files, ...).
	Tests bool `json:"tests" yaml:"tests" mapstructure:"tests"`

	// Dense emits one dotted path per line instead of a box-drawing tree.
	Dense bool `json:"dense" yaml:"dense" mapstructure:"dense"`

	// Rendering verbosity. See the render package for the exact meaning.
	Signature int `json:"signature" yaml:"signature" mapstructure:"signature"`
	Docstring int `json:"docstring" yaml:"docstring" mapstructure:"docstring"`
	Info      int `json:"info" yaml:"info" mapstructure:"info"`
	Width     int `json:"width" yaml:"width" mapstructure:"width"`
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Level:     999,
		Signature: 1,
		Docstring: 2,
		Info:      2,
		Width:     88,
	}
}

// Validate rejects malformed configuration before any traversal begins.
func (c Config) Validate() error {
	if c.Level < 0 {
		return fmt.Errorf("%w: level %d is negative", ErrInvalidConfig, c.Level)
	}
	if c.Signature < 0 || c.Signature > 4 {
		return fmt.Errorf("%w: signature verbosity %d not in 0..4", ErrInvalidConfig, c.Signature)
	}
	if c.Docstring < 0 || c.Docstring > 2 {
		return fmt.Errorf("%w: docstring verbosity %d not in 0..2", ErrInvalidConfig, c.Docstring)
	}
	if c.Info < 0 || c.Info > 4 {
		return fmt.Errorf("%w: info verbosity %d not in 0..4", ErrInvalidConfig, c.Info)
	}
	if c.Width < 50 || c.Width > 500 {
		return fmt.Errorf("%w: width %d not in 50..500", ErrInvalidConfig, c.Width)
	}
	return nil
}
