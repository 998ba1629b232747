package domain

import "errors"

// ErrUnresolvable is returned when a target name cannot be mapped to a live
// entity. This is the only error category that aborts a whole run.
var ErrUnresolvable = errors.New("cannot resolve object")

// ErrInvalidConfig is returned by Config.Validate for out-of-range knobs.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnsupported is returned by adapters asked for an optional capability
// they do not implement (e.g. surveying installed packages).
var ErrUnsupported = errors.New("operation not supported by this reflector")
