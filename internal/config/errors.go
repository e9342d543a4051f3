package config

import "errors"

// ErrInvalid marks configuration mistakes: bad keys, unsupported output
// destinations, unknown type tags in rules.
var ErrInvalid = errors.New("invalid configuration")
