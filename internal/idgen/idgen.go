package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers. Tests may replace it for deterministic IDs.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }
