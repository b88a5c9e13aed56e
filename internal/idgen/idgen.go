package idgen

import "github.com/google/uuid"

// NewFunc produces process instance identifiers; tests stub it to get stable
// IDs.
var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }
