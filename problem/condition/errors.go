package condition

import "errors"

// ErrNotRegistered is returned when a condition is asked for data
// before it has been registered with a problem's variables.
var ErrNotRegistered = errors.New("condition: not registered with a variable set")

// ErrAlreadyRegistered is returned on a second Register call.
// Conditions bind to exactly one problem.
var ErrAlreadyRegistered = errors.New("condition: already registered")
