package oscillator

import "errors"

// ErrInvalidParameter indicates a physical parameter outside its valid
// range: mass must be positive, damping and spring constant
// non-negative. Wrapped errors name the offending field.
var ErrInvalidParameter = errors.New("oscillator: invalid parameter")
