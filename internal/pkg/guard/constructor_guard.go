// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values can be told apart from instances
// built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct came from its constructor.
// Embed it as a private field and call Validate from the owner's Validate method:
//
//	type Coordinate struct {
//	    lat, lon float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewCoordinate(lat, lon float64) Coordinate {
//	    return Coordinate{lat: lat, lon: lon, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c Coordinate) Validate() error {
//	    return c.guard.Validate(ErrCoordinateIsNotConstructed)
//	}
//
// The zero value reports "not constructed".
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
