package kernel

import (
	"errors"
	"fmt"
	"math"

	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	// LatitudeMin is the smallest valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the largest valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the smallest valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the largest valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a point a worker can visit: latitude and longitude in degrees plus
// a human-readable label (usually the street address shown on the task card).
// Location is an immutable value object. The zero value is invalid and fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7128, -74.0060, "123 Main St, New York, NY")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(40.7128,-74.006 "123 Main St, New York, NY")
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	label     string
	guard     guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates and label.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within [LongitudeMin..LongitudeMax].
// The label is free text and may be empty.
//
// Parameters:
//   - latitude: degrees north (negative for south)
//   - longitude: degrees east (negative for west)
//   - label: display text for the place
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if a coordinate is out of bounds or not a number
//
// Example:
//
//	depot, err := NewLocation(0, 1, "Depot")
//	if err != nil {
//	    log.Fatal("Invalid coordinates:", err)
//	}
func NewLocation(latitude float64, longitude float64, label string) (Location, error) {
	loc := Location{
		label: label,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
// The zero value of Location is invalid and will fail this validation.
//
// Returns:
//   - error: ErrLocationIsNotConstructed if the location was not properly initialized, nil otherwise
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// Label returns the human-readable description of the place.
func (l Location) Label() string {
	return l.label
}

// String returns a human-readable string representation of the Location.
// This method implements the fmt.Stringer interface.
//
// Example:
//
//	loc, _ := NewLocation(0, 1, "Depot")
//	fmt.Println(loc) // Output: Location(0,1 "Depot")
func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g %q)", l.latitude, l.longitude, l.label)
}

// IsEqual compares two locations for equality.
// Two locations are equal when coordinates and label match.
// Both locations must be properly constructed for the comparison to succeed.
//
// Returns:
//   - bool: true if locations are equal, false otherwise
//   - error: Validation error if either location is improperly constructed
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// Distance calculates the planar distance between two locations, rounded to one decimal place.
//
// The metric is sqrt(dLat² + dLon²) over raw degrees. It is deliberately not geodesic:
// dispatch ranking compares these rounded values directly, so two stops whose distances
// round to the same tenth tie and keep their encounter order.
//
// Parameters:
//   - other: The Location to calculate distance to
//
// Returns:
//   - float64: Non-negative distance, 0 for identical coordinates
//   - error: Validation error if either location is improperly constructed
//
// Example:
//
//	worker, _ := NewLocation(0, 0, "Start")
//	stop, _ := NewLocation(3, 4, "Stop")
//
//	distance, err := worker.Distance(stop)
//	// distance = 5.0, err = nil
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	d := planar.Distance(l.point(), other.point())
	return math.Round(d*10) / 10, nil
}

// point converts the location to orb's [lon, lat] ordering.
func (l Location) point() orb.Point {
	return orb.Point{l.longitude, l.latitude}
}

// setLatitude sets the latitude with validation.
// Pointer receiver on a private setter lets the constructor validate in place.
func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}
