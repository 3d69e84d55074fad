package trajectory

import (
	"errors"
	"fmt"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
)

// ErrOutOfRange is returned when a point lies at or beyond the distance at
// which a projection stops being valid.
var ErrOutOfRange = errors.New("point beyond projection max range")

// CheckRange returns ErrOutOfRange if lla is maxRange meters or more from the
// reference of p. Callers usually pass the MaxRange of the service that
// created p.
func CheckRange(p coord.Projection, lla geodesy.LatLonAlt, maxRange float64) error {
	d := geodesy.DistanceH(p.Reference(), lla)
	if d >= maxRange {
		return fmt.Errorf("%w: %.0f m from reference, limit %.0f m (%v)", ErrOutOfRange, d, maxRange, p.Type())
	}
	return nil
}
