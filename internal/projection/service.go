// Package projection selects the active projection algorithm and creates
// projections anchored at caller-supplied reference points.
//
// A Service is the single source of truth for which projection type is in
// use. Components that are composed together should share one *Service;
// call sites that cannot have one threaded through use the process-wide
// instance returned by Default.
package projection

import (
	"fmt"
	"sync"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
)

// Service owns the current projection type and the strategy that implements
// it. It is safe for concurrent use: a type switch is totally ordered with
// respect to every creation and envelope query.
type Service struct {
	mu       sync.RWMutex
	ptype    coord.ProjectionType
	strategy coord.Strategy

	overrides map[coord.ProjectionType]coord.Strategy
}

// Option configures a Service.
type Option func(*Service)

// WithStrategy replaces the strategy used for t. s.Type() must equal t;
// SetProjectionType panics on a mismatch.
func WithStrategy(t coord.ProjectionType, s coord.Strategy) Option {
	return func(svc *Service) {
		if svc.overrides == nil {
			svc.overrides = make(map[coord.ProjectionType]coord.Strategy)
		}
		svc.overrides[t] = s
	}
}

// NewService returns a Service with t selected.
func NewService(t coord.ProjectionType, opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	s.SetProjectionType(t)
	return s
}

func (s *Service) lookup(t coord.ProjectionType) coord.Strategy {
	if st, ok := s.overrides[t]; ok {
		return st
	}
	return coord.ForType(t)
}

// current returns the selected strategy.
func (s *Service) current() coord.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// CreateProjection returns a projection of the current type anchored at
// (lat, lon, alt) in radians and meters. The reference is not range checked.
func (s *Service) CreateProjection(lat, lon, alt float64) coord.Projection {
	return s.current().New(geodesy.LLA(lat, lon, alt), false)
}

// CreateProjectionLLA returns a projection of the current type anchored at lla.
func (s *Service) CreateProjectionLLA(lla geodesy.LatLonAlt) coord.Projection {
	return s.current().New(lla, false)
}

// CreateProjectionPosition returns a projection of the current type for pos.
//
// A geodetic pos yields an altitude-preserving projection anchored at pos.
// A Euclidean pos has no geodetic anchor, so the projection is anchored at
// geodesy.ZeroLLA and the coordinates of pos are ignored.
func (s *Service) CreateProjectionPosition(pos geodesy.Position) coord.Projection {
	if pos.IsLatLon() {
		return s.current().New(pos.LLA(), true)
	}
	return s.current().New(geodesy.ZeroLLA, true)
}

// ConflictRange returns the longest trajectory segment (meters) at latitude
// lat (radians) that the current projection maps within accuracy (meters).
// Long trajectories should be cut into segments no longer than this before
// they are projected.
func (s *Service) ConflictRange(lat, accuracy float64) float64 {
	return s.current().ConflictRange(lat, accuracy)
}

// MaxRange returns the distance (meters) from the reference point at which
// the current projection stops producing meaningful values. Using a
// projection at or beyond this distance is an error; enforcing that is up to
// the caller.
func (s *Service) MaxRange() float64 {
	return s.current().MaxRange()
}

// SetProjectionType switches the projection type for every subsequent call
// on s. It panics if t is not one of coord.Types() or if the strategy
// registered for t reports a different type.
func (s *Service) SetProjectionType(t coord.ProjectionType) {
	st := s.lookup(t)
	if st == nil {
		panic(fmt.Sprintf("projection: no strategy for %v", t))
	}
	if st.Type() != t {
		panic(fmt.Sprintf("projection: strategy for %v reports type %v", t, st.Type()))
	}
	s.mu.Lock()
	s.ptype = t
	s.strategy = st
	s.mu.Unlock()
}

// ProjectionType returns the current projection type.
func (s *Service) ProjectionType() coord.ProjectionType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ptype
}

// ProjectionTypeFromString parses a projection type name. Unknown names
// return an error wrapping coord.ErrUnknownProjectionType.
func ProjectionTypeFromString(name string) (coord.ProjectionType, error) {
	t, err := coord.ParseProjectionType(name)
	if err != nil {
		return 0, fmt.Errorf("projection: %w", err)
	}
	return t, nil
}
