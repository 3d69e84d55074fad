package projection

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
)

// identityStrategy is a stand-in strategy with a simple, known envelope.
type identityStrategy struct {
	ptype coord.ProjectionType
}

func (s identityStrategy) Type() coord.ProjectionType { return s.ptype }

func (s identityStrategy) New(ref geodesy.LatLonAlt, preserveAlt bool) coord.Projection {
	return identityProjection{ref: ref, ptype: s.ptype, preserveAlt: preserveAlt}
}

func (identityStrategy) ConflictRange(lat, accuracy float64) float64 {
	return 100_000 * accuracy / (1 + math.Abs(lat))
}

func (identityStrategy) MaxRange() float64 { return 1_000_000 }

type identityProjection struct {
	ref         geodesy.LatLonAlt
	ptype       coord.ProjectionType
	preserveAlt bool
}

func (p identityProjection) Project(lla geodesy.LatLonAlt) geodesy.Vect3 {
	return geodesy.Vect3{X: lla.Lon - p.ref.Lon, Y: lla.Lat - p.ref.Lat, Z: lla.Alt}
}

func (p identityProjection) Inverse(v geodesy.Vect3) geodesy.LatLonAlt {
	return geodesy.LatLonAlt{Lat: v.Y + p.ref.Lat, Lon: v.X + p.ref.Lon, Alt: v.Z}
}

func (p identityProjection) Reference() geodesy.LatLonAlt { return p.ref }
func (p identityProjection) Type() coord.ProjectionType   { return p.ptype }
func (p identityProjection) AltitudePreserving() bool     { return p.preserveAlt }

func TestService_SetThenGet(t *testing.T) {
	svc := NewService(coord.DefaultType)
	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)
		assert.Equal(t, pt, svc.ProjectionType())
	}
}

func TestService_SetInvalidTypePanics(t *testing.T) {
	svc := NewService(coord.Ortho)
	assert.Panics(t, func() { svc.SetProjectionType(coord.ProjectionType(99)) })
	assert.Equal(t, coord.Ortho, svc.ProjectionType(), "failed switch must not change the type")
}

func TestService_MismatchedStrategyPanics(t *testing.T) {
	mismatched := WithStrategy(coord.Simple, identityStrategy{ptype: coord.Ortho})
	assert.Panics(t, func() { NewService(coord.Simple, mismatched) })

	svc := NewService(coord.ENU, mismatched)
	assert.Panics(t, func() { svc.SetProjectionType(coord.Simple) })
	assert.Equal(t, coord.ENU, svc.ProjectionType())
}

func TestProjectionTypeFromString(t *testing.T) {
	for _, pt := range coord.Types() {
		got, err := ProjectionTypeFromString(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
}

func TestProjectionTypeFromString_Unknown(t *testing.T) {
	svc := Default()
	before := svc.ProjectionType()

	for _, name := range []string{"", "lambert", "UTM", "ENU2", "ortho-graphic"} {
		_, err := ProjectionTypeFromString(name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, coord.ErrUnknownProjectionType)
		assert.Contains(t, err.Error(), name)
	}
	assert.Equal(t, before, svc.ProjectionType())
}

func TestService_CreateProjectionMatchesType(t *testing.T) {
	ref := geodesy.LLADegrees(37.6189, -122.375, 4) // SFO
	svc := NewService(coord.DefaultType)

	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)

		forms := map[string]coord.Projection{
			"lat/lon/alt": svc.CreateProjection(ref.Lat, ref.Lon, ref.Alt),
			"lla":         svc.CreateProjectionLLA(ref),
			"position":    svc.CreateProjectionPosition(geodesy.NewLatLonPosition(ref)),
		}
		for form, p := range forms {
			assert.Equal(t, pt, p.Type(), "%v via %s", pt, form)
			assert.Equal(t, ref, p.Reference(), "%v via %s", pt, form)
		}
		assert.False(t, forms["lla"].AltitudePreserving())
		assert.True(t, forms["position"].AltitudePreserving())
	}
}

func TestService_CreateProjectionEquivalentForms(t *testing.T) {
	ref := geodesy.LLADegrees(51.47, -0.4543, 25)
	p := geodesy.LLADegrees(51.6, -0.1, 2500)
	svc := NewService(coord.Simple)

	a := svc.CreateProjection(ref.Lat, ref.Lon, ref.Alt).Project(p)
	b := svc.CreateProjectionLLA(ref).Project(p)
	assert.Equal(t, a, b)
}

func TestService_EuclideanPositionAnchorsAtZero(t *testing.T) {
	svc := NewService(coord.DefaultType)
	pos := geodesy.NewEuclideanPosition(geodesy.NewVect3(12_345, -6_789, 3_000))

	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)
		p := svc.CreateProjectionPosition(pos)
		assert.Equal(t, geodesy.ZeroLLA, p.Reference(), "%v", pt)
		assert.Equal(t, pt, p.Type())
	}
}

func TestService_GeodeticPositionPreservesAltitude(t *testing.T) {
	svc := NewService(coord.DefaultType)
	ref := geodesy.LLADegrees(-12.5, 130.9, 10_668)
	pos := geodesy.NewLatLonPosition(ref)
	target := geodesy.LLADegrees(-12.2, 131.3, 7_315.2)

	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)
		p := svc.CreateProjectionPosition(pos)

		assert.Equal(t, ref.Alt, p.Inverse(p.Project(ref)).Alt, "%v", pt)
		assert.Equal(t, target.Alt, p.Inverse(p.Project(target)).Alt, "%v", pt)
		assert.Equal(t, target.Alt, p.Project(target).Z, "%v", pt)
	}
}

func TestService_EnvelopeIsDeterministic(t *testing.T) {
	svc := NewService(coord.DefaultType)
	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)
		assert.Equal(t, svc.MaxRange(), svc.MaxRange())
		assert.Equal(t, svc.ConflictRange(0.75, 5), svc.ConflictRange(0.75, 5))
		assert.Equal(t, coord.ForType(pt).MaxRange(), svc.MaxRange())
		assert.Equal(t, coord.ForType(pt).ConflictRange(0.75, 5), svc.ConflictRange(0.75, 5))
	}
}

func TestService_ConflictRangeMonotonicInAccuracy(t *testing.T) {
	svc := NewService(coord.DefaultType)
	for _, pt := range coord.Types() {
		svc.SetProjectionType(pt)
		for _, lat := range []float64{0, 0.5, 1.2} {
			prev := math.Inf(1)
			for _, acc := range []float64{1000, 50, 1, 0.25, 0} {
				got := svc.ConflictRange(lat, acc)
				assert.LessOrEqual(t, got, prev, "%v lat=%v acc=%v", pt, lat, acc)
				prev = got
			}
		}
	}
}

func TestService_ForwardsToStubStrategy(t *testing.T) {
	svc := NewService(coord.ENU, WithStrategy(coord.Ortho, identityStrategy{ptype: coord.Ortho}))

	// ENU is still the real strategy.
	assert.Equal(t, coord.ForType(coord.ENU).MaxRange(), svc.MaxRange())

	svc.SetProjectionType(coord.Ortho)
	assert.Equal(t, 1_000_000.0, svc.MaxRange())
	assert.Equal(t, 100_000.0, svc.ConflictRange(0, 1.0))
	assert.Equal(t, 50_000.0, svc.ConflictRange(1.0, 1.0))
	assert.Equal(t, 50_000.0, svc.ConflictRange(-1.0, 1.0))

	p := svc.CreateProjection(0.1, 0.2, 300)
	assert.IsType(t, identityProjection{}, p)
	assert.Equal(t, geodesy.LLA(0.1, 0.2, 300), p.Reference())
}

func TestService_ReturnedProjectionsAreIndependent(t *testing.T) {
	svc := NewService(coord.Simple)
	ref := geodesy.LLADegrees(60, 10, 0)
	p := svc.CreateProjectionLLA(ref)

	svc.SetProjectionType(coord.Ortho)
	assert.Equal(t, coord.Simple, p.Type(), "switching must not affect projections already handed out")
	assert.Equal(t, coord.Ortho, svc.CreateProjectionLLA(ref).Type())
}

func TestService_ConcurrentSwitches(t *testing.T) {
	svc := NewService(coord.DefaultType)
	ref := geodesy.LLADegrees(35.55, 139.78, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			types := coord.Types()
			for j := 0; j < 200; j++ {
				if i%2 == 0 {
					svc.SetProjectionType(types[(i+j)%len(types)])
					continue
				}
				p := svc.CreateProjectionLLA(ref)
				assert.True(t, p.Type().Valid())
				assert.Greater(t, svc.MaxRange(), 0.0)
			}
		}(i)
	}
	wg.Wait()

	svc.SetProjectionType(coord.Ortho)
	assert.Equal(t, coord.Ortho, svc.CreateProjectionLLA(ref).Type())
}
