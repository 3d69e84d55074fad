package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

var enRouteMinima = ProbeConfig{
	Lookahead:  300,
	Horizontal: 9260,  // 5 NM
	Vertical:   304.8, // 1000 ft
}

func TestProbe_HeadOnEuclidean(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	own := State{
		Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(0, 0, 10_000)),
		Vel: geodesy.NewVect3(200, 0, 0),
	}
	intruder := State{
		Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(60_000, 0, 10_000)),
		Vel: geodesy.NewVect3(-200, 0, 0),
	}

	c, err := Probe(svc, own, intruder, enRouteMinima)
	require.NoError(t, err)
	assert.True(t, c.InConflict)
	assert.InDelta(t, 150, c.TimeCPA, 1e-9)
	assert.InDelta(t, 0, c.DistanceH, 1e-9)
	assert.InDelta(t, 0, c.DistanceV, 1e-9)
	assert.InDelta(t, (60_000-9260)/400.0, c.TimeIn, 1e-9)
	assert.InDelta(t, (60_000+9260)/400.0, c.TimeOut, 1e-9)
}

func TestProbe_VerticallySeparated(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	own := State{
		Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(0, 0, 10_000)),
		Vel: geodesy.NewVect3(200, 0, 0),
	}
	intruder := State{
		Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(60_000, 0, 10_610)),
		Vel: geodesy.NewVect3(-200, 0, 0),
	}

	c, err := Probe(svc, own, intruder, enRouteMinima)
	require.NoError(t, err)
	assert.False(t, c.InConflict)
	assert.InDelta(t, 610, c.DistanceV, 1e-9)
}

func TestProbe_BeyondLookahead(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	own := State{Pos: geodesy.NewEuclideanPosition(geodesy.Vect3{}), Vel: geodesy.NewVect3(100, 0, 0)}
	intruder := State{Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(200_000, 0, 0)), Vel: geodesy.NewVect3(-100, 0, 0)}

	c, err := Probe(svc, own, intruder, enRouteMinima)
	require.NoError(t, err)
	assert.False(t, c.InConflict)
	assert.Equal(t, enRouteMinima.Lookahead, c.TimeCPA)
	assert.InDelta(t, 140_000, c.DistanceH, 1e-6)
}

func TestProbe_StationaryInsideMinima(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	own := State{Pos: geodesy.NewEuclideanPosition(geodesy.Vect3{})}
	intruder := State{Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(1000, 0, 100))}

	c, err := Probe(svc, own, intruder, enRouteMinima)
	require.NoError(t, err)
	assert.True(t, c.InConflict)
	assert.Equal(t, 0.0, c.TimeIn)
	assert.Equal(t, enRouteMinima.Lookahead, c.TimeOut)
}

func TestProbe_HeadOnGeodetic(t *testing.T) {
	// ~55.6 km apart on the equator, closing at 400 m/s.
	own := State{
		Pos: geodesy.NewLatLonPosition(geodesy.LLADegrees(0, 0, 10_000)),
		Vel: geodesy.NewVect3(200, 0, 0),
	}
	intruder := State{
		Pos: geodesy.NewLatLonPosition(geodesy.LLADegrees(0, 0.5, 10_000)),
		Vel: geodesy.NewVect3(-200, 0, 0),
	}

	for _, pt := range coord.Types() {
		svc := projection.NewService(pt)
		c, err := Probe(svc, own, intruder, enRouteMinima)
		require.NoError(t, err, "%v", pt)

		sep := geodesy.DistanceH(own.Pos.LLA(), intruder.Pos.LLA())
		assert.True(t, c.InConflict, "%v", pt)
		assert.InDelta(t, sep/400, c.TimeCPA, 1, "%v", pt)
		assert.InDelta(t, 0, c.DistanceV, 1e-6, "%v", pt)
		assert.InDelta(t, (sep-9260)/400, c.TimeIn, 1, "%v", pt)
	}
}

func TestProbe_IntruderBeyondMaxRange(t *testing.T) {
	svc := projection.NewService(coord.Simple)
	own := State{Pos: geodesy.NewLatLonPosition(geodesy.LLADegrees(0, 0, 10_000))}
	intruder := State{Pos: geodesy.NewLatLonPosition(geodesy.LLADegrees(0, 80, 10_000))}

	_, err := Probe(svc, own, intruder, enRouteMinima)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestProbe_MixedPositions(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	own := State{Pos: geodesy.NewLatLonPosition(geodesy.LLADegrees(0, 0, 0))}
	intruder := State{Pos: geodesy.NewEuclideanPosition(geodesy.NewVect3(1, 1, 1))}

	_, err := Probe(svc, own, intruder, enRouteMinima)
	assert.ErrorIs(t, err, ErrMixedPositions)
}
