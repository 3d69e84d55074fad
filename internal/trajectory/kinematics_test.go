package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

type maneuverFunc func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity)

// quarterTurn is the radius flown at 100 m/s and pi/20 rad/s: 90 degrees in 10 s.
var quarterTurn = 2000 / math.Pi

// Every case starts at (0, 0, 1000) flying north at 100 m/s.
var maneuverTests = []struct {
	name    string
	fly     maneuverFunc
	wantPos geodesy.Vect3
	wantVel geodesy.Vect3
}{
	{
		name: "linear",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return Linear(svc, pos, vel, 10)
		},
		wantPos: geodesy.NewVect3(0, 1000, 1000),
		wantVel: geodesy.NewVect3(0, 100, 0),
	},
	{
		name: "turn omega right",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return TurnOmega(svc, pos, vel, 10, math.Pi/20)
		},
		wantPos: geodesy.NewVect3(quarterTurn, quarterTurn, 1000),
		wantVel: geodesy.NewVect3(100, 0, 0),
	},
	{
		name: "turn radius left",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return Turn(svc, pos, vel, 10, quarterTurn, false)
		},
		wantPos: geodesy.NewVect3(-quarterTurn, quarterTurn, 1000),
		wantVel: geodesy.NewVect3(-100, 0, 0),
	},
	{
		name: "turn radius zero",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return Turn(svc, pos, vel, 10, 0, true)
		},
		wantPos: geodesy.NewVect3(0, 0, 1000),
		wantVel: geodesy.NewVect3(0, 100, 0),
	},
	{
		name: "turn until time",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return TurnUntilTimeOmega(svc, pos, vel, 20, 10, math.Pi/20)
		},
		wantPos: geodesy.NewVect3(quarterTurn+1000, quarterTurn, 1000),
		wantVel: geodesy.NewVect3(100, 0, 0),
	},
	{
		name: "turn until track",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			bank := math.Atan(math.Pi / 20 * 100 / Gravity)
			return TurnUntil(svc, pos, vel, 20, math.Pi/2, bank)
		},
		wantPos: geodesy.NewVect3(quarterTurn+1000, quarterTurn, 1000),
		wantVel: geodesy.NewVect3(100, 0, 0),
	},
	{
		name: "gs accel",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return GsAccel(svc, pos, vel, 10, 2)
		},
		wantPos: geodesy.NewVect3(0, 1100, 1000),
		wantVel: geodesy.NewVect3(0, 120, 0),
	},
	{
		name: "gs accel until faster",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return GsAccelUntil(svc, pos, vel, 10, 110, 2)
		},
		wantPos: geodesy.NewVect3(0, 1075, 1000),
		wantVel: geodesy.NewVect3(0, 110, 0),
	},
	{
		name: "gs accel until slower",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return GsAccelUntil(svc, pos, vel, 10, 90, -2)
		},
		wantPos: geodesy.NewVect3(0, 925, 1000),
		wantVel: geodesy.NewVect3(0, 90, 0),
	},
	{
		name: "vs accel",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return VsAccel(svc, pos, vel, 10, 1)
		},
		wantPos: geodesy.NewVect3(0, 1000, 1050),
		wantVel: geodesy.NewVect3(0, 100, 10),
	},
	{
		name: "vs accel until climb",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return VsAccelUntil(svc, pos, vel, 10, 5, 1)
		},
		wantPos: geodesy.NewVect3(0, 1000, 1037.5),
		wantVel: geodesy.NewVect3(0, 100, 5),
	},
	{
		name: "vs accel until descent",
		fly: func(svc *projection.Service, pos geodesy.Position, vel geodesy.Velocity) (geodesy.Position, geodesy.Velocity) {
			return VsAccelUntil(svc, pos, vel, 10, -5, 1)
		},
		wantPos: geodesy.NewVect3(0, 1000, 962.5),
		wantVel: geodesy.NewVect3(0, 100, -5),
	},
}

func assertVect3InDelta(t *testing.T, want, got geodesy.Vect3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func TestManeuvers_Euclidean(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	start := geodesy.NewEuclideanPosition(geodesy.NewVect3(0, 0, 1000))
	vel := geodesy.NewVect3(0, 100, 0)

	for _, tt := range maneuverTests {
		t.Run(tt.name, func(t *testing.T) {
			pos, v := tt.fly(svc, start, vel)
			assert.False(t, pos.IsLatLon())
			assertVect3InDelta(t, tt.wantPos, pos.Point(), 1e-6)
			assertVect3InDelta(t, tt.wantVel, v, 1e-9)
		})
	}
}

func TestManeuvers_Geodetic(t *testing.T) {
	ref := geodesy.LLADegrees(47, 8, 1000)
	start := geodesy.NewLatLonPosition(ref)
	vel := geodesy.NewVect3(0, 100, 0)

	for _, pt := range coord.Types() {
		svc := projection.NewService(pt)
		frame := svc.CreateProjectionPosition(start)

		for _, tt := range maneuverTests {
			t.Run(pt.String()+"/"+tt.name, func(t *testing.T) {
				pos, v := tt.fly(svc, start, vel)
				assert.True(t, pos.IsLatLon())
				assert.InDelta(t, tt.wantPos.Z, pos.LLA().Alt, 1e-6)
				assertVect3InDelta(t, tt.wantPos, frame.Project(pos.LLA()), 1e-4)
				assertVect3InDelta(t, tt.wantVel, v, 1e-9)

				want := math.Hypot(tt.wantPos.X, tt.wantPos.Y)
				assert.InDelta(t, want, geodesy.DistanceH(ref, pos.LLA()), 0.005*want+1e-6)
			})
		}
	}
}

func TestLinear_Geodetic(t *testing.T) {
	start := geodesy.LLADegrees(45, 7, 3000)
	pos := geodesy.NewLatLonPosition(start)

	for _, pt := range coord.Types() {
		svc := projection.NewService(pt)

		// Due north at 100 m/s for 60 s, climbing 5 m/s.
		got, v := Linear(svc, pos, geodesy.NewVect3(0, 100, 5), 60)
		assert.True(t, got.IsLatLon())
		assert.Equal(t, geodesy.NewVect3(0, 100, 5), v)
		assert.InDelta(t, 6000, geodesy.DistanceH(start, got.LLA()), 30, "%v", pt)
		assert.InDelta(t, 3300, got.LLA().Alt, 1e-6, "%v", pt)
		assert.Greater(t, got.LLA().Lat, start.Lat, "%v", pt)
		assert.InDelta(t, start.Lon, got.LLA().Lon, 1e-9, "%v", pt)

		// Zero time is a no-op.
		same, _ := Linear(svc, pos, geodesy.NewVect3(0, 100, 5), 0)
		assert.InDelta(t, 0, geodesy.DistanceH(start, same.LLA()), 1e-6, "%v", pt)
	}
}

func TestGsAccelUntil_ZeroRateHoldsSpeed(t *testing.T) {
	svc := projection.NewService(coord.ENU)
	start := geodesy.NewEuclideanPosition(geodesy.NewVect3(0, 0, 0))

	pos, v := GsAccelUntil(svc, start, geodesy.NewVect3(100, 0, 0), 10, 200, 0)
	assertVect3InDelta(t, geodesy.NewVect3(1000, 0, 0), pos.Point(), 1e-9)
	assertVect3InDelta(t, geodesy.NewVect3(100, 0, 0), v, 1e-9)
}
