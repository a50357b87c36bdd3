package globetour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScene(t *testing.T) {
	s := NewScene(0.0025)

	assert.Equal(t, Vec3{Z: OrbitDistance}, s.Camera)
	assert.Equal(t, Vec3{Y: MarkerAltitude}, s.Marker)
	assert.Equal(t, 0.0025, s.SpinRate)
	assert.False(t, s.Moving)
}

func TestScene_MovePin(t *testing.T) {
	s := NewScene(0)
	s.MovePin(35.6595, 139.7005)

	assert.InDelta(t, MarkerAltitude, s.Marker.Norm(), 1e-12,
		"pin floats just above the surface")
	assert.Equal(t, LatLonToVec3(35.6595, 139.7005, MarkerAltitude), s.Marker)
}

func TestScene_SetPointerClamps(t *testing.T) {
	s := NewScene(0)

	s.SetPointer(0.5, -0.5)
	assert.InDelta(t, 0.5*MaxTilt, s.TiltZ, 1e-12)
	assert.InDelta(t, -0.5*MaxTilt, s.TiltX, 1e-12)

	s.SetPointer(4, -4)
	assert.Equal(t, MaxTilt, s.TiltZ)
	assert.Equal(t, -MaxTilt, s.TiltX)
}

func TestScene_AdvanceIdle(t *testing.T) {
	s := NewScene(0.01)

	for i := 0; i < 10; i++ {
		s.advanceIdle()
	}

	assert.InDelta(t, 0.1, s.RotationY, 1e-12)
	assert.InDelta(t, 10*bobStep, s.BobPhase, 1e-12)
	assert.InDelta(t, math.Sin(s.BobPhase)*bobAmplitude, s.BobOffset, 1e-12)
	assert.LessOrEqual(t, math.Abs(s.BobOffset), bobAmplitude)
}

// MarkerWorld applies rotation, tilt and bob; SurfaceToTexture undoes
// them in reverse, so the two compose to identity on the surface.
func TestScene_MarkerWorldRoundTrip(t *testing.T) {
	s := NewScene(0)
	s.RotationY = 0.7
	s.TiltX = 0.2
	s.TiltZ = -0.1
	s.BobOffset = 0.02
	s.MovePin(-33.8568, 151.2153)

	world := s.MarkerWorld()
	back := s.SurfaceToTexture(world)

	assert.InDelta(t, s.Marker.X, back.X, 1e-12)
	assert.InDelta(t, s.Marker.Y, back.Y, 1e-12)
	assert.InDelta(t, s.Marker.Z, back.Z, 1e-12)
}

func TestScene_MarkerWorldRotation(t *testing.T) {
	s := NewScene(0)
	s.MovePin(0, 0)
	s.RotationY = math.Pi / 2

	// A quarter turn about Y carries the +X surface point onto -Z.
	world := s.MarkerWorld()
	assert.InDelta(t, 0, world.X, 1e-12)
	assert.InDelta(t, -MarkerAltitude, world.Z, 1e-12)
}
