package globetour

import "math"

// Ambient motion constants for the idle globe.
const (
	// bobStep is the per-frame increment of the bob phase counter.
	bobStep = 0.02
	// bobAmplitude is the vertical excursion of the idle bob in world units.
	bobAmplitude = 0.03
	// MaxTilt bounds the pointer-driven tilt of the scene group, radians.
	MaxTilt = 0.35
)

// Scene holds the mutable 3D state of the visualization: camera pose,
// marker pose, and the continuous rotation/bob phase of the globe group.
//
// The scene is owned by the engine and mutated only on the frame
// timeline: the render step is the sole writer of idle rotation and bob,
// the active camera motion is the sole writer of the camera position
// while Moving is set, and the two never write the same field in the
// same frame because Moving is exclusive.
type Scene struct {
	// Camera is the camera position in world space. The camera always
	// looks at the globe centre, so no orientation is stored.
	Camera Vec3

	// Marker is the 3D position of the stop pin, in the globe group's
	// local space. Mutated only by MovePin, exactly once per stop
	// activation, before that stop's camera motion starts.
	Marker Vec3

	// RotationY is the accumulated idle rotation of the globe group.
	RotationY float64

	// BobPhase and BobOffset implement the gentle vertical bob of the
	// globe group: offset = sin(phase) * amplitude.
	BobPhase  float64
	BobOffset float64

	// TiltX and TiltZ are the pointer-driven tilt of the globe group.
	// They nudge axes the tour never touches, so pointer input and tour
	// sequencing cannot conflict.
	TiltX float64
	TiltZ float64

	// SpinRate is the idle auto-rotation rate in radians per frame,
	// mutated only by tour transitions.
	SpinRate float64

	// Moving is set while a directed camera motion is in flight. While
	// set, the render step skips idle rotation and bob advancement.
	Moving bool
}

// NewScene returns a scene with the camera at the neutral orbit start
// and the marker parked at the first stop's side of the globe.
func NewScene(spinRate float64) Scene {
	return Scene{
		Camera:   Vec3{Z: OrbitDistance},
		Marker:   Vec3{Y: MarkerAltitude},
		SpinRate: spinRate,
	}
}

// MovePin places the marker at the given geographic coordinates, just
// above the globe surface.
func (s *Scene) MovePin(lat, lon float64) {
	s.Marker = LatLonToVec3(lat, lon, MarkerAltitude)
}

// SetPointer maps a pointer position normalized to [-1, 1] per axis
// onto a small tilt of the scene group, clamped to ±MaxTilt radians.
// Pointer tilt is ambient: it is independent of tour state.
func (s *Scene) SetPointer(nx, ny float64) {
	s.TiltZ = Clamp(nx*MaxTilt, -MaxTilt, MaxTilt)
	s.TiltX = Clamp(ny*MaxTilt, -MaxTilt, MaxTilt)
}

// advanceIdle moves the idle rotation and bob forward one frame. Called
// only when no directed camera motion is active.
func (s *Scene) advanceIdle() {
	s.RotationY += s.SpinRate
	s.BobPhase += bobStep
	s.BobOffset = math.Sin(s.BobPhase) * bobAmplitude
}

// MarkerWorld returns the marker position in world space, with the globe
// group's rotation, tilt and bob applied. This is the position the
// overlay projection tracks.
func (s *Scene) MarkerWorld() Vec3 {
	p := RotateY(s.Marker, s.RotationY)
	p = RotateX(p, s.TiltX)
	p = RotateZ(p, s.TiltZ)
	p.Y += s.BobOffset
	return p
}

// SurfaceToTexture maps a point on the visible sphere surface (world
// space) back into texture space, undoing the group transforms in
// reverse order. The globe raster uses this to sample the land mask.
func (s *Scene) SurfaceToTexture(p Vec3) Vec3 {
	p.Y -= s.BobOffset
	p = RotateZ(p, -s.TiltZ)
	p = RotateX(p, -s.TiltX)
	return RotateY(p, -s.RotationY)
}
