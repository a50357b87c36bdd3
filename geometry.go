package globetour

import "math"

// Globe dimensions. The globe is a unit sphere at the origin; the camera
// orbits it at a fixed distance and always looks at the centre.
const (
	// GlobeRadius is the radius of the globe sphere in world units.
	GlobeRadius = 1.0
	// OrbitDistance is the fixed distance from the globe centre at which
	// the camera settles after a framing move.
	OrbitDistance = 2.6
	// MarkerAltitude is the radius at which the stop marker sits, just
	// above the globe surface so it never z-fights the sphere.
	MarkerAltitude = 1.02
)

// Perspective parameters used when projecting world positions onto the
// viewport for overlay placement.
const (
	fovY     = 45.0 * math.Pi / 180.0
	nearClip = 0.1
	farClip  = 100.0
	// cellAspect compensates for terminal cells being roughly twice as
	// tall as they are wide.
	cellAspect = 0.5
)

// Vec3 is a position or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector pointing in v's direction. The zero
// vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// LerpVec3 interpolates componentwise between a and b. Like Lerp, t is
// not clamped.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// RotateY rotates v around the world Y axis by ang radians.
func RotateY(v Vec3, ang float64) Vec3 {
	s, c := math.Sincos(ang)
	return Vec3{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
}

// RotateX rotates v around the world X axis by ang radians.
func RotateX(v Vec3, ang float64) Vec3 {
	s, c := math.Sincos(ang)
	return Vec3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

// RotateZ rotates v around the world Z axis by ang radians.
func RotateZ(v Vec3, ang float64) Vec3 {
	s, c := math.Sincos(ang)
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

// LatLonToVec3 converts geographic coordinates in degrees to a point on
// a sphere of radius r centred at the origin.
//
// The longitude is offset by 180 degrees so that the mapping lines up
// with the equirectangular texture's prime-meridian convention. Both
// poles collapse to a single point regardless of longitude.
func LatLonToVec3(lat, lon, r float64) Vec3 {
	phi := (90 - lat) * math.Pi / 180
	theta := (lon + 180) * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: -r * sinPhi * cosTheta,
		Y: r * cosPhi,
		Z: r * sinPhi * sinTheta,
	}
}

// Vec3ToLatLon is the inverse of LatLonToVec3 for unit-ish vectors,
// returning latitude and longitude in degrees. Used by the globe raster
// to look up the land mask for a surface point.
func Vec3ToLatLon(v Vec3) (lat, lon float64) {
	n := v.Normalize()
	lat = math.Asin(Clamp(n.Y, -1, 1)) * 180 / math.Pi
	lon = math.Atan2(n.Z, -n.X)*180/math.Pi - 180
	if lon < -180 {
		lon += 360
	}
	return lat, lon
}

// Viewport is the overlay coordinate space in terminal cells.
type Viewport struct {
	Width  int
	Height int
}

// Projection is the screen-space position of a world point, published
// every frame so overlay elements can follow the 3D marker.
//
// Visible reports whether the point's view depth lies inside the
// near/far clip range. Points behind the camera or past the far plane
// are hidden; occlusion by the globe itself is deliberately not tested,
// matching the overlay behavior of the source visualization.
type Projection struct {
	X       float64
	Y       float64
	Visible bool
}

// ProjectToScreen maps world point p to viewport coordinates as seen
// from a camera at eye looking at the origin with world-up Y.
func ProjectToScreen(p, eye Vec3, vp Viewport) Projection {
	forward := eye.Scale(-1).Normalize()
	right := forward.Cross(Vec3{Y: 1}).Normalize()
	if right.Norm() == 0 {
		// Camera looking straight down an axis aligned with up; pick an
		// arbitrary but stable right vector.
		right = Vec3{X: 1}
	}
	up := right.Cross(forward)

	rel := p.Sub(eye)
	depth := rel.Dot(forward)
	visible := depth > nearClip && depth < farClip
	if depth == 0 {
		return Projection{X: float64(vp.Width) / 2, Y: float64(vp.Height) / 2, Visible: false}
	}

	f := 1 / math.Tan(fovY/2)
	aspect := float64(vp.Width) * cellAspect / float64(vp.Height)
	if vp.Height == 0 || aspect == 0 {
		return Projection{Visible: false}
	}
	ndcX := rel.Dot(right) / depth * f / aspect
	ndcY := rel.Dot(up) / depth * f

	return Projection{
		X:       (ndcX + 1) / 2 * float64(vp.Width),
		Y:       (1 - ndcY) / 2 * float64(vp.Height),
		Visible: visible,
	}
}
