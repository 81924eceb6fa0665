// Package scene describes the 3D layout of the simulated data center as a
// flat node arena with parent-index links and axis-aligned bounds. The
// external renderer draws it; this side only needs enough geometry for
// ray picking.
package scene

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Ray is a pick ray in world space. Direction need not be normalized; the
// returned intersection distances are in units of its length.
type Ray struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// IsZero reports whether the direction has no extent.
func (r Ray) IsZero() bool {
	return r.Direction.X == 0 && r.Direction.Y == 0 && r.Direction.Z == 0
}

// AABB is an axis-aligned bounding box in world coordinates.
type AABB struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// IntersectRay performs the slab test against the box. It returns the
// distance along the ray to the entry point and whether the ray hits at
// all. A ray starting inside the box hits at distance 0. Rays pointing
// away from the box miss.
func (b AABB) IntersectRay(r Ray) (float64, bool) {
	tNear := -1e308
	tFar := 1e308

	axes := [3][3]float64{
		{r.Origin.X, r.Direction.X, 0},
		{r.Origin.Y, r.Direction.Y, 0},
		{r.Origin.Z, r.Direction.Z, 0},
	}
	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		origin, dir := axes[i][0], axes[i][1]
		if dir == 0 {
			// Parallel to this slab: must already be inside it.
			if origin < mins[i] || origin > maxs[i] {
				return 0, false
			}
			continue
		}
		t1 := (mins[i] - origin) / dir
		t2 := (maxs[i] - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, false
		}
	}

	if tFar < 0 {
		// Box is entirely behind the ray origin.
		return 0, false
	}
	if tNear < 0 {
		// Origin inside the box.
		return 0, true
	}
	return tNear, true
}
