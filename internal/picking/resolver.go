package picking

import (
	"sort"

	"github.com/bytebitgo/rackview/internal/scene"
)

// hit is one geometric intersection along the ray.
type hit struct {
	nodeID   int
	distance float64
}

// Resolve maps a ray to the nearest logical target. It returns the target,
// the distance to the nearest geometric hit, and whether any pickable node
// was hit at all. A nearest hit on decorative geometry yields (None, d,
// true): the decoration occludes whatever is behind it. An empty pickable
// set or a ray that misses everything yields (None, 0, false).
func Resolve(s *scene.Scene, ray scene.Ray) (Target, float64, bool) {
	if ray.IsZero() {
		return None(), 0, false
	}

	hits := intersectAll(s, ray)
	if len(hits) == 0 {
		return None(), 0, false
	}

	nearest := hits[0]
	tag := s.TagFor(nearest.nodeID)
	return fromTag(tag), nearest.distance, true
}

// intersectAll returns every pickable intersection ordered nearest first.
// Equal distances fall back to arena order, which keeps ties deterministic
// without promising anything about which object "wins".
func intersectAll(s *scene.Scene, ray scene.Ray) []hit {
	var hits []hit
	for _, id := range s.Pickable() {
		node, ok := s.Node(id)
		if !ok {
			continue
		}
		if d, isHit := node.Bounds.IntersectRay(ray); isHit {
			hits = append(hits, hit{nodeID: id, distance: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}
		return hits[i].nodeID < hits[j].nodeID
	})
	return hits
}

// fromTag converts a resolved scene tag to a target.
func fromTag(tag *scene.Tag) Target {
	if tag == nil {
		return None()
	}
	switch tag.Kind {
	case scene.TagServerBody:
		return Server(tag.ServerID)
	case scene.TagRackCase:
		return Rack(tag.RackIndex)
	default:
		return None()
	}
}
