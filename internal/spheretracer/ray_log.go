package spheretracer

import (
	"fmt"
	"sort"
	"sync"
)

type Category uint8

const (
	RayHit        Category = iota // ray hit a sphere
	RayMiss                       // ray escaped to the background
	RayShadowed                   // shadow ray found an occluder
	RayReflect                    // reflection ray spawned
	RayDepthLimit                 // reflective hit with no budget left
)

func (c Category) String() string {
	switch c {
	case RayHit:
		return "hit"
	case RayMiss:
		return "miss"
	case RayShadowed:
		return "shadowed"
	case RayReflect:
		return "reflect"
	case RayDepthLimit:
		return "depth_limit"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// RayLog counts traced rays per category. Only populated when Debug is set.
type RayLog struct {
	mu     sync.Mutex
	counts map[Category]uint64
}

var rayLog = &RayLog{
	counts: make(map[Category]uint64),
}

func recordRay(c Category) {
	if !Debug {
		return
	}
	rayLog.mu.Lock()
	rayLog.counts[c]++
	rayLog.mu.Unlock()
}

// RayCounts returns a copy of the per-category counters.
func RayCounts() map[Category]uint64 {
	rayLog.mu.Lock()
	defer rayLog.mu.Unlock()
	out := make(map[Category]uint64, len(rayLog.counts))
	for k, v := range rayLog.counts {
		out[k] = v
	}
	return out
}

// ResetRayCounts clears the counters.
func ResetRayCounts() {
	rayLog.mu.Lock()
	rayLog.counts = make(map[Category]uint64)
	rayLog.mu.Unlock()
}

func raysStats() {
	counts := RayCounts()
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Printf("Ray type %s: %d\n", Category(k), counts[Category(k)])
	}
}
