package pipeline

import (
	"cmp"
	"slices"

	"github.com/gekko3d/forward/forwardrt/rt/core"
)

// sortBackToFront orders nodes by DistanceToCamera, farthest first. Ties
// keep their traversal order.
func sortBackToFront(nodes []*core.Node) {
	slices.SortStableFunc(nodes, func(a, b *core.Node) int {
		return cmp.Compare(b.DistanceToCamera, a.DistanceToCamera)
	})
}
