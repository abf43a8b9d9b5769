// Package world holds the static tile hierarchy of a level (tiles, maps,
// blocks and scenes), the catalog of per-map collision semantics and the
// queries that classify a probe shape against it.
package world

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// Sizes in pixels of each level of the hierarchy.
const (
	TileSize  = 8
	MapSize   = 16
	BlockSize = 32
	SceneSize = 256

	SideTilesPerMap    = MapSize / TileSize
	SideMapsPerBlock   = BlockSize / MapSize
	SideBlocksPerScene = SceneSize / BlockSize
	SideMapsPerScene   = SceneSize / MapSize
)

// Fixed-point extents.
const (
	TileSizeFixed  fixed.Int52_12 = TileSize << geometry.FracBits
	MapSizeFixed   fixed.Int52_12 = MapSize << geometry.FracBits
	BlockSizeFixed fixed.Int52_12 = BlockSize << geometry.FracBits
	SceneSizeFixed fixed.Int52_12 = SceneSize << geometry.FracBits
)

// Offset is the world position of the left-top corner of scene (0, 0).
var Offset = geometry.NullVector
