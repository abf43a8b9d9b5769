package world

import (
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// Cell addresses one element of a grid level.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func cellFromPos(pos geometry.Vector, size fixed.Int52_12) Cell {
	return Cell{
		Row: geometry.FloorDiv(pos.Y-Offset.Y, size),
		Col: geometry.FloorDiv(pos.X-Offset.X, size),
	}
}

func cellLeftTop(row, col int, size fixed.Int52_12) geometry.Vector {
	return geometry.Vector{
		X: Offset.X + fixed.Int52_12(col)*size,
		Y: Offset.Y + fixed.Int52_12(row)*size,
	}
}

func cellBox(row, col int, size fixed.Int52_12) geometry.Box {
	lt := cellLeftTop(row, col, size)
	return geometry.NewBox(lt.X, lt.Y, size, size)
}

func GetTileCellFromPos(pos geometry.Vector) Cell  { return cellFromPos(pos, TileSizeFixed) }
func GetMapCellFromPos(pos geometry.Vector) Cell   { return cellFromPos(pos, MapSizeFixed) }
func GetBlockCellFromPos(pos geometry.Vector) Cell { return cellFromPos(pos, BlockSizeFixed) }
func GetSceneCellFromPos(pos geometry.Vector) Cell { return cellFromPos(pos, SceneSizeFixed) }

func GetTileLeftTop(row, col int) geometry.Vector  { return cellLeftTop(row, col, TileSizeFixed) }
func GetMapLeftTop(row, col int) geometry.Vector   { return cellLeftTop(row, col, MapSizeFixed) }
func GetBlockLeftTop(row, col int) geometry.Vector { return cellLeftTop(row, col, BlockSizeFixed) }
func GetSceneLeftTop(row, col int) geometry.Vector { return cellLeftTop(row, col, SceneSizeFixed) }

func GetTileBoundingBox(c Cell) geometry.Box  { return cellBox(c.Row, c.Col, TileSizeFixed) }
func GetMapBoundingBox(c Cell) geometry.Box   { return cellBox(c.Row, c.Col, MapSizeFixed) }
func GetBlockBoundingBox(c Cell) geometry.Box { return cellBox(c.Row, c.Col, BlockSizeFixed) }
func GetSceneBoundingBox(c Cell) geometry.Box { return cellBox(c.Row, c.Col, SceneSizeFixed) }
