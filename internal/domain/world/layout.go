package world

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// ErrOutOfBounds is returned when a setter targets a position outside the layout.
var ErrOutOfBounds = errors.New("position outside layout")

// Tile is the smallest visual unit. It carries no collision semantics.
type Tile struct {
	ID   int
	Data []byte
}

// MapCell places a tile inside a map with its rendering attributes.
type MapCell struct {
	Tile     *Tile
	Palette  int
	Flipped  bool
	Mirrored bool
	UpLayer  bool
}

// Map is the atomic unit of collision: a small grid of tiles sharing one
// CollisionData value.
type Map struct {
	ID            int
	CollisionData CollisionData
	cells         [SideTilesPerMap][SideTilesPerMap]MapCell
}

func (m *Map) Cell(row, col int) MapCell {
	return m.cells[row][col]
}

func (m *Map) SetCell(row, col int, c MapCell) {
	m.cells[row][col] = c
}

// IsEmpty reports a map without tiles and without collision.
func (m *Map) IsEmpty() bool {
	if m.CollisionData != CollisionNone {
		return false
	}
	for _, row := range m.cells {
		for _, c := range row {
			if c.Tile != nil {
				return false
			}
		}
	}
	return true
}

// Block groups maps for storage.
type Block struct {
	ID   int
	maps [SideMapsPerBlock][SideMapsPerBlock]*Map
}

func (b *Block) Map(row, col int) *Map {
	return b.maps[row][col]
}

func (b *Block) SetMap(row, col int, m *Map) {
	b.maps[row][col] = m
}

// Scene groups blocks; it is the unit the renderer streams.
type Scene struct {
	ID     int
	blocks [SideBlocksPerScene][SideBlocksPerScene]*Block
}

func (s *Scene) Block(row, col int) *Block {
	return s.blocks[row][col]
}

func (s *Scene) SetBlock(row, col int, b *Block) {
	s.blocks[row][col] = b
}

// Layout owns every tile, map, block and scene of a level and the scene grid
// placing them in the world. Maps and blocks are shared by pointer, so placing
// one map at several positions stores the same value.
type Layout struct {
	tiles  []*Tile
	maps   []*Map
	blocks []*Block
	scenes []*Scene

	sceneRows, sceneCols int
	grid                 [][]*Scene
}

// NewLayout creates an empty layout of sceneRows x sceneCols scenes.
func NewLayout(sceneRows, sceneCols int) *Layout {
	l := &Layout{}
	l.Resize(sceneRows, sceneCols)
	return l
}

// Resize changes the scene grid size, keeping the scenes that still fit.
func (l *Layout) Resize(sceneRows, sceneCols int) {
	sceneRows = max(sceneRows, 0)
	sceneCols = max(sceneCols, 0)
	grid := make([][]*Scene, sceneRows)
	for row := range grid {
		grid[row] = make([]*Scene, sceneCols)
		if row < l.sceneRows {
			copy(grid[row], l.grid[row])
		}
	}
	l.grid = grid
	l.sceneRows = sceneRows
	l.sceneCols = sceneCols
}

// Clear drops every element and empties the grid, keeping its size.
func (l *Layout) Clear() {
	l.tiles = nil
	l.maps = nil
	l.blocks = nil
	l.scenes = nil
	for row := range l.grid {
		clear(l.grid[row])
	}
}

func (l *Layout) SceneRowCount() int { return l.sceneRows }
func (l *Layout) SceneColCount() int { return l.sceneCols }
func (l *Layout) MapRowCount() int   { return l.sceneRows * SideMapsPerScene }
func (l *Layout) MapColCount() int   { return l.sceneCols * SideMapsPerScene }

func (l *Layout) Width() fixed.Int52_12  { return fixed.Int52_12(l.sceneCols) * SceneSizeFixed }
func (l *Layout) Height() fixed.Int52_12 { return fixed.Int52_12(l.sceneRows) * SceneSizeFixed }

// BoundingBox covers every scene of the layout.
func (l *Layout) BoundingBox() geometry.Box {
	return geometry.NewBox(Offset.X, Offset.Y, l.Width(), l.Height())
}

func (l *Layout) AddTile(data []byte) *Tile {
	t := &Tile{ID: len(l.tiles), Data: data}
	l.tiles = append(l.tiles, t)
	return t
}

func (l *Layout) AddMap(data CollisionData) *Map {
	m := &Map{ID: len(l.maps), CollisionData: data}
	l.maps = append(l.maps, m)
	return m
}

func (l *Layout) AddBlock() *Block {
	b := &Block{ID: len(l.blocks)}
	l.blocks = append(l.blocks, b)
	return b
}

func (l *Layout) AddScene() *Scene {
	s := &Scene{ID: len(l.scenes)}
	l.scenes = append(l.scenes, s)
	return s
}

// AddMapAt creates a map with data and places it at pos.
func (l *Layout) AddMapAt(pos geometry.Vector, data CollisionData) (*Map, error) {
	m := l.AddMap(data)
	if err := l.SetMap(pos, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *Layout) TileByID(id int) *Tile {
	if id < 0 || id >= len(l.tiles) {
		return nil
	}
	return l.tiles[id]
}

func (l *Layout) MapByID(id int) *Map {
	if id < 0 || id >= len(l.maps) {
		return nil
	}
	return l.maps[id]
}

func (l *Layout) BlockByID(id int) *Block {
	if id < 0 || id >= len(l.blocks) {
		return nil
	}
	return l.blocks[id]
}

func (l *Layout) SceneByID(id int) *Scene {
	if id < 0 || id >= len(l.scenes) {
		return nil
	}
	return l.scenes[id]
}

func (l *Layout) TileCount() int  { return len(l.tiles) }
func (l *Layout) MapCount() int   { return len(l.maps) }
func (l *Layout) BlockCount() int { return len(l.blocks) }
func (l *Layout) SceneCount() int { return len(l.scenes) }

func (l *Layout) sceneCell(pos geometry.Vector) (Cell, bool) {
	c := GetSceneCellFromPos(pos)
	return c, c.Row >= 0 && c.Row < l.sceneRows && c.Col >= 0 && c.Col < l.sceneCols
}

func localIndex(global, side int) int {
	return global % side
}

// GetSceneFrom returns the scene covering pos, or nil.
func (l *Layout) GetSceneFrom(pos geometry.Vector) *Scene {
	c, ok := l.sceneCell(pos)
	if !ok {
		return nil
	}
	return l.grid[c.Row][c.Col]
}

// GetBlockFrom returns the block covering pos, or nil.
func (l *Layout) GetBlockFrom(pos geometry.Vector) *Block {
	s := l.GetSceneFrom(pos)
	if s == nil {
		return nil
	}
	c := GetBlockCellFromPos(pos)
	return s.blocks[localIndex(c.Row, SideBlocksPerScene)][localIndex(c.Col, SideBlocksPerScene)]
}

// GetMapFrom returns the map covering pos, or nil.
func (l *Layout) GetMapFrom(pos geometry.Vector) *Map {
	b := l.GetBlockFrom(pos)
	if b == nil {
		return nil
	}
	c := GetMapCellFromPos(pos)
	return b.maps[localIndex(c.Row, SideMapsPerBlock)][localIndex(c.Col, SideMapsPerBlock)]
}

// GetTileFrom returns the tile covering pos, or nil.
func (l *Layout) GetTileFrom(pos geometry.Vector) *Tile {
	m := l.GetMapFrom(pos)
	if m == nil {
		return nil
	}
	c := GetTileCellFromPos(pos)
	return m.cells[localIndex(c.Row, SideTilesPerMap)][localIndex(c.Col, SideTilesPerMap)].Tile
}

// GetMapAt returns the map at a map-grid cell, or nil.
func (l *Layout) GetMapAt(row, col int) *Map {
	if row < 0 || col < 0 || row >= l.MapRowCount() || col >= l.MapColCount() {
		return nil
	}
	return l.GetMapFrom(GetMapLeftTop(row, col))
}

// SetScene places s at the scene covering pos.
func (l *Layout) SetScene(pos geometry.Vector, s *Scene) error {
	c, ok := l.sceneCell(pos)
	if !ok {
		return fmt.Errorf("%w: scene at %s", ErrOutOfBounds, pos)
	}
	l.grid[c.Row][c.Col] = s
	return nil
}

func (l *Layout) sceneOrCreate(pos geometry.Vector) (*Scene, error) {
	c, ok := l.sceneCell(pos)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	s := l.grid[c.Row][c.Col]
	if s == nil {
		s = l.AddScene()
		l.grid[c.Row][c.Col] = s
	}
	return s, nil
}

// SetBlock places b at the block covering pos, creating the scene if needed.
func (l *Layout) SetBlock(pos geometry.Vector, b *Block) error {
	s, err := l.sceneOrCreate(pos)
	if err != nil {
		return err
	}
	c := GetBlockCellFromPos(pos)
	s.blocks[localIndex(c.Row, SideBlocksPerScene)][localIndex(c.Col, SideBlocksPerScene)] = b
	return nil
}

func (l *Layout) blockOrCreate(pos geometry.Vector) (*Block, error) {
	s, err := l.sceneOrCreate(pos)
	if err != nil {
		return nil, err
	}
	c := GetBlockCellFromPos(pos)
	row, col := localIndex(c.Row, SideBlocksPerScene), localIndex(c.Col, SideBlocksPerScene)
	b := s.blocks[row][col]
	if b == nil {
		b = l.AddBlock()
		s.blocks[row][col] = b
	}
	return b, nil
}

// SetMap places m at the map covering pos, creating the scene and block if needed.
func (l *Layout) SetMap(pos geometry.Vector, m *Map) error {
	b, err := l.blockOrCreate(pos)
	if err != nil {
		return err
	}
	c := GetMapCellFromPos(pos)
	b.maps[localIndex(c.Row, SideMapsPerBlock)][localIndex(c.Col, SideMapsPerBlock)] = m
	return nil
}

// SetTile places t at the tile covering pos, creating an empty map if needed.
func (l *Layout) SetTile(pos geometry.Vector, t *Tile) error {
	b, err := l.blockOrCreate(pos)
	if err != nil {
		return err
	}
	mc := GetMapCellFromPos(pos)
	row, col := localIndex(mc.Row, SideMapsPerBlock), localIndex(mc.Col, SideMapsPerBlock)
	m := b.maps[row][col]
	if m == nil {
		m = l.AddMap(CollisionNone)
		b.maps[row][col] = m
	}
	tc := GetTileCellFromPos(pos)
	cell := m.cells[localIndex(tc.Row, SideTilesPerMap)][localIndex(tc.Col, SideTilesPerMap)]
	cell.Tile = t
	m.cells[localIndex(tc.Row, SideTilesPerMap)][localIndex(tc.Col, SideTilesPerMap)] = cell
	return nil
}

// FillRectangle places m on every map cell of box, starting at its left-top.
func (l *Layout) FillRectangle(box geometry.Box, m *Map) error {
	rows := int(box.Height() / MapSizeFixed)
	cols := int(box.Width() / MapSizeFixed)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := box.LeftTop().Add(geometry.Vector{
				X: fixed.Int52_12(col) * MapSizeFixed,
				Y: fixed.Int52_12(row) * MapSizeFixed,
			})
			if err := l.SetMap(pos, m); err != nil {
				return fmt.Errorf("failed to fill rectangle %s: %w", box, err)
			}
		}
	}
	return nil
}

// FillRectangleWithBlock places b on every block cell of box.
func (l *Layout) FillRectangleWithBlock(box geometry.Box, b *Block) error {
	rows := int(box.Height() / BlockSizeFixed)
	cols := int(box.Width() / BlockSizeFixed)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := box.LeftTop().Add(geometry.Vector{
				X: fixed.Int52_12(col) * BlockSizeFixed,
				Y: fixed.Int52_12(row) * BlockSizeFixed,
			})
			if err := l.SetBlock(pos, b); err != nil {
				return fmt.Errorf("failed to fill rectangle %s: %w", box, err)
			}
		}
	}
	return nil
}

// EachMap calls fn for every placed map in row-major order.
func (l *Layout) EachMap(fn func(row, col int, m *Map)) {
	for row := 0; row < l.MapRowCount(); row++ {
		for col := 0; col < l.MapColCount(); col++ {
			if m := l.GetMapAt(row, col); m != nil {
				fn(row, col, m)
			}
		}
	}
}
