// Package partition indexes dynamic entities in a uniform grid so collision
// queries only look at the entities near the probe.
package partition

import (
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// BoxKind selects which of an entity's boxes a membership or query refers to.
type BoxKind uint8

const (
	BoundingBox BoxKind = 1 << iota
	HitBox
	CollisionBox

	AllKinds = BoundingBox | HitBox | CollisionBox
)

const kindCount = 3

func (k BoxKind) String() string {
	switch k {
	case BoundingBox:
		return "bounding"
	case HitBox:
		return "hit"
	case CollisionBox:
		return "collision"
	case AllKinds:
		return "all"
	}
	return fmt.Sprintf("kinds(%d)", uint8(k))
}

func kindIndex(k BoxKind) int {
	switch k {
	case BoundingBox:
		return 0
	case HitBox:
		return 1
	}
	return 2
}

func eachKind(mask BoxKind, fn func(k BoxKind, i int)) {
	for i, k := range [kindCount]BoxKind{BoundingBox, HitBox, CollisionBox} {
		if mask&k != 0 {
			fn(k, i)
		}
	}
}

// Entity is anything the partition can index.
type Entity interface {
	comparable
	GetBox(kind BoxKind) geometry.Box
}

// aliver is implemented by entities that can be dead while still indexed.
type aliver interface {
	Alive() bool
}

type quad[T Entity] struct {
	members [kindCount][]T
}

func (q *quad[T]) empty() bool {
	for _, m := range q.members {
		if len(m) > 0 {
			return false
		}
	}
	return true
}

type record struct {
	boxes   [kindCount]geometry.Box
	indexed [kindCount]bool
}

type span struct {
	startRow, startCol, endRow, endCol int
}

func (s span) contains(row, col int) bool {
	return row >= s.startRow && row <= s.endRow && col >= s.startCol && col <= s.endCol
}

// Partition is a rows x cols grid over box. Cells are allocated on demand and
// released once empty. The last row and column absorb any remainder of the
// division of box into cells.
type Partition[T Entity] struct {
	box        geometry.Box
	rows, cols int
	cellWidth  fixed.Int52_12
	cellHeight fixed.Int52_12
	cells      []*quad[T]
	records    map[T]*record
}

// New creates an empty partition. rows and cols are at least one.
func New[T Entity](box geometry.Box, rows, cols int) *Partition[T] {
	rows = max(rows, 1)
	cols = max(cols, 1)
	return &Partition[T]{
		box:        box,
		rows:       rows,
		cols:       cols,
		cellWidth:  max(box.Width()/fixed.Int52_12(cols), geometry.StepSize),
		cellHeight: max(box.Height()/fixed.Int52_12(rows), geometry.StepSize),
		cells:      make([]*quad[T], rows*cols),
		records:    make(map[T]*record),
	}
}

func (p *Partition[T]) Box() geometry.Box { return p.box }
func (p *Partition[T]) Rows() int         { return p.rows }
func (p *Partition[T]) Cols() int         { return p.cols }

// Len returns the number of entities with at least one indexed box.
func (p *Partition[T]) Len() int {
	return len(p.records)
}

// CellCount returns the number of allocated cells.
func (p *Partition[T]) CellCount() int {
	n := 0
	for _, q := range p.cells {
		if q != nil {
			n++
		}
	}
	return n
}

// CellBox returns the area covered by a cell.
func (p *Partition[T]) CellBox(row, col int) geometry.Box {
	left := p.box.Left() + fixed.Int52_12(col)*p.cellWidth
	top := p.box.Top() + fixed.Int52_12(row)*p.cellHeight
	right := left + p.cellWidth
	bottom := top + p.cellHeight
	if col == p.cols-1 {
		right = p.box.Right()
	}
	if row == p.rows-1 {
		bottom = p.box.Bottom()
	}
	return geometry.NewBox(left, top, right-left, bottom-top)
}

// CellMembers returns the entities whose kind box overlaps the cell.
func (p *Partition[T]) CellMembers(row, col int, kind BoxKind) []T {
	if row < 0 || col < 0 || row >= p.rows || col >= p.cols {
		return nil
	}
	q := p.cells[row*p.cols+col]
	if q == nil {
		return nil
	}
	return append([]T(nil), q.members[kindIndex(kind)]...)
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

// memberSpan returns the cells overlapped with positive area by b.
func (p *Partition[T]) memberSpan(b geometry.Box) (span, bool) {
	if !b.Overlaps(p.box) {
		return span{}, false
	}
	lt := p.box.LeftTop()
	return span{
		startCol: clampIndex(geometry.FloorDiv(b.Left()-lt.X, p.cellWidth), p.cols),
		startRow: clampIndex(geometry.FloorDiv(b.Top()-lt.Y, p.cellHeight), p.rows),
		endCol:   clampIndex(geometry.CeilDiv(b.Right()-lt.X, p.cellWidth)-1, p.cols),
		endRow:   clampIndex(geometry.CeilDiv(b.Bottom()-lt.Y, p.cellHeight)-1, p.rows),
	}, true
}

// querySpan returns every cell touching the closed box b. Parts of b outside
// the partition fall on the nearest edge row or column.
func (p *Partition[T]) querySpan(b geometry.Box) span {
	lt := p.box.LeftTop()
	return span{
		startCol: clampIndex(geometry.FloorDiv(b.Left()-lt.X-1, p.cellWidth), p.cols),
		startRow: clampIndex(geometry.FloorDiv(b.Top()-lt.Y-1, p.cellHeight), p.rows),
		endCol:   clampIndex(geometry.FloorDiv(b.Right()-lt.X, p.cellWidth), p.cols),
		endRow:   clampIndex(geometry.FloorDiv(b.Bottom()-lt.Y, p.cellHeight), p.rows),
	}
}

func (p *Partition[T]) cell(row, col int, create bool) *quad[T] {
	i := row*p.cols + col
	q := p.cells[i]
	if q == nil && create {
		q = &quad[T]{}
		p.cells[i] = q
	}
	return q
}

func (p *Partition[T]) add(e T, ki, row, col int) {
	q := p.cell(row, col, true)
	q.members[ki] = append(q.members[ki], e)
}

func (p *Partition[T]) remove(e T, ki, row, col int) {
	i := row*p.cols + col
	q := p.cells[i]
	if q == nil {
		return
	}
	list := q.members[ki]
	for j, m := range list {
		if m == e {
			q.members[ki] = append(list[:j], list[j+1:]...)
			break
		}
	}
	if q.empty() {
		p.cells[i] = nil
	}
}

// Insert indexes the entity's boxes of every kind in kinds. Inserting an
// entity that is already indexed refreshes its membership.
func (p *Partition[T]) Insert(e T, kinds BoxKind) {
	p.Update(e, kinds, true)
}

// Update moves the entity to the cells its current boxes overlap. Kinds whose
// box did not change since the last update are skipped unless force is set.
func (p *Partition[T]) Update(e T, kinds BoxKind, force bool) {
	rec := p.records[e]
	if rec == nil {
		rec = &record{}
	}

	eachKind(kinds, func(k BoxKind, ki int) {
		box := e.GetBox(k)
		if rec.indexed[ki] && !force && rec.boxes[ki] == box {
			return
		}

		var oldSpan span
		hadOld := false
		if rec.indexed[ki] {
			oldSpan, hadOld = p.memberSpan(rec.boxes[ki])
		}
		newSpan, hasNew := span{}, false
		if box.IsValid() {
			newSpan, hasNew = p.memberSpan(box)
		}

		if hadOld {
			for row := oldSpan.startRow; row <= oldSpan.endRow; row++ {
				for col := oldSpan.startCol; col <= oldSpan.endCol; col++ {
					if !hasNew || !newSpan.contains(row, col) {
						p.remove(e, ki, row, col)
					}
				}
			}
		}
		if hasNew {
			for row := newSpan.startRow; row <= newSpan.endRow; row++ {
				for col := newSpan.startCol; col <= newSpan.endCol; col++ {
					if !hadOld || !oldSpan.contains(row, col) {
						p.add(e, ki, row, col)
					}
				}
			}
		}

		rec.boxes[ki] = box
		rec.indexed[ki] = hasNew
	})

	if rec.indexed == [kindCount]bool{} {
		delete(p.records, e)
		return
	}
	p.records[e] = rec
}

// Remove drops the entity's membership for every kind in kinds.
func (p *Partition[T]) Remove(e T, kinds BoxKind) {
	rec := p.records[e]
	if rec == nil {
		return
	}
	eachKind(kinds, func(_ BoxKind, ki int) {
		if !rec.indexed[ki] {
			return
		}
		if s, ok := p.memberSpan(rec.boxes[ki]); ok {
			for row := s.startRow; row <= s.endRow; row++ {
				for col := s.startCol; col <= s.endCol; col++ {
					p.remove(e, ki, row, col)
				}
			}
		}
		rec.indexed[ki] = false
		rec.boxes[ki] = geometry.Box{}
	})
	if rec.indexed == [kindCount]bool{} {
		delete(p.records, e)
	}
}

// Clear drops every entity.
func (p *Partition[T]) Clear() {
	clear(p.cells)
	clear(p.records)
}

// Contains reports whether some box of kind of e is indexed.
func (p *Partition[T]) Contains(e T, kind BoxKind) bool {
	rec := p.records[e]
	return rec != nil && rec.indexed[kindIndex(kind)]
}

// Query returns, in first-seen order and without duplicates, every alive
// entity whose box of one of kinds intersects shape, skipping exclude.
func (p *Partition[T]) Query(shape geometry.Shape, kinds BoxKind, exclude ...T) []T {
	return p.QueryInto(nil, shape, kinds, exclude...)
}

// QueryInto appends the results of Query to dst.
func (p *Partition[T]) QueryInto(dst []T, shape geometry.Shape, kinds BoxKind, exclude ...T) []T {
	s := p.querySpan(shape.WrappingBox())
	start := len(dst)
	for row := s.startRow; row <= s.endRow; row++ {
		for col := s.startCol; col <= s.endCol; col++ {
			q := p.cells[row*p.cols+col]
			if q == nil {
				continue
			}
			eachKind(kinds, func(k BoxKind, ki int) {
				for _, e := range q.members[ki] {
					if contains(dst[start:], e) || contains(exclude, e) {
						continue
					}
					if a, ok := any(e).(aliver); ok && !a.Alive() {
						continue
					}
					if !shape.IntersectsBox(p.records[e].boxes[ki]) {
						continue
					}
					dst = append(dst, e)
				}
			})
		}
	}
	return dst
}

func contains[T comparable](list []T, e T) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func (p *Partition[T]) QueryPoint(v geometry.Vector, kinds BoxKind, exclude ...T) []T {
	return p.Query(v, kinds, exclude...)
}

func (p *Partition[T]) QuerySegment(s geometry.LineSegment, kinds BoxKind, exclude ...T) []T {
	return p.Query(s, kinds, exclude...)
}

func (p *Partition[T]) QueryBox(b geometry.Box, kinds BoxKind, exclude ...T) []T {
	return p.Query(b, kinds, exclude...)
}

func (p *Partition[T]) QueryParallelogram(pg geometry.Parallelogram, kinds BoxKind, exclude ...T) []T {
	return p.Query(pg, kinds, exclude...)
}
