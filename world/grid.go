package world

// Cell is one spatial partition bucket holding indices into a collider batch
type Cell struct {
	// Items in this cell (preallocated slice)
	Items []int

	// Current count of active items
	Count int
}

// NewCell creates a new cell with preallocated storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{Items: make([]int, 0, initialCapacity)}
}

// Add appends an item index
func (c *Cell) Add(i int) {
	if c.Count < len(c.Items) {
		c.Items[c.Count] = i
	} else {
		c.Items = append(c.Items, i)
	}
	c.Count++
}

// Active returns the items added since the last Clear
func (c *Cell) Active() []int {
	return c.Items[:c.Count]
}

// Clear empties the cell but keeps capacity
func (c *Cell) Clear() {
	c.Count = 0
}

// Grid is a uniform spatial partition over a rectangle. Objects are filed in
// every cell their bounding box touches; coordinates outside the rectangle
// clamp to the border cells.
type Grid struct {
	cells    [][]*Cell
	minX     float64
	minY     float64
	cellSize float64
	countX   int
	countY   int
	occupied []*Cell
}

// NewGrid preallocates a grid covering [minX, minX+width) x [minY, minY+height)
func NewGrid(minX, minY, width, height, cellSize float64) *Grid {
	countX := max(1, int(width/cellSize)+1)
	countY := max(1, int(height/cellSize)+1)

	cells := make([][]*Cell, countX)
	for x := 0; x < countX; x++ {
		cells[x] = make([]*Cell, countY)
		for y := 0; y < countY; y++ {
			cells[x][y] = NewCell(8)
		}
	}

	return &Grid{
		cells:    cells,
		minX:     minX,
		minY:     minY,
		cellSize: cellSize,
		countX:   countX,
		countY:   countY,
	}
}

// CellAt converts world coordinates to clamped cell coordinates
func (g *Grid) CellAt(x, y float64) (int, int) {
	cellX := int((x - g.minX) / g.cellSize)
	cellY := int((y - g.minY) / g.cellSize)

	cellX = max(0, min(cellX, g.countX-1))
	cellY = max(0, min(cellY, g.countY-1))

	return cellX, cellY
}

// Insert files item i under every cell overlapped by the box
func (g *Grid) Insert(i int, minX, minY, maxX, maxY float64) {
	x0, y0 := g.CellAt(minX, minY)
	x1, y1 := g.CellAt(maxX, maxY)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			cell := g.cells[x][y]
			if cell.Count == 0 {
				g.occupied = append(g.occupied, cell)
			}
			cell.Add(i)
		}
	}
}

// Occupied returns the cells holding at least one item, in fill order
func (g *Grid) Occupied() []*Cell {
	return g.occupied
}

// Clear empties all occupied cells
func (g *Grid) Clear() {
	for _, c := range g.occupied {
		c.Clear()
	}
	g.occupied = g.occupied[:0]
}
