package tableload

// Shape is the extent of a table as measured from its content.
type Shape struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
}

// Empty reports whether the shape holds no cells.
func (s Shape) Empty() bool {
	return s.Columns == 0 || s.Rows == 0
}

// Table is a rectangular grid of text cells loaded from a delimited file.
//
// The grid is sized once from the measuring pass and never resized.
type Table struct {
	path  string
	shape Shape
	cells [][]string
}

// newTable allocates a grid for shape. Every cell starts as "".
func newTable(path string, shape Shape) *Table {
	cells := make([][]string, shape.Rows)
	for i := range cells {
		cells[i] = make([]string, shape.Columns)
	}
	return &Table{path: path, shape: shape, cells: cells}
}

// Path returns the file the table was loaded from.
func (t *Table) Path() string {
	return t.path
}

// Shape returns the measured dimensions.
func (t *Table) Shape() Shape {
	return t.shape
}

// NumColumns returns the widest row's field count.
func (t *Table) NumColumns() int {
	return t.shape.Columns
}

// NumLines returns the number of lines in the source file.
func (t *Table) NumLines() int {
	return t.shape.Rows
}

// Cell returns the text at the 1-based (column, row) coordinate.
// Coordinates outside the loaded dimensions return "".
func (t *Table) Cell(column, row int) string {
	if column < 1 || column > t.shape.Columns || row < 1 || row > t.shape.Rows {
		return ""
	}
	// Released tables keep their shape but hold no rows.
	if row > len(t.cells) || column > len(t.cells[row-1]) {
		return ""
	}
	return t.cells[row-1][column-1]
}

// Released reports whether Release has dropped the cell data.
func (t *Table) Released() bool {
	return t.cells == nil && !t.shape.Empty()
}

// Release drops all cell data. NumColumns and NumLines keep reporting the
// loaded dimensions; every Cell call returns "" afterwards.
func (t *Table) Release() {
	for i := range t.cells {
		t.cells[i] = nil
	}
	t.cells = nil
}

// set writes a line's fields into row (1-based). Fields past the grid
// width are dropped.
func (t *Table) set(row int, fields []string) {
	if row < 1 || row > len(t.cells) {
		return
	}
	copy(t.cells[row-1], fields)
}
