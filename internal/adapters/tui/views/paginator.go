package views

// Paginator tracks a cursor over a list shown one page at a time.
// The page on screen is always the one holding the cursor.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator shows size rows per page, 10 when size <= 0
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetPageSize is called after a resize. Non-positive sizes are ignored.
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

// SetTotal updates the row count and pulls the cursor back onto the list
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves to row pos, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.total-1), 0)
}

func (p *Paginator) CursorUp() bool {
	return p.move(p.cursor - 1)
}

func (p *Paginator) CursorDown() bool {
	return p.move(p.cursor + 1)
}

// NextPage jumps to the first row of the following page
func (p *Paginator) NextPage() bool {
	return p.move(p.offset() + p.size)
}

// PrevPage jumps to the first row of the preceding page
func (p *Paginator) PrevPage() bool {
	return p.move(p.offset() - p.size)
}

// VisibleRange is the half-open row range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.size, p.total)
}

// TotalPages is at least 1 so an empty list still reads "page 1/1"
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.offset()/p.size + 1
}

func (p *Paginator) Reset() {
	p.cursor = 0
	p.total = 0
}

func (p *Paginator) offset() int {
	return p.cursor / p.size * p.size
}

// move sets the cursor to pos if pos is a row, reporting whether it moved
func (p *Paginator) move(pos int) bool {
	if pos < 0 || pos >= p.total || pos == p.cursor {
		return false
	}
	p.cursor = pos
	return true
}
