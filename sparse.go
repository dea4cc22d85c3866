package stockpile

const absent = -1

type page [PageSize]int

// sparseIndex maps entities to dense slots through lazily allocated pages
type sparseIndex struct {
	pages []*page
}

func newPage() *page {
	p := new(page)
	for i := range p {
		p[i] = absent
	}
	return p
}

func (s *sparseIndex) set(e Entity, index int) {
	pg, offset := e.Split()
	if pg >= len(s.pages) {
		s.grow(pg + 1)
	}
	if s.pages[pg] == nil {
		s.pages[pg] = newPage()
	}
	s.pages[pg][offset] = index
}

func (s *sparseIndex) unset(e Entity) {
	pg, offset := e.Split()
	if pg >= len(s.pages) || s.pages[pg] == nil {
		return
	}
	s.pages[pg][offset] = absent
}

// get returns the dense index of e or absent
func (s *sparseIndex) get(e Entity) int {
	pg, offset := e.Split()
	return s.getAt(pg, offset)
}

func (s *sparseIndex) getAt(pg, offset int) int {
	if pg < 0 || pg >= len(s.pages) || s.pages[pg] == nil {
		return absent
	}
	return s.pages[pg][offset]
}

func (s *sparseIndex) contains(e Entity) bool {
	return s.get(e) != absent
}

func (s *sparseIndex) containsAt(pg, offset int) bool {
	return s.getAt(pg, offset) != absent
}

// grow extends the page table to n entries. Pages themselves are
// allocated on first write.
func (s *sparseIndex) grow(n int) {
	if n <= len(s.pages) {
		return
	}
	if cap(s.pages) < n {
		newCap := max(n, 2*cap(s.pages))
		grown := make([]*page, len(s.pages), newCap)
		copy(grown, s.pages)
		s.pages = grown
	}
	s.pages = s.pages[:n]
}

func (s *sparseIndex) pageCount() int {
	return len(s.pages)
}
