package stockpile

import "iter"

var _ Query = &GroupSlice{}

// GroupSlice iterates the packed prefix of an owning group. Owned values
// are read by dense index; view pools filter rows and are read through
// sparse coordinates.
type GroupSlice struct {
	group *OwningGroup
	owned []Pool
	views []Pool
	cols  []column
	reg   *Registry
}

func newGroupSlice(g *OwningGroup, owned, views []Pool, reg *Registry) *GroupSlice {
	cols := make([]column, 0, len(owned)+len(views))
	for _, p := range owned {
		cols = append(cols, column{pool: p, packed: true})
	}
	for _, p := range views {
		cols = append(cols, column{pool: p})
	}
	return &GroupSlice{
		group: g,
		owned: owned,
		views: views,
		cols:  cols,
		reg:   reg,
	}
}

func (s *GroupSlice) Group() *OwningGroup {
	return s.group
}

// Len returns the number of packed candidates before view filtering
func (s *GroupSlice) Len() int {
	return s.group.nextIndex
}

func (s *GroupSlice) Rows() iter.Seq[Row] {
	return rowsOf(s)
}

func (s *GroupSlice) bound() int {
	return s.group.nextIndex
}

func (s *GroupSlice) row(i int) (Row, bool) {
	e := s.owned[0].KeyAt(i)
	page, offset := e.Split()
	for _, v := range s.views {
		if !v.ContainsAt(page, offset) {
			return Row{}, false
		}
	}
	return Row{Entity: e, Index: i, Page: page, Offset: offset}, true
}

func (s *GroupSlice) columns() []column {
	return s.cols
}

func (s *GroupSlice) registry() *Registry {
	return s.reg
}
