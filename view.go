package stockpile

import "iter"

var _ Query = &View{}

// View is an ad hoc intersection over several pools. The smallest pool
// drives iteration and every other pool is probed per candidate.
type View struct {
	pools    []Pool
	driver   Pool
	checks   []Pool
	excludes []Pool
	cols     []column
	reg      *Registry
}

func newView(pools []Pool, reg *Registry) *View {
	v := &View{
		pools: pools,
		reg:   reg,
	}
	v.Refresh()
	return v
}

// Refresh re-selects the driver pool from current pool sizes
func (v *View) Refresh() {
	v.driver = nil
	v.checks = v.checks[:0]
	v.cols = v.cols[:0]
	if len(v.pools) == 0 {
		return
	}
	v.driver = v.pools[0]
	for _, p := range v.pools[1:] {
		if p.Len() < v.driver.Len() {
			v.driver = p
		}
	}
	for _, p := range v.pools {
		v.cols = append(v.cols, column{pool: p, packed: p == v.driver})
		if p != v.driver {
			v.checks = append(v.checks, p)
		}
	}
}

// Exclude skips entities present in any of the given pools
func (v *View) Exclude(pools ...Pool) *View {
	v.excludes = append(v.excludes, pools...)
	return v
}

// Without excludes entities carrying any of the given components. Components
// without a pool in the view's registry exclude nothing.
func (v *View) Without(components ...Component) *View {
	if v.reg == nil {
		return v
	}
	for _, c := range components {
		if p, ok := v.reg.lookupPool(c); ok {
			v.excludes = append(v.excludes, p)
		}
	}
	return v
}

// Driver returns the pool iteration walks
func (v *View) Driver() Pool {
	return v.driver
}

// Len returns the number of candidates before filtering
func (v *View) Len() int {
	if v.driver == nil {
		return 0
	}
	return v.driver.Len()
}

func (v *View) Rows() iter.Seq[Row] {
	return rowsOf(v)
}

func (v *View) bound() int {
	return v.Len()
}

func (v *View) row(i int) (Row, bool) {
	e := v.driver.KeyAt(i)
	page, offset := e.Split()
	for _, p := range v.checks {
		if !p.ContainsAt(page, offset) {
			return Row{}, false
		}
	}
	for _, p := range v.excludes {
		if p.ContainsAt(page, offset) {
			return Row{}, false
		}
	}
	return Row{Entity: e, Index: i, Page: page, Offset: offset}, true
}

func (v *View) columns() []column {
	return v.cols
}

func (v *View) registry() *Registry {
	return v.reg
}
