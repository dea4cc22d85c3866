package stockpile

import "iter"

var _ Query = &Runner{}

// Runner walks a single pool in dense order
type Runner struct {
	pool Pool
	cols []column
	reg  *Registry
}

func newRunner(p Pool, reg *Registry) *Runner {
	return &Runner{
		pool: p,
		cols: []column{{pool: p, packed: true}},
		reg:  reg,
	}
}

func (r *Runner) Len() int {
	return r.pool.Len()
}

func (r *Runner) Rows() iter.Seq[Row] {
	return rowsOf(r)
}

func (r *Runner) bound() int {
	return r.pool.Len()
}

func (r *Runner) row(i int) (Row, bool) {
	e := r.pool.KeyAt(i)
	page, offset := e.Split()
	return Row{Entity: e, Index: i, Page: page, Offset: offset}, true
}

func (r *Runner) columns() []column {
	return r.cols
}

func (r *Runner) registry() *Registry {
	return r.reg
}
