package stockpile

// ForEach2 calls fn with the A and B values of every row of q
func ForEach2[A, B any](q Query, fn func(*A, *B)) {
	ca, cb := columnFor[A](q), columnFor[B](q)
	if !ca.ok() || !cb.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(ca.at(r), cb.at(r))
	}
}

// ForEachEntity2 is ForEach2 with the row's entity passed first
func ForEachEntity2[A, B any](q Query, fn func(Entity, *A, *B)) {
	ca, cb := columnFor[A](q), columnFor[B](q)
	if !ca.ok() || !cb.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(r.Entity, ca.at(r), cb.at(r))
	}
}

func ForEach3[A, B, C any](q Query, fn func(*A, *B, *C)) {
	ca, cb, cc := columnFor[A](q), columnFor[B](q), columnFor[C](q)
	if !ca.ok() || !cb.ok() || !cc.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(ca.at(r), cb.at(r), cc.at(r))
	}
}

func ForEachEntity3[A, B, C any](q Query, fn func(Entity, *A, *B, *C)) {
	ca, cb, cc := columnFor[A](q), columnFor[B](q), columnFor[C](q)
	if !ca.ok() || !cb.ok() || !cc.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(r.Entity, ca.at(r), cb.at(r), cc.at(r))
	}
}

func ForEach4[A, B, C, D any](q Query, fn func(*A, *B, *C, *D)) {
	ca, cb, cc, cd := columnFor[A](q), columnFor[B](q), columnFor[C](q), columnFor[D](q)
	if !ca.ok() || !cb.ok() || !cc.ok() || !cd.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(ca.at(r), cb.at(r), cc.at(r), cd.at(r))
	}
}

func ForEachEntity4[A, B, C, D any](q Query, fn func(Entity, *A, *B, *C, *D)) {
	ca, cb, cc, cd := columnFor[A](q), columnFor[B](q), columnFor[C](q), columnFor[D](q)
	if !ca.ok() || !cb.ok() || !cc.ok() || !cd.ok() {
		return
	}
	defer lockFor(q)()
	for r := range q.Rows() {
		fn(r.Entity, ca.at(r), cb.at(r), cc.at(r), cd.at(r))
	}
}
