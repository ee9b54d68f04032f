package gopage

// ApplyOrder resolves each directive against the query and appends one
// ordering instruction per directive, in directive order (the first directive
// becomes the primary sort key). Selection, filters and window are left
// untouched. An empty directive list is a no-op.
//
// Resolution is fail-fast: the first parser/resolver error aborts with the
// query's ordering only partially applied; callers must discard the query on
// error.
func (r *Resolver) ApplyOrder(q *Queryable, directives []SortDirective) error {
	for _, directive := range directives {
		// The direction is interpolated into the ORDER BY string, so a
		// directly constructed directive must pass the same validation a
		// parsed token does.
		direction := directive.Direction
		if direction == "" {
			direction = DirectionASC
		} else if !direction.Valid() {
			return newErrorf(ErrorKindInvalidOrderDirection, "'%s'", string(directive.Direction))
		}

		target, err := r.Resolve(q, directive)
		if err != nil {
			return err
		}

		q.order(target.SQL(), direction)
	}

	return nil
}

// ApplyOrder applies directives to the query using the default resolver.
func ApplyOrder(q *Queryable, directives []SortDirective) error {
	return DefaultResolver().ApplyOrder(q, directives)
}
