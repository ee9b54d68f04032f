package gopage

// PageDetails carries the derived metadata of one page. Computed fresh per
// response by BuildPage, never mutated afterwards.
type PageDetails struct {
	TotalPages      int             `json:"totalPages"`
	PageIndex       int             `json:"pageIndex"`
	Position        int             `json:"position"`
	TotalElements   int64           `json:"totalElements"`
	ElementsPerPage int             `json:"elementsPerPage"`
	ElementsInPage  int             `json:"elementsInPage"`
	First           bool            `json:"isFirst"`
	Last            bool            `json:"isLast"`
	HasNext         bool            `json:"hasNext"`
	HasPrevious     bool            `json:"hasPrevious"`
	Overflow        bool            `json:"isOverflow"`
	Sort            []SortDirective `json:"sort,omitempty"`
}

// Page is the sole payload returned to callers: one page of mapped content
// plus its metadata.
type Page[T any] struct {
	Content []T         `json:"content"`
	Details PageDetails `json:"details"`
}

// BuildPage wraps already-fetched content with page metadata derived from the
// total element count and the original request. The builder does not
// re-slice content or check that it matches one page's worth - supplying a
// window-sized slice is the orchestrator's job.
//
// A nil request means "no pagination requested": one page holds everything.
func BuildPage[T any](content []T, totalElements int64, req *PageRequest) *Page[T] {
	pageSize := int(totalElements)
	if req != nil && req.Size() > 0 {
		pageSize = req.Size()
	}

	var totalPages int
	if totalElements > 0 && pageSize > 0 {
		totalPages = int((totalElements + int64(pageSize) - 1) / int64(pageSize))
		if totalPages < 1 {
			totalPages = 1
		}
	}

	var pageIndex, position int
	requestedPosition, positionBased := req.Position()
	switch {
	case req == nil || pageSize <= 0:
		// Page index and position stay zero.
	case positionBased:
		pageIndex = requestedPosition / pageSize
		position = requestedPosition
	default:
		pageIndex = req.Page()
		position = pageIndex * pageSize
	}

	var overflow bool
	if positionBased {
		overflow = (totalElements > 0 && int64(position) >= totalElements) ||
			(totalElements == 0 && position > 0)
	} else {
		overflow = (totalPages > 0 && pageIndex >= totalPages) ||
			(totalPages == 0 && pageIndex > 0)
	}

	return &Page[T]{
		Content: content,
		Details: PageDetails{
			TotalPages:      totalPages,
			PageIndex:       pageIndex,
			Position:        position,
			TotalElements:   totalElements,
			ElementsPerPage: pageSize,
			ElementsInPage:  len(content),
			First:           totalPages == 0 || pageIndex == 0,
			Last:            totalPages == 0 || pageIndex >= totalPages-1,
			HasNext:         totalPages > 0 && pageIndex < totalPages-1,
			HasPrevious:     totalPages > 0 && pageIndex > 0,
			Overflow:        overflow,
			Sort:            req.Sort(),
		},
	}
}

// EmptyPage is BuildPage over empty content and a zero total.
func EmptyPage[T any](req *PageRequest) *Page[T] {
	return BuildPage[T](nil, 0, req)
}
