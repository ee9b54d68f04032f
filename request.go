package gopage

import (
	"net/url"
	"strconv"
)

// PageRequest is an immutable description of a requested page window: either
// a zero-based page index or an absolute row position, a page size and an
// ordered list of sort directives. Construct via NewPageRequest,
// NewPositionRequest or RawPageRequest.Decode.
type PageRequest struct {
	page     int
	position *int
	size     int
	sort     []SortDirective
}

// NewPageRequest builds a page-indexed request. page and size must be >= 0;
// size 0 means "one page holds everything".
func NewPageRequest(page, size int, sort ...SortDirective) (*PageRequest, error) {
	if page < 0 {
		return nil, newErrorf(ErrorKindInvalidPageablePair, "page must be >= 0, got %d", page)
	}
	if size < 0 {
		return nil, newErrorf(ErrorKindInvalidPageablePair, "size must be >= 0, got %d", size)
	}

	return &PageRequest{
		page: page,
		size: size,
		sort: sort,
	}, nil
}

// NewPositionRequest builds a request addressing an absolute row offset
// instead of a page index. position and size must be >= 0.
func NewPositionRequest(position, size int, sort ...SortDirective) (*PageRequest, error) {
	if position < 0 {
		return nil, newErrorf(ErrorKindInvalidPageablePair, "position must be >= 0, got %d", position)
	}
	if size < 0 {
		return nil, newErrorf(ErrorKindInvalidPageablePair, "size must be >= 0, got %d", size)
	}

	return &PageRequest{
		position: &position,
		size:     size,
		sort:     sort,
	}, nil
}

// Page returns the zero-based page index.
func (r *PageRequest) Page() int {
	if r == nil {
		return 0
	}

	return r.page
}

// Position returns the absolute row offset and whether one was requested.
func (r *PageRequest) Position() (int, bool) {
	if r == nil || r.position == nil {
		return 0, false
	}

	return *r.position, true
}

// Size returns the requested page size; 0 means unbounded.
func (r *PageRequest) Size() int {
	if r == nil {
		return 0
	}

	return r.size
}

// Sort returns the ordered sort directives; the first is the primary key.
func (r *PageRequest) Sort() []SortDirective {
	if r == nil {
		return nil
	}

	return r.sort
}

// Offset returns the absolute offset of the requested window: the position
// when one was requested, otherwise page*size.
func (r *PageRequest) Offset() int {
	if r == nil {
		return 0
	}

	if r.position != nil {
		return *r.position
	}

	return r.page * r.size
}

// RawPageRequest is intended for API payloads. For proper code generation,
// inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Page - zero-based page index. Mutually exclusive with Position.
	Page *int `json:"page,omitempty"`
	// Position - absolute row offset the window starts at.
	Position *int `json:"position,omitempty"`
	// Size - maximum number of records per page. Requires Page or Position.
	Size *int `json:"size,omitempty"`
	// Sort - raw sort tokens in the form "[table.]field[,direction]".
	Sort []string `json:"sort,omitempty"`
}

// Decode validates the raw combination and converts it into *PageRequest.
// Returns (nil, nil) when no parameter is set at all. The invalid
// combinations - page together with position, or size without either - fail
// with ErrInvalidPageablePair before any query work happens.
func (p RawPageRequest) Decode() (*PageRequest, error) {
	if p.Page == nil && p.Position == nil && p.Size == nil && len(p.Sort) == 0 {
		return nil, nil
	}

	if p.Page != nil && p.Position != nil {
		return nil, newError(ErrorKindInvalidPageablePair, "page and position are mutually exclusive")
	}
	if p.Size != nil && p.Page == nil && p.Position == nil {
		return nil, newError(ErrorKindInvalidPageablePair, "size requires a companion page or position")
	}

	sort, err := ParseSortDirectives(p.Sort)
	if err != nil {
		return nil, err
	}

	size := 0
	if p.Size != nil {
		size = *p.Size
	}

	if p.Position != nil {
		return NewPositionRequest(*p.Position, size, sort...)
	}

	page := 0
	if p.Page != nil {
		page = *p.Page
	}

	return NewPageRequest(page, size, sort...)
}

// ParsePageRequest reads the recognized query parameters - "page",
// "position", "size" and repeatable "sort" - and decodes them. Returns
// (nil, nil) when none is present, meaning no pagination was requested.
func ParsePageRequest(values url.Values) (*PageRequest, error) {
	var raw RawPageRequest

	for _, param := range []struct {
		name string
		dst  **int
	}{
		{"page", &raw.Page},
		{"position", &raw.Position},
		{"size", &raw.Size},
	} {
		v := values.Get(param.name)
		if v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, newErrorf(ErrorKindInvalidPageablePair, "parameter '%s' is not an integer: '%s'", param.name, v).WithCause(err)
		}

		*param.dst = &n
	}

	raw.Sort = values["sort"]

	return raw.Decode()
}
