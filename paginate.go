package gopage

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mapper converts raw result rows into domain values. The library never
// looks inside row payloads; it only hands them over.
type Mapper[T any] interface {
	// MapRow maps one row to one domain value.
	MapRow(row map[string]any) (T, error)
	// MapGroup maps a non-empty list of rows sharing a group key to at most
	// one aggregated domain value. Returning ok=false drops the group from
	// the page content.
	MapGroup(rows []map[string]any) (T, bool, error)
}

// MapperFuncs adapts plain functions to Mapper. When Group is nil, MapGroup
// defaults to mapping only the first row of the group; implementations that
// aggregate child rows supply their own Group.
type MapperFuncs[T any] struct {
	Row   func(row map[string]any) (T, error)
	Group func(rows []map[string]any) (T, bool, error)
}

// MapRow - implements Mapper.
func (m MapperFuncs[T]) MapRow(row map[string]any) (T, error) {
	if m.Row == nil {
		var zero T
		return zero, fmt.Errorf("gopage: MapperFuncs.Row is nil")
	}

	return m.Row(row)
}

// MapGroup - implements Mapper.
func (m MapperFuncs[T]) MapGroup(rows []map[string]any) (T, bool, error) {
	if m.Group != nil {
		return m.Group(rows)
	}

	var zero T
	if len(rows) == 0 {
		return zero, false, nil
	}

	value, err := m.MapRow(rows[0])
	if err != nil {
		return zero, false, err
	}

	return value, true, nil
}

var _ Mapper[any] = MapperFuncs[any]{}

// Paginate runs flat pagination with the default resolver.
func Paginate[T any](q *Queryable, req *PageRequest, mapper Mapper[T]) (*Page[T], error) {
	return PaginateWith(DefaultResolver(), q, req, mapper)
}

// PaginateWith counts the full result set, applies sort and window to a
// clone of the query, maps each returned row and wraps the content with
// page metadata computed from the pre-window total.
//
// Counting and the content query are expected to run inside one caller-owned
// transactional scope; the library takes no locks and assumes snapshot
// consistency between the two.
func PaginateWith[T any](r *Resolver, q *Queryable, req *PageRequest, mapper Mapper[T]) (*Page[T], error) {
	total, err := q.count()
	if err != nil {
		return nil, fmt.Errorf("count result set: %w", err)
	}
	if total == 0 {
		return EmptyPage[T](req), nil
	}

	cq := q.clone()
	if err = r.ApplyOrder(cq, req.Sort()); err != nil {
		return nil, err
	}
	applyWindow(cq, req)

	var rows []map[string]any
	if err = cq.DB().Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch page content: %w", err)
	}

	content := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := mapper.MapRow(row)
		if err != nil {
			return nil, err
		}

		content = append(content, item)
	}

	return BuildPage(content, total, req), nil
}

// PaginateGrouped runs grouped pagination with the default resolver.
func PaginateGrouped[T any](q *Queryable, req *PageRequest, groupKey string, mapper Mapper[T]) (*Page[T], error) {
	return PaginateGroupedWith(DefaultResolver(), q, req, groupKey, mapper)
}

// PaginateGroupedWith paginates a parent-with-children query shape by
// distinct parent identity rather than raw row count. groupKey is the column
// identifying the parent entity, e.g. "users.id".
//
// The window is computed over the distinct group-key values: first the
// paginated key set is selected (sort and window applied to a DISTINCT
// key query), then full rows restricted to that key subset are fetched,
// grouped by key in key-window order and handed to MapGroup once per group.
// Groups whose mapper signals ok=false are dropped. Page metadata uses the
// distinct-group count, not the row count.
func PaginateGroupedWith[T any](r *Resolver, q *Queryable, req *PageRequest, groupKey string, mapper Mapper[T]) (*Page[T], error) {
	total, err := q.distinctCount(groupKey)
	if err != nil {
		return nil, fmt.Errorf("count distinct groups: %w", err)
	}
	if total == 0 {
		return EmptyPage[T](req), nil
	}

	keys, err := fetchGroupKeys(r, q, req, groupKey)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return BuildPage[T](nil, total, req), nil
	}

	cq := q.clone()
	if err = r.ApplyOrder(cq, req.Sort()); err != nil {
		return nil, err
	}
	cq.db = cq.DB().Where(fmt.Sprintf("%s IN ?", groupKey), keys)

	var rows []map[string]any
	if err = cq.DB().Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch group content: %w", err)
	}

	keyName := unqualifiedColumn(groupKey)
	grouped := lo.GroupBy(rows, func(row map[string]any) string {
		return groupKeyString(row[keyName])
	})

	content := make([]T, 0, len(keys))
	for _, key := range keys {
		groupRows := grouped[groupKeyString(key)]
		if len(groupRows) == 0 {
			continue
		}

		item, ok, err := mapper.MapGroup(groupRows)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		content = append(content, item)
	}

	return BuildPage(content, total, req), nil
}

// fetchGroupKeys selects the paginated set of distinct group-key values, in
// the requested order.
func fetchGroupKeys(r *Resolver, q *Queryable, req *PageRequest, groupKey string) ([]any, error) {
	kq := q.clone()
	if err := r.ApplyOrder(kq, req.Sort()); err != nil {
		return nil, err
	}
	applyWindow(kq, req)
	kq.db = kq.DB().Distinct(groupKey)

	var keyRows []map[string]any
	if err := kq.DB().Find(&keyRows).Error; err != nil {
		return nil, fmt.Errorf("fetch group keys: %w", err)
	}

	keyName := unqualifiedColumn(groupKey)
	keys := make([]any, 0, len(keyRows))
	for _, row := range keyRows {
		keys = append(keys, row[keyName])
	}

	return keys, nil
}

func applyWindow(q *Queryable, req *PageRequest) {
	q.window(req.Size(), req.Offset())
}

func unqualifiedColumn(column string) string {
	if idx := strings.LastIndex(column, "."); idx != -1 {
		return column[idx+1:]
	}

	return column
}

// groupKeyString normalizes a scanned key value for grouping: the key-window
// query and the content query may scan the same column into different Go
// types depending on the driver.
func groupKeyString(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return fmt.Sprint(v)
}
