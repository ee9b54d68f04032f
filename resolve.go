package gopage

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// OrderTarget is a resolved ordering reference: either a table column or an
// expression alias. It is opaque beyond being something an ORDER BY can use;
// callers obtain it from a Resolver, never construct it directly.
type OrderTarget struct {
	expr    string
	isAlias bool
}

// SQL returns the reference to embed into an ORDER BY instruction.
func (t OrderTarget) SQL() string {
	return t.expr
}

// IsAlias reports whether the target is an expression alias rather than a
// table column.
func (t OrderTarget) IsAlias() bool {
	return t.isAlias
}

// ResolutionCache stores resolved ordering targets for the lifetime of the
// process. Resolution is a pure function of (query shape, directive), so
// concurrent duplicate computation followed by an overwrite is harmless;
// entries are never invalidated.
type ResolutionCache struct {
	mu      sync.RWMutex
	entries map[string]OrderTarget
}

func NewResolutionCache() *ResolutionCache {
	return &ResolutionCache{
		entries: make(map[string]OrderTarget),
	}
}

// GetOrCompute returns the cached target for key, or runs compute and stores
// its result. Failed computations are not cached: ambiguity and not-found
// conditions are permanent for a given key and re-surfacing them is cheap.
func (c *ResolutionCache) GetOrCompute(key string, compute func() (OrderTarget, error)) (OrderTarget, error) {
	c.mu.RLock()
	target, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return target, nil
	}

	target, err := compute()
	if err != nil {
		return OrderTarget{}, err
	}

	// Last writer wins: racing computations produce equal targets.
	c.mu.Lock()
	c.entries[key] = target
	c.mu.Unlock()

	return target, nil
}

// Len returns the number of cached resolutions.
func (c *ResolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Resolver maps sort directives to order targets against a Queryable's
// tables and aliases. A zero-value Resolver is not usable; construct with
// NewResolver. Safe for concurrent use.
type Resolver struct {
	cache *ResolutionCache
}

func NewResolver() *Resolver {
	return &Resolver{
		cache: NewResolutionCache(),
	}
}

// WithCache substitutes the resolution cache, making the otherwise
// process-wide state an explicit, injectable dependency.
func (r *Resolver) WithCache(cache *ResolutionCache) *Resolver {
	if r == nil {
		r = NewResolver()
	}

	if cache != nil {
		r.cache = cache
	}

	return r
}

var defaultResolver = NewResolver()

// DefaultResolver returns the process-wide resolver used by the package-level
// ApplyOrder/Paginate helpers.
func DefaultResolver() *Resolver {
	return defaultResolver
}

// Resolve maps one directive to exactly one order target.
//
// Expression aliases are tried first: set-union and aggregate queries expose
// only aliases for their result shape, so attempting table columns first
// would silently miss those fields or misattribute them to a base table. The
// table qualifier is ignored for the alias attempt (aliases have no table).
// If no alias matches, the directive falls back to the columns of the
// query's target tables, restricted to the qualified table when one is
// given. Matching is case-insensitive at every level, and any ambiguity is a
// hard failure: silently picking one of several candidates is a correctness
// hazard in multi-table queries.
func (r *Resolver) Resolve(q *Queryable, directive SortDirective) (OrderTarget, error) {
	if q == nil {
		return OrderTarget{}, newError(ErrorKindInvalidSortDirective, "no query to resolve against")
	}
	if strings.TrimSpace(directive.Field) == "" {
		return OrderTarget{}, newError(ErrorKindMissingSortDirective, "directive has no field name")
	}

	return r.cache.GetOrCompute(resolutionKey(q, directive), func() (OrderTarget, error) {
		return resolveUncached(q, directive)
	})
}

func resolveUncached(q *Queryable, directive SortDirective) (OrderTarget, error) {
	target, found, err := resolveAlias(q.Aliases(), directive)
	if err != nil {
		return OrderTarget{}, err
	}
	if found {
		return target, nil
	}

	return resolveColumn(q.Tables(), directive)
}

func resolveAlias(aliases []string, directive SortDirective) (OrderTarget, bool, error) {
	matches := lo.Filter(aliases, func(alias string, _ int) bool {
		return strings.EqualFold(alias, directive.Field)
	})

	switch len(matches) {
	case 0:
		return OrderTarget{}, false, nil
	case 1:
		return OrderTarget{expr: matches[0], isAlias: true}, true, nil
	default:
		return OrderTarget{}, false, newErrorf(ErrorKindAmbiguousSortField,
			"field '%s' matches expression aliases %s", directive.Field, quoteJoin(matches))
	}
}

func resolveColumn(tables []*Table, directive SortDirective) (OrderTarget, error) {
	candidates := tables
	if directive.Table != "" {
		candidates = lo.Filter(tables, func(t *Table, _ int) bool {
			return strings.EqualFold(t.Name(), directive.Table)
		})

		if len(candidates) == 0 {
			reason := "table '" + directive.Table + "' is not part of the query"
			if closest := closestName(directive.Table, tableNames(tables)); closest != "" {
				reason += ", closest: '" + closest + "'"
			}

			return OrderTarget{}, newError(ErrorKindInvalidSortDirective, reason)
		}
	}

	var matches []*Column
	for _, t := range candidates {
		if c, ok := t.Column(directive.Field); ok {
			matches = append(matches, c)
		}
	}
	matches = lo.Uniq(matches)

	switch len(matches) {
	case 0:
		reason := "field '" + directive.Field + "' not found in query tables"
		if closest := closestName(directive.Field, columnNames(candidates)); closest != "" {
			reason += ", closest: '" + closest + "'"
		}

		return OrderTarget{}, newError(ErrorKindInvalidSortDirective, reason)
	case 1:
		return OrderTarget{expr: matches[0].SQL()}, nil
	default:
		owners := lo.Map(matches, func(c *Column, _ int) string {
			return c.Table().Name()
		})

		return OrderTarget{}, newErrorf(ErrorKindAmbiguousSortField,
			"field '%s' is present in tables %s", directive.Field, quoteJoin(owners))
	}
}

// resolutionKey builds a deterministic cache key from the query shape (the
// canonical, order-independent sets of table names and aliases) and the
// directive's qualifier and field. Unit separators keep segments from
// colliding with each other.
func resolutionKey(q *Queryable, directive SortDirective) string {
	tables := lo.Map(q.Tables(), func(t *Table, _ int) string {
		return strings.ToLower(t.Name())
	})
	sort.Strings(tables)

	aliases := lo.Map(q.Aliases(), func(a string, _ int) string {
		return strings.ToLower(a)
	})
	sort.Strings(aliases)

	segments := []string{
		strings.Join(tables, "\x1f"),
		strings.Join(aliases, "\x1f"),
		strings.ToLower(directive.Table),
		strings.ToLower(directive.Field),
	}

	return strings.Join(segments, "\x1e")
}

func tableNames(tables []*Table) []string {
	return lo.Map(tables, func(t *Table, _ int) string {
		return t.Name()
	})
}

func columnNames(tables []*Table) []string {
	var ret []string
	for _, t := range tables {
		for _, c := range t.Columns() {
			ret = append(ret, c.Name())
		}
	}

	return lo.Uniq(ret)
}

func closestName(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, candidate := range dataSet {
		dist := levenshtein([]rune(strings.ToLower(candidate)), []rune(strings.ToLower(input)))
		if dist < minDist {
			minDist = dist
			closest = candidate
		}
	}

	return closest
}

func quoteJoin(names []string) string {
	quoted := lo.Map(names, func(n string, _ int) string {
		return "'" + n + "'"
	})

	return strings.Join(quoted, ", ")
}
