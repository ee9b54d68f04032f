package gopage

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// ColumnDef declares one column of a Table.
type ColumnDef struct {
	// Name is the logical field name sort directives refer to.
	Name string
	// Expr is the SQL reference used in ORDER BY. Defaults to
	// "<table>.<name>" when empty.
	Expr string
}

// Column is a registered column handle owned by exactly one Table.
type Column struct {
	name  string
	expr  string
	table *Table
}

// Name returns the logical field name.
func (c *Column) Name() string {
	return c.name
}

// Table returns the owning table.
func (c *Column) Table() *Table {
	return c.table
}

// SQL returns the reference used in ORDER BY clauses, e.g. "users.created_at".
func (c *Column) SQL() string {
	return c.expr
}

// Table holds the declared columns of one query target table, with a
// name→column lookup map built once at construction. Resolution against a
// table is a map lookup, never runtime introspection.
type Table struct {
	name    string
	columns []*Column
	byName  map[string]*Column
}

// NewTable declares a table and its orderable columns. Column names are
// looked up case-insensitively; duplicates (up to case) are rejected.
func NewTable(name string, columns ...ColumnDef) (*Table, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, fmt.Errorf("table '%s': %w", name, err)
	}

	t := &Table{
		name:   name,
		byName: make(map[string]*Column, len(columns)),
	}

	for _, def := range columns {
		if err := validateIdentifier(def.Name); err != nil {
			return nil, fmt.Errorf("table '%s' column '%s': %w", name, def.Name, err)
		}

		expr := def.Expr
		if expr == "" {
			expr = fmt.Sprintf("%s.%s", name, def.Name)
		} else if err := validateIdentifier(expr); err != nil {
			return nil, fmt.Errorf("table '%s' column '%s': %w", name, def.Name, err)
		}

		key := strings.ToLower(def.Name)
		if _, exists := t.byName[key]; exists {
			return nil, fmt.Errorf("table '%s': duplicate column '%s'", name, def.Name)
		}

		column := &Column{name: def.Name, expr: expr, table: t}
		t.columns = append(t.columns, column)
		t.byName[key] = column
	}

	return t, nil
}

// MustTable is NewTable for plain column names; panics on invalid input.
// Intended for static table declarations:
//
//	var usersTable = gopage.MustTable("users", "id", "name", "created_at")
func MustTable(name string, columnNames ...string) *Table {
	defs := lo.Map(columnNames, func(n string, _ int) ColumnDef {
		return ColumnDef{Name: n}
	})

	t, err := NewTable(name, defs...)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the declared table name.
func (t *Table) Name() string {
	return t.name
}

// Column looks up a declared column by field name, case-insensitively.
func (t *Table) Column(field string) (*Column, bool) {
	c, ok := t.byName[strings.ToLower(field)]
	return c, ok
}

// Columns returns the declared columns in declaration order.
func (t *Table) Columns() []*Column {
	return t.columns
}

func validateIdentifier(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("blank identifier")
	}

	// Guard against SQL injection by restricting allowed characters.
	if !lo.Every(_availableColumnNameSymbols, []rune(s)) {
		return fmt.Errorf("identifier contains forbidden symbols '%s'", s)
	}

	return nil
}

// Queryable wraps a scoped *gorm.DB together with the metadata the resolver
// needs: the query's target tables and the expression aliases it selects.
// The wrapped db must already carry its FROM/JOIN/WHERE scope; gopage only
// appends ordering and window clauses to it.
type Queryable struct {
	db      *gorm.DB
	tables  []*Table
	aliases []string
	inner   *Queryable
}

// NewQueryable wraps a scoped gorm query with its target table metadata.
func NewQueryable(db *gorm.DB, tables ...*Table) *Queryable {
	return &Queryable{
		db:     db,
		tables: tables,
	}
}

// WithAliases declares expression aliases selected by this query (computed
// fields, aggregate results, union projections).
func (q *Queryable) WithAliases(aliases ...string) *Queryable {
	if q == nil {
		q = new(Queryable)
	}

	q.aliases = append(q.aliases, aliases...)

	return q
}

// WithSubquery surfaces the aliases of a wrapped/aliased sub-query (e.g. a
// set-union) one level up, so directives can order by them.
func (q *Queryable) WithSubquery(inner *Queryable) *Queryable {
	if q == nil {
		q = new(Queryable)
	}

	q.inner = inner

	return q
}

// DB returns the wrapped gorm query as-is.
func (q *Queryable) DB() *gorm.DB {
	if q == nil {
		return nil
	}

	return q.db
}

// Tables returns the distinct target tables of the query.
func (q *Queryable) Tables() []*Table {
	if q == nil {
		return nil
	}

	return lo.Uniq(q.tables)
}

// Aliases returns the expression aliases visible to the query: its own plus
// those of a wrapped sub-query, one level deep. Exact duplicates collapse.
func (q *Queryable) Aliases() []string {
	if q == nil {
		return nil
	}

	ret := q.aliases
	if q.inner != nil {
		ret = append(append([]string(nil), ret...), q.inner.aliases...)
	}

	return lo.Uniq(ret)
}

// clone returns a Queryable over a fresh gorm session sharing the same scope,
// so ordering/window mutations do not leak into the original. Metadata slices
// are copied: WithAliases appends, and a shared backing array would let a
// clone's append clobber the original's.
func (q *Queryable) clone() *Queryable {
	return &Queryable{
		db:      q.db.Session(&gorm.Session{}),
		tables:  append([]*Table(nil), q.tables...),
		aliases: append([]string(nil), q.aliases...),
		inner:   q.inner,
	}
}

// order appends one ordering instruction. Directive order is preserved by
// gorm's stable multi-key ORDER BY semantics.
func (q *Queryable) order(expr string, direction Direction) {
	q.db = q.db.Order(fmt.Sprintf("%s %s", expr, direction))
}

// window applies the page window. A non-positive limit leaves the page
// unbounded; the offset still applies, so position-addressed requests start
// at the requested row. Selection, filters and ordering are left untouched.
func (q *Queryable) window(limit, offset int) {
	if limit > 0 {
		q.db = q.db.Limit(limit)
	}
	if offset > 0 {
		q.db = q.db.Offset(offset)
	}
}

// count returns the total row count of the unpaginated, unsorted result set.
func (q *Queryable) count() (int64, error) {
	var n int64
	err := q.db.Session(&gorm.Session{}).Count(&n).Error

	return n, err
}

// distinctCount returns the number of distinct values of the given column.
func (q *Queryable) distinctCount(column string) (int64, error) {
	var n int64
	err := q.db.Session(&gorm.Session{}).Distinct(column).Count(&n).Error

	return n, err
}
