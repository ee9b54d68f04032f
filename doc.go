// Package gopage provides page- and position-based pagination primitives
// for GORM, with multi-field, multi-table sort resolution.
//
// Overview
//
// gopage turns opaque sort directives ("field,direction" or
// "table.field,direction") into unambiguous ORDER BY instructions against the
// tables and expression aliases of a query, and computes page metadata
// (page count, overflow, next/previous flags) from a total count and a
// requested window.
//
// Key concepts
//   - PageRequest: immutable value describing the requested page/position,
//     size and ordered sort directives.
//   - Table/Queryable: schema metadata plus a GORM query wrapper the
//     resolver works against.
//   - Resolver: maps each SortDirective to exactly one orderable reference
//     (a table column or an expression alias), caching resolutions and
//     failing hard on ambiguity.
//   - Paginate/PaginateGrouped: orchestrate count, sort, window, row mapping
//     and page construction for flat and parent-with-children query shapes.
//
// See README for examples and usage details.
package gopage
