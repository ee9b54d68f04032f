package gopage

import (
	"fmt"
	"strings"
)

// Direction defines the sort direction for a single ordering key.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

// ParseDirection matches a raw string against {ASC, DESC} case-insensitively.
func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(raw)))
	if !d.Valid() {
		return "", newErrorf(ErrorKindInvalidOrderDirection, "'%s'", raw)
	}

	return d, nil
}

// SortDirective is one (optional table, field, direction) instruction
// controlling a single ordering key. Order within a directive list is
// significant: the first directive is the primary sort key.
type SortDirective struct {
	// Table is an optional qualifier restricting the field lookup to one of
	// the query's target tables. Matched case-insensitively.
	Table string `json:"table,omitempty"`
	// Field is the column or expression-alias name. Matched case-insensitively.
	Field string `json:"field"`
	// Direction of the ordering key. Defaults to ASC when parsed from a token
	// without a direction segment.
	Direction Direction `json:"direction"`
}

// String formats the directive back into its token form
// "[table.]field,DIRECTION".
func (d SortDirective) String() string {
	if d.Table != "" {
		return fmt.Sprintf("%s.%s,%s", d.Table, d.Field, d.Direction)
	}

	return fmt.Sprintf("%s,%s", d.Field, d.Direction)
}

// ParseSortDirectives builds SortDirectives from raw tokens of the form
// "[table.]field[,direction]". It fails fast: the first bad token aborts
// parsing and nothing is returned. Result order equals input order.
//
// An empty input yields nil, not an error.
func ParseSortDirectives(tokens []string) ([]SortDirective, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	ret := make([]SortDirective, 0, len(tokens))
	for _, token := range tokens {
		directive, err := parseSortToken(token)
		if err != nil {
			return nil, err
		}

		ret = append(ret, directive)
	}

	return ret, nil
}

func parseSortToken(token string) (SortDirective, error) {
	if strings.TrimSpace(token) == "" {
		return SortDirective{}, newError(ErrorKindMissingSortDirective, "empty sort token")
	}

	fieldRef, rawDirection, hasDirection := strings.Cut(token, ",")

	directive := SortDirective{Direction: DirectionASC}
	if table, field, qualified := strings.Cut(fieldRef, "."); qualified {
		directive.Table = strings.TrimSpace(table)
		directive.Field = strings.TrimSpace(field)
	} else {
		directive.Field = strings.TrimSpace(fieldRef)
	}

	if directive.Field == "" {
		return SortDirective{}, newErrorf(ErrorKindMissingSortDirective, "no field name in token '%s'", token)
	}

	if hasDirection {
		parsed, err := ParseDirection(rawDirection)
		if err != nil {
			return SortDirective{}, err
		}
		directive.Direction = parsed
	}

	return directive, nil
}

// FormatSortDirectives renders directives back to their token form, preserving
// order. Useful for echoing the applied sort to clients.
func FormatSortDirectives(directives []SortDirective) []string {
	if len(directives) == 0 {
		return nil
	}

	ret := make([]string, 0, len(directives))
	for _, d := range directives {
		ret = append(ret, d.String())
	}

	return ret
}
