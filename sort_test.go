package gopage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Direction_Valid(t *testing.T) {
	tests := []struct {
		name  string
		in    Direction
		valid bool
	}{
		{"ASC valid", DirectionASC, true},
		{"DESC valid", DirectionDESC, true},
		{"lowercase invalid", Direction("asc"), false},
		{"garbage invalid", Direction("sideways"), false},
		{"empty invalid", Direction(""), false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
	}
}

func Test_ParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Direction
		wantErr bool
	}{
		{"upper asc", "ASC", DirectionASC, false},
		{"lower desc", "desc", DirectionDESC, false},
		{"mixed case", "DeSc", DirectionDESC, false},
		{"padded", " asc ", DirectionASC, false},
		{"unknown", "descending", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("%s: err=%v wantErr=%v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOrderDirection) {
					t.Errorf("%s: err=%v, want ErrInvalidOrderDirection", tt.name, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.want)
			}
		})
	}
}

func Test_ParseSortDirectives(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []SortDirective
		wantErr error
	}{
		{
			name: "empty input yields nil",
			in:   nil,
			want: nil,
		},
		{
			name: "field only defaults to ASC",
			in:   []string{"name"},
			want: []SortDirective{{Field: "name", Direction: DirectionASC}},
		},
		{
			name: "field with desc",
			in:   []string{"rate,desc"},
			want: []SortDirective{{Field: "rate", Direction: DirectionDESC}},
		},
		{
			name: "qualified field without direction",
			in:   []string{"users.created_at"},
			want: []SortDirective{{Table: "users", Field: "created_at", Direction: DirectionASC}},
		},
		{
			name: "qualifier splits on first dot only",
			in:   []string{"users.address.city"},
			want: []SortDirective{{Table: "users", Field: "address.city", Direction: DirectionASC}},
		},
		{
			name: "order preserved",
			in:   []string{"type,asc", "rate,desc"},
			want: []SortDirective{
				{Field: "type", Direction: DirectionASC},
				{Field: "rate", Direction: DirectionDESC},
			},
		},
		{
			name:    "blank token fails",
			in:      []string{"  "},
			wantErr: ErrMissingSortDirective,
		},
		{
			name:    "blank field with direction fails",
			in:      []string{",desc"},
			wantErr: ErrMissingSortDirective,
		},
		{
			name:    "bad direction fails",
			in:      []string{"name,upwards"},
			wantErr: ErrInvalidOrderDirection,
		},
		{
			name:    "fail-fast returns nothing",
			in:      []string{"name,asc", "rate,sideways"},
			wantErr: ErrInvalidOrderDirection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortDirectives(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseSortDirectives_BadDirectionKeepsRaw(t *testing.T) {
	_, err := ParseSortDirectives([]string{"name,upwards"})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrorKindInvalidOrderDirection, perr.Kind)
	require.Contains(t, perr.Reason, "upwards")
}

func Test_FormatSortDirectives_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"desc round-trips upper", "rate,desc", "rate,DESC"},
		{"qualified defaults to ASC", "users.name", "users.name,ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseSortDirectives([]string{tt.token})
			require.NoError(t, err)

			got := FormatSortDirectives(parsed)
			require.Equal(t, []string{tt.want}, got)
		})
	}
}
