package dpll

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDIMACS(t *testing.T) {
	for _, tt := range []struct {
		text     string
		numVars  int
		want     [][]int
		warnings int
	}{
		{
			text: `
c Trivial
p cnf 1 1
1 0
`,
			numVars: 1,
			want:    [][]int{{1}},
		},
		{
			text: `
c Comments anywhere
p cnf 3 2
1 -3 0
c in the middle too
-2 3 0
`,
			numVars: 3,
			want:    [][]int{{1, -3}, {-2, 3}},
		},
		{
			text: `
c Empty clause
p cnf 2 2
1 2 0
0
`,
			numVars: 2,
			want:    [][]int{{1, 2}, {}},
		},
		{
			text: `
c Missing problem line
1 2 0
-2 0
`,
			numVars: 2,
			want:    [][]int{{1, 2}, {-2}},
		},
		{
			text: `
c Clause count mismatch is a warning
p cnf 2 5
1 2 0
`,
			numVars:  2,
			want:     [][]int{{1, 2}},
			warnings: 1,
		},
		{
			text: `
c Var above declared count is a warning
p cnf 1 2
1 0
1 -2 0
`,
			numVars:  2,
			want:     [][]int{{1}, {1, -2}},
			warnings: 1,
		},
	} {
		text := strings.TrimSpace(tt.text)
		name := strings.TrimPrefix(text[:strings.IndexByte(text, '\n')], "c ")
		t.Run(name, func(t *testing.T) {
			got, err := ParseDIMACS(strings.NewReader(text))
			if err != nil {
				t.Fatal(err)
			}
			if got.NumVars != tt.numVars {
				t.Errorf("NumVars = %d; want %d", got.NumVars, tt.numVars)
			}
			if diff := cmp.Diff(got.Formula, FormulaFromInts(tt.want), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseDIMACS (-got, +want):\n%s", diff)
			}
			if len(got.Warnings) != tt.warnings {
				t.Errorf("got %d warnings %q; want %d", len(got.Warnings), got.Warnings, tt.warnings)
			}
		})
	}
}

func TestParseDIMACSErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		text string
		want string
	}{
		{
			name: "problem line with wrong token count",
			text: "p cnf 3\n1 0\n",
			want: "malformed problem line",
		},
		{
			name: "problem line with wrong format tag",
			text: "p sat 3 1\n1 0\n",
			want: "only cnf supported",
		},
		{
			name: "problem line with non-numeric count",
			text: "p cnf three 1\n1 0\n",
			want: "malformed #vars",
		},
		{
			name: "negative clause count",
			text: "p cnf 3 -1\n1 0\n",
			want: "invalid #clauses",
		},
		{
			name: "duplicate problem line",
			text: "p cnf 1 1\np cnf 1 1\n1 0\n",
			want: "multiple problem lines",
		},
		{
			name: "clause missing terminator",
			text: "p cnf 2 1\n1 2\n",
			want: "does not end in 0",
		},
		{
			name: "tokens after terminator",
			text: "p cnf 2 1\n1 0 2 0\n",
			want: "does not end in 0",
		},
		{
			name: "non-numeric literal",
			text: "p cnf 2 1\n1 x 0\n",
			want: "invalid literal",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDIMACS(strings.NewReader(tt.text))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteDIMACSRoundTrip(t *testing.T) {
	p := &Problem{
		NumVars: 4,
		Formula: FormulaFromInts([][]int{{1, 3, -4}, {4}, {2, -3}}),
	}
	var b strings.Builder
	require.NoError(t, WriteDIMACS(&b, p))

	got, err := ParseDIMACS(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, p.NumVars, got.NumVars)
	assert.Empty(t, got.Warnings)
	if diff := cmp.Diff(got.Formula, p.Formula); diff != "" {
		t.Errorf("round trip (-got, +want):\n%s", diff)
	}
}

func TestWriteModel(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteModel(&b, Assignment{1: true, 3: true}, 4))
	assert.Equal(t, "1 -2 3 -4 0\n", b.String())
}
