package dpll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Problem is a parsed DIMACS CNF instance. Warnings records recoverable
// oddities in the input (clause-count mismatch, variables above the declared
// count); they never prevent solving.
type Problem struct {
	NumVars  int
	Formula  Formula
	Warnings []string
}

// ParseDIMACS parses text in the DIMACS CNF format: comment lines start with
// 'c', a problem line reads "p cnf <vars> <clauses>", and every other
// non-blank line lists the signed integer literals of one clause, terminated
// by a 0 sentinel.
//
// A malformed problem line or a clause line that does not end in 0 is an
// error. A mismatch between the declared and actual clause count is not: it
// is recorded as a warning, as is a variable above the declared count (which
// raises NumVars). For convenience, comments may appear anywhere and the
// problem line may be missing, in which case NumVars is inferred from the
// largest variable used.
func ParseDIMACS(r io.Reader) (*Problem, error) {
	p := &Problem{}
	declaredClauses := -1
	maxVar := 0
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line[0] == 'p' {
			if declaredClauses >= 0 {
				return nil, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed problem line %q", line)
			}
			if fields[1] != "cnf" {
				return nil, fmt.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			p.NumVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("malformed #vars in problem line: %s", err)
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("malformed #clauses in problem line: %s", err)
			}
			if p.NumVars < 0 {
				return nil, fmt.Errorf("invalid #vars %d", p.NumVars)
			}
			if declaredClauses < 0 {
				return nil, fmt.Errorf("invalid #clauses %d", declaredClauses)
			}
			continue
		}
		fields := strings.Fields(line)
		if fields[len(fields)-1] != "0" {
			return nil, fmt.Errorf("clause line %q does not end in 0", line)
		}
		var clause Clause
		for _, field := range fields[:len(fields)-1] {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid literal: %s", err)
			}
			if n == 0 {
				return nil, fmt.Errorf("clause line %q does not end in 0", line)
			}
			clause = append(clause, NewLit(n))
			if v := abs(n); v > maxVar {
				maxVar = v
			}
		}
		p.Formula = append(p.Formula, clause)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if maxVar > p.NumVars {
		if declaredClauses >= 0 {
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"formula contains var %d, above the declared %d vars", maxVar, p.NumVars))
		}
		p.NumVars = maxVar
	}
	if declaredClauses >= 0 && declaredClauses != len(p.Formula) {
		p.Warnings = append(p.Warnings, fmt.Sprintf(
			"problem line declares %d clauses, but there are %d", declaredClauses, len(p.Formula)))
	}
	return p, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// WriteDIMACS writes p in the DIMACS CNF format, one clause per line.
func WriteDIMACS(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", p.NumVars, len(p.Formula))
	for _, cls := range p.Formula {
		for _, l := range cls {
			fmt.Fprintf(bw, "%d ", l.Int())
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

// WriteModel writes a satisfying assignment as a single line of signed
// literals, one per variable from 1 to numVars, terminated by 0. Variables
// absent from a are reported false.
func WriteModel(w io.Writer, a Assignment, numVars int) error {
	var b strings.Builder
	for _, v := range a.Model(numVars) {
		fmt.Fprintf(&b, "%d ", v)
	}
	b.WriteString("0\n")
	_, err := io.WriteString(w, b.String())
	return err
}
