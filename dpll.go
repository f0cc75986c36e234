// Package dpll decides satisfiability of boolean formulas in conjunctive
// normal form using the classical DPLL (Davis–Putnam–Logemann–Loveland)
// procedure: simplification under a growing partial assignment, unit
// propagation, pure-literal elimination, and recursive case-splitting with
// chronological backtracking. There is no clause learning and no watched-
// literal indexing; this is the textbook algorithm, kept small and
// deterministic.
package dpll

import (
	"github.com/sirupsen/logrus"
)

// A Solver runs the DPLL search over one formula. The zero value is not
// usable; construct with New.
type Solver struct {
	// Logger, when non-nil, receives a debug-level trace of every
	// propagation and branching step.
	Logger logrus.FieldLogger

	formula Formula
	stats   Stats
}

// Stats counts the work done by one Solve call.
type Stats struct {
	UnitProps    int64 // assignments forced by unit clauses
	PureLiterals int64 // assignments forced by pure literals
	Decisions    int64 // branching guesses (each counted once, not per polarity)
	MaxDepth     int   // deepest recursion reached
}

// New returns a solver for f. The formula is only read, never modified.
func New(f Formula) *Solver {
	return &Solver{formula: f}
}

// Solve reports whether the solver's formula is satisfiable and, if it is,
// returns an assignment under which every clause holds. Variables absent
// from the assignment were never constrained; any value (conventionally
// false) satisfies the formula. UNSAT is the ok=false return, not an error:
// the search has no failure path.
func (s *Solver) Solve() (a Assignment, ok bool) {
	s.stats = Stats{}
	return s.search(Assignment{}, 0)
}

// Stats returns counters from the most recent Solve call.
func (s *Solver) Stats() Stats { return s.stats }

// Solve is a convenience for New(f).Solve().
func Solve(f Formula) (Assignment, bool) {
	return New(f).Solve()
}

// search is one recursive step of DPLL. The assignment is the sole threaded
// state: each call re-simplifies the original formula under the cumulative
// assignment, and every extension operates on its own copy, so a failed
// branch cannot leak assignments into its sibling. Each call assigns at
// least one more variable, bounding the recursion depth by the variable
// count.
func (s *Solver) search(a Assignment, depth int) (Assignment, bool) {
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}
	reduced := Simplify(s.formula, a)

	if len(reduced) == 0 {
		// Every original clause was individually satisfied.
		return a, true
	}
	for _, cls := range reduced {
		if len(cls) == 0 {
			s.trace(depth, logrus.Fields{}, "conflict: empty clause")
			return nil, false
		}
	}

	// Unit propagation: the first unit clause in scan order forces its
	// variable.
	for _, cls := range reduced {
		if len(cls) != 1 {
			continue
		}
		l := cls[0]
		s.stats.UnitProps++
		s.trace(depth, logrus.Fields{"var": l.Var, "value": !l.Neg}, "unit propagation")
		return s.search(extend(a, l.Var, !l.Neg), depth+1)
	}

	// Pure-literal elimination: a variable whose occurrences all share one
	// polarity can be assigned to satisfy them all. First such variable in
	// first-occurrence order wins.
	if v, value, found := findPure(reduced); found {
		s.stats.PureLiterals++
		s.trace(depth, logrus.Fields{"var": v, "value": value}, "pure literal")
		return s.search(extend(a, v, value), depth+1)
	}

	// Branch on the most frequent unassigned variable, trying true first.
	v := chooseVariable(reduced, a)
	s.stats.Decisions++
	for _, value := range [2]bool{true, false} {
		s.trace(depth, logrus.Fields{"var": v, "value": value}, "branch")
		if result, ok := s.search(extend(a, v, value), depth+1); ok {
			return result, true
		}
	}
	return nil, false
}

// extend returns a copy of a with v assigned value.
func extend(a Assignment, v int, value bool) Assignment {
	b := a.Copy()
	b[v] = value
	return b
}

// findPure scans f for a pure variable: one appearing with only a single
// polarity. All variables in a simplified formula are unassigned, so no
// assignment check is needed. The returned value is the polarity that
// satisfies every occurrence.
func findPure(f Formula) (v int, value bool, found bool) {
	const (
		seenPos = 1 << 0
		seenNeg = 1 << 1
	)
	polarity := make(map[int]uint8)
	var order []int
	for _, cls := range f {
		for _, l := range cls {
			if _, ok := polarity[l.Var]; !ok {
				order = append(order, l.Var)
			}
			if l.Neg {
				polarity[l.Var] |= seenNeg
			} else {
				polarity[l.Var] |= seenPos
			}
		}
	}
	for _, v := range order {
		switch polarity[v] {
		case seenPos:
			return v, true, true
		case seenNeg:
			return v, false, true
		}
	}
	return 0, false, false
}

// chooseVariable picks the unassigned variable occurring most often in f.
// Ties go to the variable encountered first (strict greater-than
// replacement). If no unassigned variable occurs, it falls back to variable
// 1; that case is unreachable when conflict detection runs before branching,
// since a non-empty clause surviving simplification always holds an
// unassigned literal.
func chooseVariable(f Formula, a Assignment) int {
	freq := make(map[int]int)
	var order []int
	for _, cls := range f {
		for _, l := range cls {
			if _, assigned := a[l.Var]; assigned {
				continue
			}
			if _, ok := freq[l.Var]; !ok {
				order = append(order, l.Var)
			}
			freq[l.Var]++
		}
	}
	best, bestCount := 1, 0
	for _, v := range order {
		if freq[v] > bestCount {
			best, bestCount = v, freq[v]
		}
	}
	return best
}

func (s *Solver) trace(depth int, fields logrus.Fields, msg string) {
	if s.Logger == nil {
		return
	}
	fields["depth"] = depth
	s.Logger.WithFields(fields).Debug(msg)
}
