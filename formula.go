package dpll

import (
	"fmt"
	"strconv"
)

// A Lit is a single literal in a clause: a variable paired with a polarity.
// Variables are identified by positive integers starting at 1. The negated
// form of variable v satisfies a clause when v is assigned false.
type Lit struct {
	Var int
	Neg bool
}

// NewLit builds a literal from its signed-integer form, where a negative
// value denotes a negated variable. NewLit panics on 0, which is not a valid
// literal (DIMACS reserves it as a clause terminator).
func NewLit(i int) Lit {
	switch {
	case i > 0:
		return Lit{Var: i}
	case i < 0:
		return Lit{Var: -i, Neg: true}
	default:
		panic("dpll: literal 0 is not valid")
	}
}

// Not returns the literal with the opposite polarity.
func (l Lit) Not() Lit {
	l.Neg = !l.Neg
	return l
}

// Int returns the signed-integer form of the literal.
func (l Lit) Int() int {
	if l.Neg {
		return -l.Var
	}
	return l.Var
}

// Satisfied reports whether the literal is true when its variable is
// assigned value.
func (l Lit) Satisfied(value bool) bool {
	return value != l.Neg
}

func (l Lit) String() string {
	if l.Neg {
		return "¬x" + strconv.Itoa(l.Var)
	}
	return "x" + strconv.Itoa(l.Var)
}

// A Clause is the disjunction of its literals. A clause with no literals is
// falsified; a clause with exactly one literal is a unit clause, forcing its
// variable.
type Clause []Lit

func (c Clause) String() string {
	s := "("
	for i, l := range c {
		if i > 0 {
			s += " ∨ "
		}
		s += l.String()
	}
	return s + ")"
}

// A Formula is the conjunction of its clauses. Formulas are treated as
// immutable: Simplify and the solver never modify one in place.
type Formula []Clause

// FormulaFromInts builds a formula from clauses of signed-integer literals.
// It panics if any literal is 0.
func FormulaFromInts(clauses [][]int) Formula {
	f := make(Formula, len(clauses))
	for i, cls := range clauses {
		c := make(Clause, len(cls))
		for j, v := range cls {
			c[j] = NewLit(v)
		}
		f[i] = c
	}
	return f
}

// An Assignment maps variable identifiers to boolean values. It grows by one
// variable per solver step and is copied, never shared, across sibling
// branches of the search.
type Assignment map[int]bool

// Copy returns an independent copy of the assignment.
func (a Assignment) Copy() Assignment {
	b := make(Assignment, len(a)+1)
	for v, val := range a {
		b[v] = val
	}
	return b
}

// Model returns one signed literal per variable from 1 to numVars: positive
// if the variable is assigned true, negative otherwise. Variables the solver
// never had to assign default to false.
func (a Assignment) Model(numVars int) []int {
	model := make([]int, numVars)
	for v := 1; v <= numVars; v++ {
		if a[v] {
			model[v-1] = v
		} else {
			model[v-1] = -v
		}
	}
	return model
}

func (a Assignment) String() string {
	return fmt.Sprintf("%v", map[int]bool(a))
}

// Simplify reduces f under a. Any clause containing a literal satisfied by a
// is dropped entirely. In the remaining clauses, literals falsified by a are
// removed and unassigned literals are kept in their original relative order.
// Clauses that end up empty are kept: they mark the assignment as
// contradictory. Simplify is a pure function; neither input is modified.
func Simplify(f Formula, a Assignment) Formula {
	reduced := make(Formula, 0, len(f))
clauseLoop:
	for _, cls := range f {
		kept := make(Clause, 0, len(cls))
		for _, l := range cls {
			value, assigned := a[l.Var]
			if !assigned {
				kept = append(kept, l)
				continue
			}
			if l.Satisfied(value) {
				continue clauseLoop
			}
			// Literal is false and can be dropped.
		}
		reduced = append(reduced, kept)
	}
	return reduced
}
