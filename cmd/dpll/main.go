// Command dpll is a SAT solver for DIMACS CNF files.
//
// It reads a single problem in the DIMACS CNF format and writes the result
// in the conventional way: either the first line is UNSAT, or the first line
// is SAT and the second line gives a complete assignment in the same format
// as an input clause. With --format=table the assignment is instead listed
// one variable per row.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/dpll"
)

var (
	verbose   bool
	debugDump bool
	showStats bool
	format    string
)

func main() {
	cmd := &cobra.Command{
		Use:           "dpll <input.cnf>",
		Short:         "dpll decides satisfiability of a DIMACS CNF formula",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace every propagation and branching step")
	cmd.Flags().BoolVar(&debugDump, "debug", false, "dump the parsed problem to stderr before solving")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print search statistics to stderr after solving")
	cmd.Flags().StringVar(&format, "format", "literals", "assignment output format: literals or table")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if format != "literals" && format != "table" {
		return fmt.Errorf("unknown format %q", format)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	problem, err := dpll.ParseDIMACS(f)
	if err != nil {
		return fmt.Errorf("reading %s as DIMACS CNF: %w", args[0], err)
	}
	for _, w := range problem.Warnings {
		log.Warn(w)
	}
	if debugDump {
		pretty.Fprintf(os.Stderr, "% #v\n", problem)
	}

	solver := dpll.New(problem.Formula)
	if verbose {
		solver.Logger = log
	}
	assignment, ok := solver.Solve()
	if showStats {
		stats := solver.Stats()
		log.WithFields(logrus.Fields{
			"unit_props":    stats.UnitProps,
			"pure_literals": stats.PureLiterals,
			"decisions":     stats.Decisions,
			"max_depth":     stats.MaxDepth,
		}).Info("search finished")
	}

	if !ok {
		fmt.Println("UNSAT")
		return nil
	}
	fmt.Println("SAT")
	if format == "table" {
		return writeTable(assignment, problem.NumVars)
	}
	return dpll.WriteModel(os.Stdout, assignment, problem.NumVars)
}

func writeTable(a dpll.Assignment, numVars int) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for v := 1; v <= numVars; v++ {
		fmt.Fprintf(tw, "%d\t%t\n", v, a[v])
	}
	return tw.Flush()
}
