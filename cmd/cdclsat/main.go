// Command cdclsat reads a DIMACS CNF file and reports whether it is
// satisfiable, printing the model when it is. Solve statistics are logged
// only with --verbose; without it, none are shown.
package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opensat/cdcl/dimacs"
	"github.com/opensat/cdcl/satconfig"
	"github.com/opensat/cdcl/solver"
)

var (
	verbose         bool
	restartStrategy string
	varDecay        float64
	clauseDecay     float64
	reduceDB        bool
)

var rootCmd = &cobra.Command{
	Use:   "cdclsat [flags] file.cnf",
	Short: "Solve a DIMACS CNF instance with a CDCL SAT solver",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solve progress")
	rootCmd.PersistentFlags().StringVar(&restartStrategy, "restart", "lbd", "restart strategy: lbd or luby")
	rootCmd.PersistentFlags().Float64Var(&varDecay, "decay-var", 0.95, "variable activity decay")
	rootCmd.PersistentFlags().Float64Var(&clauseDecay, "decay-clause", 0.999, "clause activity decay")
	rootCmd.PersistentFlags().BoolVar(&reduceDB, "reduce-db", true, "enable learned-clause database reduction")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	if !verbose {
		log.SetLevel(logrus.WarnLevel)
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cdclsat: %w", err)
	}
	defer f.Close()

	pb, err := dimacs.Parse(f)
	if err != nil {
		return fmt.Errorf("cdclsat: could not parse %q: %w", path, err)
	}

	opts, err := satconfig.Decode(map[string]interface{}{
		"VarDecay":        varDecay,
		"ClauseDecay":     clauseDecay,
		"RestartStrategy": restartStrategy,
		"ReduceDB":        reduceDB,
	})
	if err != nil {
		return fmt.Errorf("cdclsat: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":      path,
		"nbVars":    pb.NbVars,
		"nbClauses": len(pb.Clauses),
	}).Info("starting solve")

	s := solver.New(pb, opts)
	status := s.Check()

	log.WithFields(logrus.Fields{
		"decisions":    s.Stats.Decisions,
		"propagations": s.Stats.Propagations,
		"conflicts":    s.Stats.Conflicts,
		"learned":      s.Stats.Learned,
		"restarts":     s.Stats.Restarts,
	}).Info("solve finished")

	switch status {
	case solver.Sat:
		fmt.Println("SATISFIABLE")
		printModel(s)
	case solver.Unsat:
		fmt.Println("UNSATISFIABLE")
	}
	return nil
}

func printModel(s *solver.Solver) {
	model := s.Model()
	vars := make([]int, 0, s.NbVars())
	for v := 1; v <= s.NbVars(); v++ {
		vars = append(vars, v)
	}
	lits := lo.Map(vars, func(v int, _ int) int {
		if model[v] {
			return v
		}
		return -v
	})
	for _, l := range lits {
		fmt.Printf("%d ", l)
	}
	fmt.Println("0")
}
