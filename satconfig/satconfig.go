// Package satconfig decodes solver tuning parameters from a generic
// map, so a host can build a solver.Options from JSON, YAML or flags
// without the solver package depending on any serialization format.
package satconfig

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/opensat/cdcl/solver"
)

// Raw is the wire shape of solver.Options: plain fields mapstructure can
// decode into from a map[string]interface{}, with string names for the
// enum fields that solver.Options represents as small integer types.
type Raw struct {
	VarDecay        float64
	ClauseDecay     float64
	PhaseSaving     bool
	RestartStrategy string
	ReduceDB        bool
}

// Decode builds a solver.Options from a generic configuration map,
// starting from solver.DefaultOptions() for any field src omits.
func Decode(src map[string]interface{}) (solver.Options, error) {
	def := solver.DefaultOptions()
	raw := Raw{
		VarDecay:        def.VarDecay,
		ClauseDecay:     def.ClauseDecay,
		PhaseSaving:     def.PhaseSaving,
		RestartStrategy: restartName(def.RestartStrategy),
		ReduceDB:        def.ReduceDB,
	}
	if err := mapstructure.Decode(src, &raw); err != nil {
		return solver.Options{}, fmt.Errorf("satconfig: %w", err)
	}
	strategy, err := restartStrategy(raw.RestartStrategy)
	if err != nil {
		return solver.Options{}, err
	}
	return solver.Options{
		VarDecay:        raw.VarDecay,
		ClauseDecay:     raw.ClauseDecay,
		PhaseSaving:     raw.PhaseSaving,
		RestartStrategy: strategy,
		ReduceDB:        raw.ReduceDB,
	}, nil
}

func restartName(s solver.RestartStrategy) string {
	switch s {
	case solver.LubyRestart:
		return "luby"
	case solver.LBDRestart:
		return "lbd"
	default:
		return "lbd"
	}
}

func restartStrategy(name string) (solver.RestartStrategy, error) {
	switch name {
	case "luby":
		return solver.LubyRestart, nil
	case "lbd":
		return solver.LBDRestart, nil
	default:
		return 0, fmt.Errorf("satconfig: unknown restart strategy %q", name)
	}
}
