package explainer

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// FanStats summarizes call-graph connectivity across all analyzed functions.
type FanStats struct {
	Files       int
	Functions   int
	EntryPoints int
	MeanFanIn   float64
	MeanFanOut  float64
	MaxFanIn    int
	MaxFanOut   int
	MedianFanIn float64
}

// ComputeFanStats derives summary statistics from an analysis.
// A nil or empty analysis yields zero-valued stats.
func ComputeFanStats(analysis *Analysis) *FanStats {
	fs := &FanStats{}
	if analysis == nil || len(analysis.Results) == 0 {
		return fs
	}

	var fanIns, fanOuts stats.Float64Data
	for _, file := range analysis.Results {
		fs.Files++
		for _, fn := range file.Functions {
			fs.Functions++
			if fn.IsEntryPoint {
				fs.EntryPoints++
			}
			fanIns = append(fanIns, float64(fn.FanIn))
			fanOuts = append(fanOuts, float64(fn.FanOut))
			if fn.FanIn > fs.MaxFanIn {
				fs.MaxFanIn = fn.FanIn
			}
			if fn.FanOut > fs.MaxFanOut {
				fs.MaxFanOut = fn.FanOut
			}
		}
	}

	if len(fanIns) == 0 {
		return fs
	}

	// Mean and median cannot fail on non-empty input
	fs.MeanFanIn, _ = stats.Mean(fanIns)
	fs.MeanFanOut, _ = stats.Mean(fanOuts)
	fs.MedianFanIn, _ = stats.Median(fanIns)

	return fs
}

// RankedFunction pairs a function with the file it was found in.
type RankedFunction struct {
	File     string
	Function FunctionInfo
}

// Connectivity is the combined fan-in and fan-out of the function.
func (r *RankedFunction) Connectivity() int {
	return r.Function.FanIn + r.Function.FanOut
}

// TopFunctions returns the n most connected functions across the analysis,
// sorted by combined fan-in and fan-out in descending order.
func TopFunctions(analysis *Analysis, n int) []RankedFunction {
	if analysis == nil || n <= 0 {
		return nil
	}

	ranked := make([]RankedFunction, 0, analysis.FunctionCount())
	for _, file := range analysis.Results {
		for _, fn := range file.Functions {
			ranked = append(ranked, RankedFunction{File: file.File, Function: fn})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Connectivity() > ranked[j].Connectivity()
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
