package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/census-approx/pkg/census"
)

// parseEstimate parses a "value,moe" argument into an Estimate.
func parseEstimate(arg string) (census.Estimate, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return census.Estimate{}, eris.Errorf("input: expected value,moe but got %q", arg)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return census.Estimate{}, eris.Wrapf(err, "input: bad value in %q", arg)
	}
	moe, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return census.Estimate{}, eris.Wrapf(err, "input: bad moe in %q", arg)
	}
	return census.Estimate{Value: value, MOE: moe}, nil
}

func parseEstimates(args []string) ([]census.Estimate, error) {
	estimates := make([]census.Estimate, 0, len(args))
	for _, arg := range args {
		e, err := parseEstimate(arg)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, nil
}

// binRow is the YAML shape of one bin. Omitted min/max mark open bounds
// and an omitted moe marks an exact count.
type binRow struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
	N   float64  `yaml:"n"`
	MOE *float64 `yaml:"moe"`
}

// loadBins reads a binned dataset from a YAML file: a list of
// {min, max, n, moe} rows ordered by min.
func loadBins(path string) ([]census.Bin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}

	var rows []binRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "input: parse %s", path)
	}

	bins := make([]census.Bin, len(rows))
	for i, r := range rows {
		bins[i] = census.Bin{
			Min: orNaN(r.Min),
			Max: orNaN(r.Max),
			N:   r.N,
			MOE: orNaN(r.MOE),
		}
	}
	return bins, nil
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// printEstimate writes a derived estimate to stdout.
func printEstimate(e census.Estimate) {
	fmt.Printf("estimate: %v\nmoe: %v\n", e.Value, e.MOE)
}

// printResult writes a derived result, rendering a missing margin as none.
func printResult(r census.Result) {
	fmt.Printf("estimate: %v\n", r.Value)
	if r.HasMOE() {
		fmt.Printf("moe: %v\n", r.MOE)
	} else {
		fmt.Println("moe: none")
	}
}
