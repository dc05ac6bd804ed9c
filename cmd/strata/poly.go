package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/ChinaQuants/Strata/poly"
	"github.com/ChinaQuants/Strata/store"
)

var (
	polyInput string
	polyAt    string
	polyFrom  float64
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a piecewise polynomial at the given points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPolyOp("eval", poly.Evaluate)
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Evaluate the first derivative at the given points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPolyOp("diff", poly.Differentiate)
	},
}

var diff2Cmd = &cobra.Command{
	Use:   "diff2",
	Short: "Evaluate the second derivative at the given points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPolyOp("diff2", poly.DifferentiateTwice)
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Integrate from --from to each of the given points",
	RunE:  runIntegrate,
}

func init() {
	for _, c := range []*cobra.Command{evalCmd, diffCmd, diff2Cmd, integrateCmd} {
		c.Flags().StringVar(&polyInput, "input", "", "Piecewise polynomial JSON file (required)")
		c.Flags().StringVar(&polyAt, "at", "", "Query points, comma separated (required)")
		c.MarkFlagRequired("input")
		c.MarkFlagRequired("at")
		rootCmd.AddCommand(c)
	}
	integrateCmd.Flags().Float64Var(&polyFrom, "from", 0, "Lower bound of the integral")
}

func runPolyOp(name string, op func(*poly.PiecewisePolynomial, []float64) (*mat.Dense, error)) error {
	pp, xs, err := loadPolyArgs()
	if err != nil {
		return err
	}

	values, err := op(pp, xs)
	if err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}

	for j, x := range xs {
		fmt.Printf("x = %-12g", x)
		for d := 0; d < pp.Dim(); d++ {
			fmt.Printf(" %.12g", values.At(d, j))
		}
		fmt.Println()
	}
	return nil
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	pp, xs, err := loadPolyArgs()
	if err != nil {
		return err
	}

	values, err := poly.Integrate(pp, polyFrom, xs)
	if err != nil {
		return fmt.Errorf("integrate failed: %w", err)
	}

	for j, x := range xs {
		fmt.Printf("x = %-12g %.12g\n", x, values.AtVec(j))
	}
	return nil
}

func loadPolyArgs() (*poly.PiecewisePolynomial, []float64, error) {
	pp, err := store.LoadPolynomial(polyInput)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load polynomial: %w", err)
	}
	xs, err := parseFloats(polyAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse query points: %w", err)
	}
	return pp, xs, nil
}
