package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wingcheck/wingcheck/pkg/strength"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// evaluation is the evaluate command's output.
type evaluation struct {
	strength.Evaluation
	Material types.Material `json:"material"`
	Guidance string         `json:"guidance"`
}

func newEvaluateCmd(opts *options) *cobra.Command {
	var (
		measured, original float64
		manufacturer, spec string
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Judge a destructive line test against the as-new strength",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := strength.Evaluate(measured, original)
			if err != nil {
				return err
			}
			mat := strength.Classify(manufacturer, spec)
			out := evaluation{Evaluation: ev, Material: mat, Guidance: strength.Guidance(mat)}
			return render(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				fmt.Fprintf(w, "%s: %s\n", ev.Result, ev.Detail)
				fmt.Fprintf(w, "material: %s. %s\n", mat, out.Guidance)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&measured, "measured", 0, "measured breaking strength in daN")
	cmd.Flags().Float64Var(&original, "original", 0, "as-new rated strength in daN")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "line manufacturer, used for material classification")
	cmd.Flags().StringVar(&spec, "spec", "", "line specification text, used for material classification")
	_ = cmd.MarkFlagRequired("measured")
	_ = cmd.MarkFlagRequired("original")
	return cmd
}

func newDistributionCmd(opts *options) *cobra.Command {
	var (
		rows int
		load float64
	)
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Split the total flying load across the line rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dist, err := strength.LoadDistribution(rows, load)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, dist, func(w io.Writer) error {
				if len(dist) == 0 {
					fmt.Fprintf(w, "no load table for %d rows\n", rows)
					return nil
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ROW\tSHARE\tLOAD")
				for _, r := range dist {
					fmt.Fprintf(tw, "%s\t%.0f%%\t%.2f kg\n", r.Row, r.Percentage, r.LoadKg)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "number of line rows (2 to 4 have load tables)")
	cmd.Flags().Float64Var(&load, "load", 0, "total flying load in kg")
	_ = cmd.MarkFlagRequired("rows")
	_ = cmd.MarkFlagRequired("load")
	return cmd
}

func newLoadTestCmd(opts *options) *cobra.Command {
	var (
		in   strength.LoadTestInput
		row  string
		side string
	)
	cmd := &cobra.Command{
		Use:   "load-test",
		Short: "Compute the non-destructive test load for one line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Row = types.Row(row)
			in.Side = types.Side(side)
			res, err := strength.LoadTest(in)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, res.Breakdown)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&row, "row", "A", "line row")
	cmd.Flags().StringVar(&side, "side", string(types.SideLeft), "wing side")
	cmd.Flags().IntVar(&in.RowCount, "rows", 0, "number of line rows on the wing")
	cmd.Flags().Float64Var(&in.MaxWeightKg, "max-weight", 0, "maximum flying weight in kg")
	cmd.Flags().Float64Var(&in.StrengthNew, "strength", 0, "as-new line strength in daN")
	cmd.Flags().IntVar(&in.LinesInRow, "lines", 0, "number of lines in the row")
	for _, f := range []string{"rows", "max-weight", "strength", "lines"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <manufacturer> [spec...]",
		Short: "Classify a line material and print its testing guidance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mat := strength.Classify(args[0], strings.Join(args[1:], " "))
			out := map[string]string{"material": string(mat), "guidance": strength.Guidance(mat)}
			return render(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s\n", mat, out["guidance"])
				return err
			})
		},
	}
}
