package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/workbench/internal/session"
)

func newTrimCmd(opts *options) *cobra.Command {
	var (
		watch         bool
		maxAdjustment float64
	)
	cmd := &cobra.Command{
		Use:   "trim <session.yaml>",
		Short: "Analyze line trim from a session file",
		Long: `Compares the session's measured lines against the references and prints
deviations, the wing shape, the pitch profile and suggested corrections.
With --watch the analysis is printed again every time the file is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			trimOpts := trim.Options{MaxAdjustmentMm: maxAdjustment}
			out := cmd.OutOrStdout()

			s, err := session.Load(path)
			if err != nil {
				return err
			}
			if err := runTrim(out, opts.format, s, trimOpts); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return session.Watch(ctx, path, opts.log, func(s *session.Session) {
				fmt.Fprintln(out)
				if err := runTrim(out, opts.format, s, trimOpts); err != nil {
					opts.log.Warn("trim: analysis failed", zap.String("path", path), zap.Error(err))
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the analysis whenever the session file is saved")
	cmd.Flags().Float64Var(&maxAdjustment, "max-adjustment", trim.DefaultMaxAdjustmentMm, "largest adjustment in mm suggested before asking for a re-measure")
	return cmd
}

func runTrim(w io.Writer, format string, s *session.Session, opts trim.Options) error {
	res, err := trim.Analyze(s.TrimInput(), opts)
	if err != nil {
		return err
	}
	return render(w, format, res, func(w io.Writer) error { return printTrim(w, s.Name, res) })
}

func printTrim(w io.Writer, name string, res trim.Result) error {
	if name != "" {
		fmt.Fprintln(w, name)
	}
	if res.Empty() {
		fmt.Fprintf(w, "not measured yet (tolerance ±%.0f mm)\n", res.ToleranceMm)
		return nil
	}

	fmt.Fprintf(w, "tolerance ±%.0f mm, %d of %d cells out of tolerance\n", res.ToleranceMm, res.OutOfTolerance, len(res.Cells))
	fmt.Fprintf(w, "shape:   %s. %s\n", res.Shape.Shape, res.Shape.Description)
	fmt.Fprintf(w, "profile: %s. %s\n", res.Profile.Profile, res.Profile.Details)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tLEFT\tRIGHT\tDIFF\tASYM\tSTATUS")
	for _, c := range res.Cells {
		status := "ok"
		switch {
		case !c.Complete:
			status = "incomplete"
		case c.OutOfTolerance:
			status = "OUT"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Cell,
			sideDev(c.Left), sideDev(c.Right), signed(c.DifferentialMm, c.Complete), signed(c.AsymmetryMm, c.Complete), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(res.Corrections) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "corrections:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range res.Corrections {
		loops := ""
		if c.Loops != nil {
			loops = fmt.Sprintf("%d× type %d (%.0f mm)", c.Loops.Loops, c.Loops.LoopType, c.Loops.ShorteningMm)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%+.1f mm\t%s\t%s\n", c.Cell, c.Side, c.Action, c.AdjustmentMm, loops, positions(c.Positions))
	}
	return tw.Flush()
}

func sideDev(s trim.SideDeviation) string {
	return signed(s.DeviationMm, s.Present)
}

func signed(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%+.1f", v)
}

func positions(p []int) string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = fmt.Sprint(n)
	}
	return "lines " + strings.Join(parts, ",")
}
