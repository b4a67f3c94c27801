package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wingcheck/wingcheck/pkg/cloth"
	"github.com/wingcheck/wingcheck/workbench/internal/session"
)

// clothPoint is one evaluated test point of the cloth command.
type clothPoint struct {
	Location string            `json:"location"`
	Porosity *cloth.Evaluation `json:"porosity,omitempty"`
	Tear     *cloth.Evaluation `json:"tear,omitempty"`
	Result   cloth.Result      `json:"result,omitempty"`
}

type clothReport struct {
	Points  []clothPoint  `json:"points"`
	Summary cloth.Summary `json:"summary"`
}

func newClothCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cloth <session.yaml>",
		Short: "Evaluate the session's porosity and tear test points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load(args[0])
			if err != nil {
				return err
			}
			rep := evaluateCloth(s.Cloth)
			return render(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error { return printCloth(w, rep) })
		},
	}
}

func evaluateCloth(points []cloth.Point) clothReport {
	rep := clothReport{Points: make([]clothPoint, 0, len(points)), Summary: cloth.Summarize(points)}
	for _, p := range points {
		cp := clothPoint{Location: p.Location}
		if p.PorosityValue != nil && p.PorosityMethod != "" {
			ev := cloth.EvaluatePorosity(*p.PorosityValue, p.PorosityMethod)
			cp.Porosity = &ev
		}
		if p.TearResistance != nil {
			ev := cloth.EvaluateTearResistance(*p.TearResistance)
			cp.Tear = &ev
		}
		if p.Result.Valid() {
			cp.Result = p.Result
		} else if r, ok := cloth.AutoResult(p); ok {
			cp.Result = r
		}
		rep.Points = append(rep.Points, cp)
	}
	return rep
}

func printCloth(w io.Writer, rep clothReport) error {
	if len(rep.Points) == 0 {
		fmt.Fprintln(w, "no cloth test points")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tPOROSITY\tTEAR\tRESULT")
	for _, p := range rep.Points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Location, label(p.Porosity), label(p.Tear), orDash(string(p.Result)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := rep.Summary
	_, err := fmt.Fprintf(w, "\n%d points: %d pass, %d warning, %d fail. overall %s\n",
		s.TotalTests, s.PassCount, s.WarningCount, s.FailCount, orDash(string(s.Overall)))
	return err
}

func label(ev *cloth.Evaluation) string {
	if ev == nil {
		return "-"
	}
	return ev.Label
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
