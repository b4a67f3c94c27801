package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wingcheck/wingcheck/internal/logging"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// options are the persistent flags shared by every command.
type options struct {
	format   string
	logLevel string
	log      *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "workbench",
		Short:         "Paraglider line and cloth assessment for the workshop bench",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatYAML, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want text, yaml or json)", opts.format)
			}
			opts.log = logging.Must(logging.Config{Level: opts.logLevel, Format: "console", OutputPath: "stderr"})
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, yaml or json")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(
		newTrimCmd(opts),
		newEvaluateCmd(opts),
		newDistributionCmd(opts),
		newLoadTestCmd(opts),
		newClassifyCmd(opts),
		newClothCmd(opts),
	)
	return root
}

// render writes v in the selected format; text uses the command's own
// printer.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		// Round-trip through JSON so YAML keys match the json tags.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
