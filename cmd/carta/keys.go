package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/carta/internal/domain/engine"
	"github.com/okian/carta/internal/domain/model"
	"github.com/spf13/cobra"
)

func newKeysCmd(c *cli) *cobra.Command {
	var (
		chartPath string
		chartType string
		missing   bool
	)
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show every extracted event with its query, license state and candidate keys",
		Long: `Lists the decisions the engine takes for a chart: the query each event is
licensed with, the matching step, the knowledge base keys tried in order and
the key that resolved, if any. Use it to find gaps in the knowledge bases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct, ok := model.ParseChartType(chartType)
			if !ok {
				return fmt.Errorf("unknown chart type %q", chartType)
			}
			chart, err := readChart(chartPath)
			if err != nil {
				return err
			}
			svc, err := c.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			decisions, err := svc.Plan(cmd.Context(), chart, ct, nil)
			if err != nil {
				return err
			}
			return printDecisions(cmd.OutOrStdout(), decisions, missing)
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "chart JSON file (- for stdin)")
	cmd.Flags().StringVar(&chartType, "type", string(model.Tropical), "chart type: tropical or draco")
	cmd.Flags().BoolVar(&missing, "missing", false, "only show events that are not included")
	_ = cmd.MarkFlagRequired("chart")
	return cmd
}

func printDecisions(w io.Writer, decisions []engine.Decision, onlyMissing bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tBASE\tQUERY\tSTEP\tINCLUDED\tKEY\tCANDIDATES")
	for _, d := range decisions {
		if onlyMissing && d.Included() {
			continue
		}
		step := d.Step.String()
		if d.Suppressed {
			step = "suppressed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\t%s\n",
			d.Event.Kind, d.Base, dash(d.Query), step, d.Included(), dash(d.Key), strings.Join(d.Candidates, " | "))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
