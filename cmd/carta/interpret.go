package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	service "github.com/okian/carta/internal/app"
	"github.com/okian/carta/internal/domain/model"
	"github.com/spf13/cobra"
)

func newInterpretCmd(c *cli) *cobra.Command {
	var (
		chartPath string
		chartType string
		gender    string
		vars      map[string]string
	)
	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Interpret a chart file and print the report as JSON",
		Args:  cobra.NoArgs,
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

			report, err := svc.Interpret(cmd.Context(), service.Request{
				Chart:     chart,
				ChartType: ct,
				Gender:    gender,
				Variables: vars,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "chart JSON file (- for stdin)")
	cmd.Flags().StringVar(&chartType, "type", string(model.Tropical), "chart type: tropical or draco")
	cmd.Flags().StringVar(&gender, "gender", "", "narrative gender: femenino or masculino")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "text variables, e.g. --var anio=2025")
	_ = cmd.MarkFlagRequired("chart")
	return cmd
}

// readChart decodes a chart file. The payload may be the chart itself or
// an HTTP request body carrying it under carta_natal.
func readChart(path string) (model.Chart, error) {
	b, err := readInput(path)
	if err != nil {
		return model.Chart{}, err
	}
	var wrapped struct {
		Chart *model.Chart `json:"carta_natal"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.Chart != nil {
		return *wrapped.Chart, nil
	}
	var chart model.Chart
	if err := json.Unmarshal(b, &chart); err != nil {
		return model.Chart{}, fmt.Errorf("decode chart %s: %w", path, err)
	}
	return chart, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
