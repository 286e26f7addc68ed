package main

import (
	"encoding/json"
	"fmt"

	"github.com/okian/carta/internal/domain/model"
	"github.com/spf13/cobra"
)

func newEventsCmd(c *cli) *cobra.Command {
	var (
		path string
		vars map[string]string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Interpret calendar events and print the results as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := readEvents(path)
			if err != nil {
				return err
			}
			svc, err := c.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			results, err := svc.InterpretEvents(cmd.Context(), events, vars)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "events JSON file (- for stdin)")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "text variables, e.g. --var anio=2025")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readEvents accepts a bare event list or a request body with "eventos".
func readEvents(path string) ([]model.CalendarEvent, error) {
	b, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var events []model.CalendarEvent
	if err := json.Unmarshal(b, &events); err == nil {
		return events, nil
	}
	var wrapped struct {
		Events []model.CalendarEvent `json:"eventos"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("decode events %s: %w", path, err)
	}
	return wrapped.Events, nil
}
