package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-detector/internal/models"
)

func newReportCmd(app *App) *cobra.Command {
	var showAll, asJSON bool

	cmd := &cobra.Command{
		Use:   "report <submission-id>",
		Short: "Show the verification report for a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRenderer()

			begin := app.Viewer.Begin(args[0])
			if begin.Phase == models.PhaseIdle {
				cmd.Println(r.muted("No submission selected"))
				return nil
			}
			if !asJSON {
				cmd.Println(r.muted(begin.Message))
			}

			view := app.Viewer.Load(cmd.Context(), begin.ID)
			if view.Phase == models.PhaseError {
				return errors.New(view.Message)
			}

			page := app.Presenter.Present(view.ID, view.Report)
			if asJSON {
				data, err := json.MarshalIndent(page, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal report: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Print(r.report(page, showAll))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Expand every source instead of the top ones")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")
	return cmd
}
