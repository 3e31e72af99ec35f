package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-detector/internal/models"
)

func newSubmitCmd(app *App) *cobra.Command {
	var state models.FormState

	cmd := &cobra.Command{
		Use:   "submit [file...]",
		Short: "Submit PDF resumes for analysis",
		Long: `Submits every PDF among the given files as one request. Files of any other
type are skipped. The report is emailed once the analysis finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.Source.FromPaths(args)
			if err != nil {
				return err
			}

			files := app.Composer.SelectFiles(raw)
			r := newRenderer()
			if skipped := len(raw) - len(files); skipped > 0 {
				cmd.Println(r.muted(fmt.Sprintf("Skipped %d file(s) that are not PDFs", skipped)))
			}

			app.Telemetry.Start(cmd.Context())
			defer app.Telemetry.Shutdown(app.Config.Telemetry.DrainTimeout)

			result := app.Composer.Submit(cmd.Context(), state.WithFiles(files))
			if !result.OK() {
				return errors.New(result.Notice.Message)
			}
			cmd.Println(r.success(result.Notice.Message))
			cmd.Println(r.muted("Attempt " + result.AttemptID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&state.Email, "email", "e", "", "Email the report is sent to")
	cmd.Flags().StringVar(&state.Role, "role", "", "Your role, e.g. Recruiter")
	cmd.Flags().StringVar(&state.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&state.CompanyOrSchool, "company", "", "Company or school")
	return cmd
}
