package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"
)

func NewRootCommand(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "detector",
		Short: "Submit resumes for claim checking and read the reports",
		Long: `detector sends one or more PDF resumes to the analysis service and renders
the verification report for a submission id once it is ready.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				log.SetOutput(cmd.ErrOrStderr())
				return
			}
			log.SetOutput(io.Discard)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress logs to stderr")

	cmd.AddCommand(
		newSubmitCmd(app),
		newReportCmd(app),
		newFilesCmd(app),
	)
	return cmd
}
