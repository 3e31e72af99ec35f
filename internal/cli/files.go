package cli

import (
	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "files [file...]",
		Short: "List the files a submission would include",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.Source.FromPaths(args)
			if err != nil {
				return err
			}

			items := app.Inspector.Describe(app.Composer.SelectFiles(raw))
			cmd.Print(newRenderer().files(items))
			return nil
		},
	}
}
