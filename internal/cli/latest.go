package cli

import (
	"github.com/spf13/cobra"
)

func newLatestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "latest OWNER/REPO",
		Short: "Show the latest published release of a repository.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			release, err := client.GetLatestRelease(cmd.Context(), repo)
			if err != nil {
				return err
			}
			return a.render(release)
		},
	}
}
