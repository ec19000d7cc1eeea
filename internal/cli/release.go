package cli

import (
	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/releases"
	"github.com/jmgilman/go/releases/errors"
	"github.com/spf13/cobra"
)

func newReleaseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Inspect and manage releases.",
	}
	cmd.AddCommand(
		newReleaseGetCmd(a),
		newReleaseListCmd(a),
		newReleaseCreateCmd(a),
		newReleaseDeleteCmd(a),
	)
	return cmd
}

func newReleaseGetCmd(a *app) *cobra.Command {
	var (
		tag string
		id  int64
	)

	cmd := &cobra.Command{
		Use:   "get OWNER/REPO",
		Short: "Show a release by tag or ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			if (tag == "") == (id == 0) {
				return errors.New(errors.CodeInvalidInput, "exactly one of --tag or --id is required")
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			var release *releases.Release
			if tag != "" {
				release, err = client.GetReleaseByTag(cmd.Context(), repo, tag)
			} else {
				release, err = client.GetRelease(cmd.Context(), repo, id)
			}
			if err != nil {
				return err
			}
			return a.render(release)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "release tag")
	cmd.Flags().Int64Var(&id, "id", 0, "release ID")
	return cmd
}

func newReleaseListCmd(a *app) *cobra.Command {
	var perPage, page int

	cmd := &cobra.Command{
		Use:   "list OWNER/REPO",
		Short: "List releases of a repository, newest first.",
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

			list, err := client.ListReleases(cmd.Context(), repo, releases.WithPerPage(perPage), releases.WithPage(page))
			if err != nil {
				return err
			}
			return a.render(list)
		},
	}

	cmd.Flags().IntVar(&perPage, "per-page", releases.DefaultPerPage, "results per page")
	cmd.Flags().IntVar(&page, "page", releases.DefaultPage, "page number")
	return cmd
}

func newReleaseCreateCmd(a *app) *cobra.Command {
	var (
		opts                             releases.CreateReleaseOptions
		name, body, target               string
		makeLatest                       string
		draft, prerelease, generateNotes bool
	)

	cmd := &cobra.Command{
		Use:   "create OWNER/REPO",
		Short: "Create a release.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				opts.Name = github.String(name)
			}
			if flags.Changed("body") {
				opts.Body = github.String(body)
			}
			if flags.Changed("target") {
				opts.TargetCommitish = github.String(target)
			}
			if flags.Changed("draft") {
				opts.Draft = github.Bool(draft)
			}
			if flags.Changed("prerelease") {
				opts.Prerelease = github.Bool(prerelease)
			}
			if flags.Changed("generate-notes") {
				opts.GenerateReleaseNotes = github.Bool(generateNotes)
			}
			if flags.Changed("make-latest") {
				switch makeLatest {
				case releases.MakeLatestTrue, releases.MakeLatestFalse, releases.MakeLatestLegacy:
					opts.MakeLatest = github.String(makeLatest)
				default:
					err := errors.Newf(errors.CodeInvalidInput, "invalid --make-latest %q", makeLatest)
					return errors.WithContext(err, "field", "make-latest")
				}
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			release, err := client.CreateRelease(cmd.Context(), repo, opts)
			if err != nil {
				return err
			}
			return a.render(release)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.TagName, "tag", "", "tag to create the release from (required)")
	flags.StringVar(&name, "name", "", "release title")
	flags.StringVar(&body, "body", "", "release notes")
	flags.StringVar(&target, "target", "", "commitish the tag is created from")
	flags.BoolVar(&draft, "draft", false, "create an unpublished draft")
	flags.BoolVar(&prerelease, "prerelease", false, "mark as a prerelease")
	flags.BoolVar(&generateNotes, "generate-notes", false, "let GitHub generate release notes")
	flags.StringVar(&makeLatest, "make-latest", "", "true, false or legacy")
	_ = cmd.MarkFlagRequired("tag")
	return cmd
}

func newReleaseDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete OWNER/REPO RELEASE_ID",
		Short: "Delete a release.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			id, err := parseID("release_id", args[1])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			if err := client.DeleteRelease(cmd.Context(), repo, id); err != nil {
				return err
			}
			a.logger.Info("deleted release", "repo", repo.String(), "release_id", id)
			return nil
		},
	}
}
