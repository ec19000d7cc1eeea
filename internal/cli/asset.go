package cli

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/gobwas/glob"
	"github.com/jmgilman/go/releases"
	"github.com/jmgilman/go/releases/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelUploads bounds concurrent uploads from a single command.
const maxParallelUploads = 4

func newAssetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Inspect and manage release assets.",
	}
	cmd.AddCommand(
		newAssetListCmd(a),
		newAssetGetCmd(a),
		newAssetUpdateCmd(a),
		newAssetDeleteCmd(a),
		newAssetUploadCmd(a),
	)
	return cmd
}

func newAssetListCmd(a *app) *cobra.Command {
	var (
		perPage, page int
		match         string
	)

	cmd := &cobra.Command{
		Use:   "list OWNER/REPO RELEASE_ID",
		Short: "List the assets of a release.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			releaseID, err := parseID("release_id", args[1])
			if err != nil {
				return err
			}
			var pattern glob.Glob
			if match != "" {
				if pattern, err = glob.Compile(match); err != nil {
					err = errors.Wrap(err, errors.CodeInvalidInput, "invalid --match pattern")
					return errors.WithContext(err, "field", "match")
				}
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			assets, err := client.ListReleaseAssets(cmd.Context(), repo, releaseID,
				releases.WithPerPage(perPage), releases.WithPage(page))
			if err != nil {
				return err
			}
			if pattern != nil {
				assets = filterAssets(assets, pattern)
			}
			return a.render(assets)
		},
	}

	cmd.Flags().IntVar(&perPage, "per-page", releases.DefaultPerPage, "results per page")
	cmd.Flags().IntVar(&page, "page", releases.DefaultPage, "page number")
	cmd.Flags().StringVar(&match, "match", "", "only show assets whose name matches this glob")
	return cmd
}

func newAssetGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER/REPO ASSET_ID",
		Short: "Show a release asset.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, assetID, client, err := a.assetTarget(args)
			if err != nil {
				return err
			}

			asset, err := client.GetReleaseAsset(cmd.Context(), repo, assetID)
			if err != nil {
				return err
			}
			return a.render(asset)
		},
	}
}

func newAssetUpdateCmd(a *app) *cobra.Command {
	var name, label, state string

	cmd := &cobra.Command{
		Use:   "update OWNER/REPO ASSET_ID",
		Short: "Change the name, label or state of a release asset.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []releases.AssetUpdateOption
			flags := cmd.Flags()
			if flags.Changed("name") {
				opts = append(opts, releases.WithAssetName(name))
			}
			if flags.Changed("label") {
				opts = append(opts, releases.WithAssetLabel(label))
			}
			if flags.Changed("state") {
				if state != releases.AssetStateUploaded && state != releases.AssetStateOpen {
					err := errors.Newf(errors.CodeInvalidInput, "invalid --state %q", state)
					return errors.WithContext(err, "field", "state")
				}
				opts = append(opts, releases.WithAssetState(state))
			}

			repo, assetID, client, err := a.assetTarget(args)
			if err != nil {
				return err
			}

			asset, err := client.UpdateReleaseAsset(cmd.Context(), repo, assetID, opts...)
			if err != nil {
				return err
			}
			return a.render(asset)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new file name")
	cmd.Flags().StringVar(&label, "label", "", "new display label")
	cmd.Flags().StringVar(&state, "state", "", "uploaded or open")
	return cmd
}

func newAssetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete OWNER/REPO ASSET_ID",
		Short: "Delete a release asset.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, assetID, client, err := a.assetTarget(args)
			if err != nil {
				return err
			}

			if err := client.DeleteReleaseAsset(cmd.Context(), repo, assetID); err != nil {
				return err
			}
			a.logger.Info("deleted asset", "repo", repo.String(), "asset_id", assetID)
			return nil
		},
	}
}

func newAssetUploadCmd(a *app) *cobra.Command {
	var name, label, contentType string

	cmd := &cobra.Command{
		Use:   "upload OWNER/REPO RELEASE_ID FILE...",
		Short: "Upload files as new release assets.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			releaseID, err := parseID("release_id", args[1])
			if err != nil {
				return err
			}
			files := args[2:]
			if name != "" && len(files) > 1 {
				err := errors.New(errors.CodeInvalidInput, "--name cannot be used with more than one file")
				return errors.WithContext(err, "field", "name")
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			var opts []releases.UploadOption
			if name != "" {
				opts = append(opts, releases.WithAssetFileName(name))
			}
			if label != "" {
				opts = append(opts, releases.WithLabel(label))
			}
			if contentType != "" {
				opts = append(opts, releases.WithUploadContentType(contentType))
			}

			uploaded := make([]*releases.Asset, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelUploads)
			for i, file := range files {
				g.Go(func() error {
					abs, err := filepath.Abs(file)
					if err != nil {
						err = errors.Wrap(err, errors.CodeInvalidInput, "failed to resolve file path")
						return errors.WithContext(err, "path", file)
					}

					asset, err := client.UploadReleaseAssetFile(ctx, repo, releaseID,
						osfs.New(filepath.Dir(abs)), filepath.Base(abs), opts...)
					if err != nil {
						return err
					}
					a.logger.Debug("uploaded asset", "name", asset.Name, "asset_id", asset.ID)
					uploaded[i] = asset
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if len(uploaded) == 1 {
				return a.render(uploaded[0])
			}
			return a.render(uploaded)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name, single file only (default the file's base name)")
	cmd.Flags().StringVar(&label, "label", "", "display label")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (default from the file extension)")
	return cmd
}

func filterAssets(assets []*releases.Asset, pattern glob.Glob) []*releases.Asset {
	matched := make([]*releases.Asset, 0, len(assets))
	for _, asset := range assets {
		if pattern.Match(asset.Name) {
			matched = append(matched, asset)
		}
	}
	return matched
}

// assetTarget parses OWNER/REPO ASSET_ID and builds a client.
func (a *app) assetTarget(args []string) (releases.RepoInfo, int64, *releases.Client, error) {
	repo, err := parseRepo(args[0])
	if err != nil {
		return releases.RepoInfo{}, 0, nil, err
	}
	assetID, err := parseID("asset_id", args[1])
	if err != nil {
		return releases.RepoInfo{}, 0, nil, err
	}
	client, err := a.client()
	if err != nil {
		return releases.RepoInfo{}, 0, nil, err
	}
	return repo, assetID, client, nil
}
