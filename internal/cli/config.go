package cli

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/jmgilman/go/releases"
	"github.com/jmgilman/go/releases/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Each is a flag, a GHRELEASE_* environment variable and
// a config file key.
const (
	keyConfig    = "config"
	keyToken     = "token"
	keyAPIURL    = "api-url"
	keyUploadURL = "upload-url"
	keyUserAgent = "user-agent"
	keyTimeout   = "timeout"
	keyOutput    = "output"
	keyVerbose   = "verbose"
)

const envPrefix = "GHRELEASE"

// init loads configuration and sets up logging. It runs before every command.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to bind flags")
	}

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("ghrelease")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.config/ghrelease")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return errors.WithContext(
				errors.Wrap(err, errors.CodeInvalidConfig, "failed to read config file"),
				"path", a.v.ConfigFileUsed(),
			)
		}
	}

	format := a.v.GetString(keyOutput)
	if format != formatJSON && format != formatYAML {
		err := errors.Newf(errors.CodeInvalidInput, "unsupported output format %q", format)
		return errors.WithContext(err, "field", keyOutput)
	}

	level := slog.LevelWarn
	if a.v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if file := a.v.ConfigFileUsed(); file != "" {
		a.logger.Debug("loaded config", "path", file)
	}
	return nil
}

// client builds a releases.Client from the loaded configuration.
// An empty token falls back to the GITHUB_TOKEN environment variable.
func (a *app) client() (*releases.Client, error) {
	opts := []releases.Option{releases.WithLogger(a.logger)}

	if token := a.v.GetString(keyToken); token != "" {
		opts = append(opts, releases.WithToken(token))
	}
	if apiURL := a.v.GetString(keyAPIURL); apiURL != "" {
		opts = append(opts, releases.WithBaseURL(apiURL))
	}
	if uploadURL := a.v.GetString(keyUploadURL); uploadURL != "" {
		opts = append(opts, releases.WithUploadURL(uploadURL))
	}
	if userAgent := a.v.GetString(keyUserAgent); userAgent != "" {
		opts = append(opts, releases.WithUserAgent(userAgent))
	}
	if timeout := a.v.GetDuration(keyTimeout); timeout > 0 {
		opts = append(opts, releases.WithTimeout(timeout))
	}

	return releases.NewClient(opts...)
}
