package cli

import (
	"encoding/json"

	"github.com/jmgilman/go/releases/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v to stdout in the configured output format.
func (a *app) render(v any) error {
	switch a.v.GetString(keyOutput) {
	case formatYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(toYAMLValue(v)); err != nil {
			return errors.Wrap(err, errors.CodeEncodeFailed, "failed to render yaml")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, errors.CodeEncodeFailed, "failed to render json")
		}
		return nil
	}
}

// toYAMLValue round-trips v through JSON so YAML output uses the same
// snake_case keys as the API instead of lowercased Go field names.
func toYAMLValue(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return v
	}
	return generic
}
