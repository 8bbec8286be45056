package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"sigs.k8s.io/yaml"

	"github.com/grafana/cmdjen"
)

// descriptor mirrors the shape of the generated fragment as the plugin
// runtime reads it.
type descriptor struct {
	Commands map[string]descriptorEntry `json:"commands"`
}

type descriptorEntry struct {
	Description       string   `json:"description"`
	Usage             string   `json:"usage"`
	Permission        string   `json:"permission,omitempty"`
	PermissionMessage string   `json:"permission-message,omitempty"`
	Aliases           []string `json:"aliases,omitempty"`
}

// LintYAML returns a postprocessor that checks a generated descriptor decodes
// as YAML with the expected shape.
//
// With strict set, a descriptor that fails to decode is an error. Otherwise
// the failure is logged as a warning on logger (if non-nil) and the file is
// passed through unchanged, since compat quoting deliberately leaves embedded
// quotes unescaped.
func LintYAML(strict bool, logger *log.Logger) cmdjen.FileMapper {
	return func(f cmdjen.File) (cmdjen.File, error) {
		err := lintDescriptor(f.Data)
		if err == nil {
			return f, nil
		}
		if strict {
			return cmdjen.File{}, fmt.Errorf("%s is not a valid command descriptor: %w", f.RelativePath, err)
		}
		if logger != nil {
			logger.Warn("generated descriptor is not valid YAML", "path", f.RelativePath, "err", err)
		}
		return f, nil
	}
}

func lintDescriptor(data []byte) error {
	var doc descriptor
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return err
	}
	for name, entry := range doc.Commands {
		if entry.Usage == "" {
			return fmt.Errorf("command %q has no usage", name)
		}
	}
	return nil
}
