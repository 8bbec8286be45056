package commands

import (
	"github.com/grafana/cmdjen"
)

// YAMLJenny renders all commands it is given into a single descriptor file.
// It is a no-op when given no commands, so no empty descriptor is ever
// produced.
type YAMLJenny struct {
	// Path is the relative path of the generated file. Defaults to
	// DefaultFileName.
	Path string

	Quoting Quoting
}

var _ cmdjen.ManyToOne[Command] = YAMLJenny{}

// JennyName implements cmdjen.NamedJenny.
func (j YAMLJenny) JennyName() string {
	return "CommandsYAML"
}

// Generate implements cmdjen.ManyToOne. Commands are rendered in the order
// given and are expected to have unique names.
func (j YAMLJenny) Generate(cmds ...Command) (*cmdjen.File, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	path := j.Path
	if path == "" {
		path = DefaultFileName
	}
	return &cmdjen.File{
		RelativePath: path,
		Data:         Render(cmds, j.Quoting),
	}, nil
}

// ForDeclarations adapts a command jenny to take declarations, so it can be
// used in a JennyList fed from [Registry.Declarations].
func ForDeclarations(j cmdjen.ManyToOne[Command]) cmdjen.ManyToOne[Declaration] {
	return cmdjen.AdaptManyToOne(j, func(d Declaration) Command {
		return d.Command
	})
}
