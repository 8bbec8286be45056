package scan

import (
	"fmt"
	"go/ast"
	"strings"

	shlex "github.com/anmitsu/go-shlex"

	"github.com/grafana/cmdjen/commands"
)

// MarkerPrefix starts every comment line that carries command metadata, e.g.
//
//	// +commands:name=teleport aliases=tp,tele
//	// +commands:description="Teleport to another player"
const MarkerPrefix = "+commands:"

// markerLines returns the marker payloads found in the given comment groups,
// with MarkerPrefix removed, in source order.
func markerLines(groups ...*ast.CommentGroup) []string {
	var lines []string
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			for _, line := range commentLines(c.Text) {
				if rest, ok := strings.CutPrefix(line, MarkerPrefix); ok {
					lines = append(lines, rest)
				}
			}
		}
	}
	return lines
}

func commentLines(text string) []string {
	if body, ok := strings.CutPrefix(text, "//"); ok {
		return []string{strings.TrimSpace(body)}
	}
	body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(strings.TrimSpace(l), "* ")
	}
	return lines
}

// parseMarkers builds a Command from marker payloads. Each payload is a list
// of key=value words split with POSIX shell quoting. Later scalar values
// override earlier ones; aliases accumulate.
func parseMarkers(lines []string) (commands.Command, error) {
	var cmd commands.Command
	for _, line := range lines {
		words, err := shlex.Split(line, true)
		if err != nil {
			return cmd, fmt.Errorf("malformed marker %q: %w", MarkerPrefix+line, err)
		}
		for _, w := range words {
			key, value, ok := strings.Cut(w, "=")
			if !ok {
				return cmd, fmt.Errorf("malformed marker attribute %q, expected key=value", w)
			}
			switch key {
			case "name":
				cmd.Name = value
			case "description":
				cmd.Description = value
			case "permission":
				cmd.Permission = value
			case "permission-message", "permissionMessage":
				cmd.PermissionMessage = value
			case "usage":
				cmd.Usage = value
			case "aliases", "alias":
				for _, a := range strings.Split(value, ",") {
					if a = strings.TrimSpace(a); a != "" {
						cmd.Aliases = append(cmd.Aliases, a)
					}
				}
			default:
				return cmd, fmt.Errorf("unknown marker attribute %q", key)
			}
		}
	}
	return cmd, nil
}
