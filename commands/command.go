package commands

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Command describes one user-invocable command of a plugin. It is the
// metadata carried by a single command declaration.
//
// Only Name is required. Empty optional fields are omitted from the rendered
// descriptor, except Description, which is always present, and Usage, which
// defaults to "/" followed by Name.
type Command struct {
	// Name is the command name without a leading slash. It is the unique key
	// of the command in the generated descriptor.
	Name string

	// Description is shown in help menus and command listings.
	Description string

	// Permission is the permission node required to run the command.
	Permission string

	// PermissionMessage is shown to users that lack Permission.
	PermissionMessage string

	// Usage shows the correct syntax of the command.
	Usage string

	// Aliases are alternative names for the command, in declared order.
	Aliases []string
}

// EffectiveUsage returns Usage, or "/" + Name if Usage is empty.
func (c Command) EffectiveUsage() string {
	if c.Usage != "" {
		return c.Usage
	}
	return "/" + c.Name
}

// Validate checks that the command can be rendered as a descriptor entry.
//
// The name is emitted as a bare mapping key, so it must be non-empty and
// consist only of letters, digits, '.', '_' and '-', and must not start with
// '-'. All fields must be valid UTF-8.
func (c Command) Validate() error {
	if c.Name == "" {
		return &ValidationError{Msg: "command name is required"}
	}
	if strings.HasPrefix(c.Name, "-") || strings.ContainsFunc(c.Name, func(r rune) bool {
		return !isNameRune(r)
	}) {
		return &ValidationError{Msg: fmt.Sprintf("command name %q may only contain letters, digits, '.', '_' and '-', and must not start with '-'", c.Name)}
	}
	for _, f := range []struct{ key, val string }{
		{"description", c.Description},
		{"permission", c.Permission},
		{"permission-message", c.PermissionMessage},
		{"usage", c.Usage},
	} {
		if !utf8.ValidString(f.val) {
			return &ValidationError{Msg: fmt.Sprintf("%s of command %q is not valid UTF-8", f.key, c.Name)}
		}
	}
	for _, a := range c.Aliases {
		if !utf8.ValidString(a) {
			return &ValidationError{Msg: fmt.Sprintf("alias %q of command %q is not valid UTF-8", a, c.Name)}
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

// Declaration is a Command together with where it was declared.
type Declaration struct {
	// Owner identifies the declaring element, e.g. "admin.TeleportCommand".
	// It is used for diagnostics only and never appears in generated output.
	Owner string

	// Pos is the source position of the declaration, if known.
	Pos token.Position

	Command Command
}

// Sink receives command declarations as they are discovered.
type Sink interface {
	Deliver(Declaration)
}
