package commands

import (
	"bytes"
	"fmt"
	"strconv"
)

// DefaultFileName is the name of the generated descriptor fragment.
const DefaultFileName = "commands.yml"

const header = "# Auto-generated command definitions\ncommands:\n"

// Quoting selects how string values are written between the double quotes
// of the descriptor.
type Quoting int

const (
	// QuotingCompat interpolates values verbatim, without escaping. A value
	// containing a double quote produces a descriptor that is not valid YAML.
	// This matches the output consumed by existing plugins byte for byte.
	QuotingCompat Quoting = iota

	// QuotingStrict writes values as YAML double-quoted scalars, escaping
	// quotes, backslashes and control characters.
	QuotingStrict
)

func (q Quoting) String() string {
	switch q {
	case QuotingCompat:
		return "compat"
	case QuotingStrict:
		return "strict"
	default:
		return fmt.Sprintf("Quoting(%d)", int(q))
	}
}

// ParseQuoting parses "compat" or "strict". The empty string is compat.
func ParseQuoting(s string) (Quoting, error) {
	switch s {
	case "", "compat":
		return QuotingCompat, nil
	case "strict":
		return QuotingStrict, nil
	default:
		return 0, fmt.Errorf("unknown quoting mode %q, expected compat or strict", s)
	}
}

func (q Quoting) quote(s string) string {
	if q == QuotingStrict {
		return strconv.Quote(s)
	}
	return `"` + s + `"`
}

// Render writes the descriptor for cmds, in the order given, using the given
// quoting. It does not deduplicate; use a [Registry] for that.
//
// An empty cmds renders only the header.
func Render(cmds []Command, q Quoting) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	for _, c := range cmds {
		writeCommand(&buf, c, q)
	}
	return buf.Bytes()
}

func writeCommand(buf *bytes.Buffer, c Command, q Quoting) {
	fmt.Fprintf(buf, "  %s:\n", c.Name)
	fmt.Fprintf(buf, "    description: %s\n", q.quote(c.Description))
	fmt.Fprintf(buf, "    usage: %s\n", q.quote(c.EffectiveUsage()))
	if c.Permission != "" {
		fmt.Fprintf(buf, "    permission: %s\n", q.quote(c.Permission))
	}
	if c.PermissionMessage != "" {
		fmt.Fprintf(buf, "    permission-message: %s\n", q.quote(c.PermissionMessage))
	}
	if len(c.Aliases) > 0 {
		buf.WriteString("    aliases: [")
		for i, a := range c.Aliases {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(q.quote(a))
		}
		buf.WriteString("]\n")
	}
	buf.WriteString("\n")
}
