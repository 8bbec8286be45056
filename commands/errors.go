package commands

import (
	"go/token"
	"strings"
)

// ValidationError reports a command declaration that cannot be turned into a
// descriptor entry, such as one without a name or with an unknown attribute.
type ValidationError struct {
	Pos   token.Position
	Owner string
	Msg   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	if e.Owner != "" {
		b.WriteString(e.Owner)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	return b.String()
}
