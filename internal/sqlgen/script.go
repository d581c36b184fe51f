package sqlgen

import (
	"strings"

	"github.com/hlop3z/migrala/internal/ast"
)

// Script compiles a changeset into a single multi-statement script,
// joining commands with the dialect's inter-statement separator when it
// has one (e.g. a line containing GO). Skipped operations appear as
// comment lines so a reviewer can see what the dialect could not express.
func (c *Compiler) Script(cs *ast.Changeset) (string, error) {
	cmds, err := c.Compile(cs).Drain()
	if err != nil {
		return "", err
	}

	sep := c.dialect.ScriptSeparator()
	var b strings.Builder
	for i, cmd := range cmds {
		if i > 0 {
			if sep != "" {
				b.WriteString(sep)
				b.WriteString("\n")
			}
		}
		if cmd.Outcome == OutcomeSkipped {
			b.WriteString("-- skipped ")
			b.WriteString(cmd.Op.Kind().String())
			b.WriteString("/")
			b.WriteString(cmd.Op.Modifier().String())
			b.WriteString(": ")
			b.WriteString(cmd.Reason)
			b.WriteString("\n")
			continue
		}
		b.WriteString(cmd.SQL)
		b.WriteString("\n")
	}
	return b.String(), nil
}
