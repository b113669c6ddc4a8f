package arghelper

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/anacrolix/missinggo"
	"github.com/huandu/xstrings"
)

// WriteUsage writes a summary of the parameters a function accepts: its
// positional parameters, flag groups with their defaults, keys with their
// default values and group aliases with their expansions. Import fragments
// are applied first, so the summary shows the complete definition. name is
// the function name shown in the usage line.
func (d Definition) WriteUsage(w io.Writer, name string, posNames []string) error {
	def, err := d.expanded(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Usage:\n  %s", name)
	for _, pos := range posNames {
		fmt.Fprintf(w, " %s", posDisplayName(pos))
	}
	if def.hasParameters() {
		fmt.Fprintf(w, " [PARAMETERS...]")
	}
	fmt.Fprintf(w, "\n")
	if def.Description != "" {
		fmt.Fprintf(w, "\n%s\n", missinggo.Unchomp(def.Description))
	}
	if len(def.Flags) != 0 {
		fmt.Fprintf(w, "Flags:\n")
		tw := newUsageTabwriter(w)
		for _, group := range sortedKeys(def.Flags) {
			names := def.Flags[group]
			fmt.Fprintf(tw, "  %s\t%s (default %s)\n", group, strings.Join(names, ", "), names[0])
		}
		tw.Flush()
	}
	if len(def.Keyvals) != 0 {
		fmt.Fprintf(w, "Keys:\n")
		tw := newUsageTabwriter(w)
		for _, key := range sortedKeys(def.Keyvals) {
			fmt.Fprintf(tw, "  %s\tdefault %v\n", key, def.Keyvals[key])
		}
		tw.Flush()
	}
	if len(def.Groups) != 0 {
		fmt.Fprintf(w, "Group aliases:\n")
		tw := newUsageTabwriter(w)
		for _, alias := range sortedKeys(def.Groups) {
			fmt.Fprintf(tw, "  %s\t%s\n", alias, joinTokens(def.Groups[alias]))
		}
		tw.Flush()
	}
	return nil
}

func (d Definition) hasParameters() bool {
	return len(d.Flags) != 0 || len(d.Keyvals) != 0 || len(d.Groups) != 0
}

func newUsageTabwriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 8, 2, 3, ' ', 0)
}

// Positional parameters display in UPPER_SNAKE.
func posDisplayName(name string) string {
	return strings.ToUpper(xstrings.ToSnakeCase(name))
}

func joinTokens(tokens []any) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v", tok)
	}
	return strings.Join(parts, " ")
}
