package loader

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY (or "" when unset). Malformed
// expressions are left as literals.
func expandEnvExpr(value string) string {
	const prefix = "${env."
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], prefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(prefix)

		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			// No closing brace - treat the rest as literal.
			b.WriteString(value[i+idx:])
			break
		}
		key := value[startKey : startKey+endKey]

		// Keys consist solely of letters, digits or '_' (empty allowed).
		valid := true
		for _, r := range key {
			if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				valid = false
				break
			}
		}
		if !valid {
			// Consume the prefix as literal and re-scan the remainder so any
			// nested expressions are still processed.
			b.WriteString(value[i+idx : startKey])
			i = startKey
			continue
		}
		b.WriteString(os.Getenv(key))
		i = startKey + endKey + 1
	}
	return b.String()
}
