// Package evaluator implements the minimal expression language available to
// declaratively loaded steps via the `when:` field. Supported forms:
//
//	ready            truthy test of a state variable
//	!ready           negated truthy test
//	status == done   equality against a literal or another variable
//	count != 0       inequality
//
// String literals may be single- or double-quoted; bare words that do not
// resolve to a state variable are treated as literals.
package evaluator

import (
	"strings"

	"github.com/viant/toolbox"
)

// Evaluate evaluates a when-expression against the supplied state variables.
// An empty expression evaluates to true.
func Evaluate(expr string, variables map[string]interface{}) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	for _, op := range []string{"==", "!="} {
		if idx := strings.Index(expr, op); idx != -1 {
			left := resolve(expr[:idx], variables)
			right := resolve(expr[idx+len(op):], variables)
			equal := toolbox.AsString(left) == toolbox.AsString(right)
			if op == "==" {
				return equal
			}
			return !equal
		}
	}
	if strings.HasPrefix(expr, "!") {
		return !truthy(resolve(expr[1:], variables))
	}
	return truthy(resolve(expr, variables))
}

// resolve maps a token to a state variable value or, failing that, to a
// literal.
func resolve(token string, variables map[string]interface{}) interface{} {
	token = strings.TrimSpace(token)
	if unquoted := unquote(token); unquoted != token {
		return unquoted
	}
	if value, ok := variables[token]; ok {
		return value
	}
	return token
}

func unquote(token string) string {
	if len(token) >= 2 {
		if (token[0] == '\'' && token[len(token)-1] == '\'') ||
			(token[0] == '"' && token[len(token)-1] == '"') {
			return token[1 : len(token)-1]
		}
	}
	return token
}

func truthy(value interface{}) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case bool:
		return actual
	case string:
		return actual != "" && actual != "false" && actual != "0"
	default:
		return toolbox.AsBoolean(actual)
	}
}
