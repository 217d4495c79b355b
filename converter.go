package domainconv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// profile parameterizes the shared conversion algorithm for one of the two
// output renderings.
type profile struct {
	pseudocode  bool
	compOps     map[string]string
	andWord     string
	orWord      string
	notWord     string
	emptyDomain string
	ignoredCond string // an '=?' condition whose value is None/False
}

var pseudocodeProfile = &profile{
	pseudocode: true,
	compOps: map[string]string{
		"=":         "is equal to",
		"!=":        "is not equal to",
		">":         "is greater than",
		"<":         "is less than",
		">=":        "is greater than or equal to",
		"<=":        "is less than or equal to",
		"in":        "is in",
		"not in":    "is not in",
		"like":      "matches (case sensitive, with wildcards) the pattern",
		"ilike":     "matches (case insensitive, with wildcards) the pattern",
		"=like":     "exactly matches (case sensitive, with wildcards) the pattern",
		"=ilike":    "exactly matches (case insensitive, with wildcards) the pattern",
		"child_of":  "is a child of",
		"parent_of": "is a parent of",
	},
	andWord:     "AND",
	orWord:      "OR",
	notWord:     "NOT",
	emptyDomain: "Always True (empty domain)",
	ignoredCond: "Always True (ignored condition)",
}

var pythonProfile = &profile{
	compOps: map[string]string{
		"=":      "==",
		"!=":     "!=",
		">":      ">",
		"<":      "<",
		">=":     ">=",
		"<=":     "<=",
		"in":     "in",
		"not in": "not in",
		// like/ilike/=like/=ilike/child_of/parent_of have no Python
		// equivalent and pass through verbatim.
	},
	andWord:     "and",
	orWord:      "or",
	notWord:     "not",
	emptyDomain: "True",
	ignoredCond: "True",
}

// ConvertToPseudocode renders a parsed domain as human-readable pseudocode.
// Operator-arity problems degrade to a trailing warning annotation; the
// only error is a MalformedDomainError for a condition shorter than three
// elements.
func ConvertToPseudocode(domain Domain) (string, error) {
	return convertDomain(domain, pseudocodeProfile)
}

// ConvertToPython renders a parsed domain as a Python-like expression. Same
// failure posture as ConvertToPseudocode.
func ConvertToPython(domain Domain) (string, error) {
	return convertDomain(domain, pythonProfile)
}

// convertDomain is the shared prefix-to-infix engine: a right-to-left walk
// over the domain with an explicit operand stack. '&' and '|' consume two
// already-built results, '!' consumes one, and whatever is left over is
// ANDed together left to right in original element order.
func convertDomain(domain Domain, p *profile) (string, error) {
	var stack []string
	var warnings []string

	for i := len(domain) - 1; i >= 0; i-- {
		switch element := domain[i].(type) {
		case Condition:
			rendered, err := renderCondition(element, p)
			if err != nil {
				return "", err
			}
			stack = append(stack, rendered)
		case Domain:
			rendered, err := convertDomain(element, p)
			if err != nil {
				return "", err
			}
			stack = append(stack, rendered)
		case *StringLiteral:
			switch element.Val {
			case "!":
				if len(stack) > 0 {
					operand := stack[len(stack)-1]
					stack[len(stack)-1] = fmt.Sprintf("%s (%s)", p.notWord, operand)
				} else {
					warnings = append(warnings, fmt.Sprintf("NOT operator at position %d has no operand", i))
				}
			case "&", "|":
				word := p.andWord
				if element.Val == "|" {
					word = p.orWord
				}
				switch {
				case len(stack) >= 2:
					a := stack[len(stack)-1]
					b := stack[len(stack)-2]
					stack = append(stack[:len(stack)-2], combine(a, word, b, p))
				case len(stack) == 1:
					// Keep the lone operand untouched rather than invent a second one.
					warnings = append(warnings, fmt.Sprintf("Binary operator '%s' at position %d has only 1 operand (expected 2)", element.Val, i))
				default:
					warnings = append(warnings, fmt.Sprintf("Binary operator '%s' at position %d has no operands", element.Val, i))
				}
			}
			// Non-operator bare strings are loose values with no rendering; skip.
		default:
			// Loose literals and references at domain level are skipped.
		}
	}

	// Implicit AND over the leftovers, left to right in original element
	// order. The stack holds rightmost-first, so the leftmost remaining
	// operand sits on top.
	for len(stack) > 1 {
		a := stack[len(stack)-1]
		b := stack[len(stack)-2]
		stack = append(stack[:len(stack)-2], combine(a, p.andWord, b, p))
	}

	if len(stack) == 0 {
		return p.emptyDomain, nil
	}

	result := stack[0]
	if len(warnings) > 0 {
		joined := strings.Join(warnings, "; ")
		if p.pseudocode {
			result += fmt.Sprintf("\n\n[Warning: %s]", joined)
		} else {
			result += fmt.Sprintf("  # Warning: %s", joined)
		}
	}
	return result, nil
}

// combine joins two rendered operands with a logical word. Pseudocode
// stacks operands on separate lines without parentheses; the Python
// rendering parenthesizes.
func combine(a, word, b string, p *profile) string {
	if p.pseudocode {
		return a + "\n" + word + "\n" + b
	}
	return fmt.Sprintf("(%s %s %s)", a, word, b)
}

// renderCondition renders one (field, operator, value) condition.
func renderCondition(cond Condition, p *profile) (string, error) {
	if len(cond) < 3 {
		return "", &MalformedDomainError{Len: len(cond)}
	}

	field, value := cond[0], cond[2]
	operator := valueText(cond[1])

	// Tautology idioms (1,'=',1) and (0,'=',1) get fixed phrases, but only
	// in pseudocode; the Python rendering shows the literal condition.
	if p.pseudocode && operator == "=" {
		if isTautNum(field, 1) && isTautNum(value, 1) {
			return "Always True (all records)", nil
		}
		if isTautNum(field, 0) && isTautNum(value, 1) {
			return "Always False (no records)", nil
		}
	}

	// '=?' is Odoo's conditionally-ignored equality: with no value the
	// whole condition is a no-op, otherwise it behaves as '='.
	if operator == "=?" {
		if isUnset(value) {
			return p.ignoredCond, nil
		}
		operator = "="
	}

	opWord, ok := p.compOps[operator]
	if !ok {
		opWord = operator // unknown operators pass through unchanged
	}

	return fmt.Sprintf("(%s %s %s)", fieldText(field, p), opWord, formatValue(value, p)), nil
}

// fieldText renders the field slot. Pseudocode humanizes string fields
// (system labels first); the Python rendering keeps the raw technical name.
// Non-string field slots (tautology sentinels) use their default text.
func fieldText(field Value, p *profile) string {
	str, ok := field.(*StringLiteral)
	if !ok {
		return valueText(field)
	}
	if !p.pseudocode {
		return str.Val
	}
	if label := SystemFieldLabel(str.Val); label != "" {
		return label
	}
	return HumanizeField(str.Val)
}

// formatValue renders the value slot of a condition.
func formatValue(value Value, p *profile) string {
	switch v := value.(type) {
	case *DynamicRef:
		if p.pseudocode {
			return HumanizeDynamicRef(v)
		}
		return v.Path
	case *StringLiteral:
		if p.pseudocode {
			return `"` + v.Val + `"`
		}
		return pyRepr(v.Val)
	case *NumberLiteral:
		return numText(v)
	case *BoolLiteral:
		if v.Val {
			return "True"
		}
		if p.pseudocode {
			return "Not set"
		}
		return "False"
	case *NoneLiteral:
		if p.pseudocode {
			return "Not set"
		}
		return "None"
	case Domain:
		return "[" + formatSequence(v, p) + "]"
	case Condition:
		return "(" + formatSequence(v, p) + ")"
	}
	return valueText(value)
}

func formatSequence(items []Value, p *profile) string {
	formatted := make([]string, len(items))
	for i, item := range items {
		formatted[i] = formatValue(item, p)
	}
	return strings.Join(formatted, ", ")
}

// valueText is the default, profile-independent text of a value.
func valueText(value Value) string {
	switch v := value.(type) {
	case *StringLiteral:
		return v.Val
	case *NumberLiteral:
		return numText(v)
	case *BoolLiteral:
		if v.Val {
			return "True"
		}
		return "False"
	case *NoneLiteral:
		return "None"
	case *DynamicRef:
		return v.Path
	case Domain:
		return "[" + joinText(v) + "]"
	case Condition:
		return "(" + joinText(v) + ")"
	}
	return ""
}

// numText renders a number the way Python's str would: integers bare,
// floats with at least one fractional digit. Decimal.String trims trailing
// zeros, so a float that trimmed down to an integer gets ".0" back.
func numText(v *NumberLiteral) string {
	s := v.Val.String()
	if !v.IsInt && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func joinText(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = valueText(item)
	}
	return strings.Join(parts, ", ")
}

// isTautNum reports whether v is the number n or the string form of n,
// mirroring the loose equality the tautology idiom relies on ("1" and 1.0
// both count as 1).
func isTautNum(v Value, n int64) bool {
	switch val := v.(type) {
	case *NumberLiteral:
		return val.Val.Equal(decimal.NewFromInt(n))
	case *StringLiteral:
		if val.Val != "0" && val.Val != "1" {
			return false
		}
		return val.Val == fmt.Sprintf("%d", n)
	}
	return false
}

// isUnset reports whether v is None or False, the two values '=?' treats
// as "no value supplied".
func isUnset(v Value) bool {
	switch val := v.(type) {
	case *NoneLiteral:
		return true
	case *BoolLiteral:
		return !val.Val
	}
	return false
}

// pyRepr quotes a string the way Python's repr would: single quotes
// preferred, double quotes when the text contains a single quote and no
// double quote, with backslash escapes for non-printables.
func pyRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == quote:
			b.WriteRune('\\')
			b.WriteRune(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
