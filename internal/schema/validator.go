package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/odoo-tools/domainconv"
)

// Validator checks domains against model metadata from a Source.
type Validator struct {
	source Source
}

// NewValidator creates a Validator backed by the given metadata source.
func NewValidator(source Source) *Validator {
	return &Validator{source: source}
}

// ValidateDomain validates every condition of a domain against a model:
// field existence, dotted-path traversal, operator compatibility and value
// type compatibility. Logical-operator markers and loose values are
// skipped, as are tautology sentinels in the field slot.
func (v *Validator) ValidateDomain(ctx context.Context, model string, domain domainconv.Domain) []Finding {
	var findings []Finding

	for _, element := range domain {
		switch el := element.(type) {
		case domainconv.Condition:
			findings = append(findings, v.validateCondition(ctx, model, el)...)
		case domainconv.Domain:
			findings = append(findings, v.ValidateDomain(ctx, model, el)...)
		}
	}

	return findings
}

// validateCondition validates a single (field, operator, value) condition.
func (v *Validator) validateCondition(ctx context.Context, model string, cond domainconv.Condition) []Finding {
	if len(cond) < 3 {
		return []Finding{{Level: LevelError, Message: fmt.Sprintf("invalid condition: expected 3 elements, got %d", len(cond))}}
	}

	field, ok := cond[0].(*domainconv.StringLiteral)
	if !ok {
		// Tautology sentinels like (1, '=', 1) have nothing to check.
		return nil
	}

	var info FieldInfo
	var err error
	if strings.Contains(field.Val, ".") {
		info, err = v.validatePath(ctx, model, field.Val)
	} else {
		info, err = v.validateField(ctx, model, field.Val)
	}
	if err != nil {
		return []Finding{{Level: LevelError, Message: err.Error()}}
	}

	var findings []Finding

	if op, ok := cond[1].(*domainconv.StringLiteral); ok && info.Type != "" {
		if warn := checkOperator(info.Type, op.Val); warn != "" {
			findings = append(findings, Finding{Level: LevelWarning, Message: fmt.Sprintf("Field %q: %s", field.Val, warn)})
		}
	}

	if info.Type != "" {
		if warn := checkValueType(info.Type, cond[2]); warn != "" {
			findings = append(findings, Finding{Level: LevelWarning, Message: fmt.Sprintf("Field %q: %s", field.Val, warn)})
		}
	}

	return findings
}

// validateField checks that a field exists on a model and returns its info.
func (v *Validator) validateField(ctx context.Context, model, field string) (FieldInfo, error) {
	fields, err := v.source.Fields(ctx, model)
	if err != nil {
		return FieldInfo{}, err
	}
	info, ok := fields[field]
	if !ok {
		return FieldInfo{}, fmt.Errorf("field %q does not exist on %s", field, model)
	}
	return info, nil
}

// validatePath walks a dotted field path, requiring every intermediate
// segment to be a relational field, and returns the final segment's info.
func (v *Validator) validatePath(ctx context.Context, model, path string) (FieldInfo, error) {
	segments := strings.Split(path, ".")
	current := model

	for i, segment := range segments {
		info, err := v.validateField(ctx, current, segment)
		if err != nil {
			return FieldInfo{}, err
		}

		if i == len(segments)-1 {
			return info, nil
		}

		if !relationalTypes[info.Type] {
			return FieldInfo{}, fmt.Errorf("cannot traverse %q on %s: not a relational field (type: %s)", segment, current, info.Type)
		}
		if info.Relation == "" {
			return FieldInfo{}, fmt.Errorf("field %q on %s has no relation defined", segment, current)
		}
		current = info.Relation
	}

	return FieldInfo{}, fmt.Errorf("empty field path")
}

// checkOperator returns a warning when an operator is known to misbehave
// with the given field type. Unknown field types pass.
func checkOperator(fieldType, operator string) string {
	allowed, ok := fieldTypeOperators[fieldType]
	if !ok {
		return ""
	}
	if allowed[operator] {
		return ""
	}
	return fmt.Sprintf("operator %q may not work correctly with %s fields", operator, fieldType)
}

// checkValueType returns a warning when a value's type does not match what
// the field type expects. Dynamic references cannot be checked at parse
// time and always pass; list values are checked element by element.
func checkValueType(fieldType string, value domainconv.Value) string {
	switch val := value.(type) {
	case *domainconv.DynamicRef:
		return ""
	case domainconv.Domain:
		for _, item := range val {
			if _, ok := item.(*domainconv.DynamicRef); ok {
				continue
			}
			if warn := checkValueType(fieldType, item); warn != "" {
				return fmt.Sprintf("list contains value with incompatible type: %s", warn)
			}
		}
		return ""
	}

	expected, ok := expectedValueKinds(fieldType)
	if !ok {
		return ""
	}
	if matchesKind(value, fieldType) {
		return ""
	}
	return fmt.Sprintf("value type %q may not match %s field (expected: %s)", kindName(value), fieldType, expected)
}

// expectedValueKinds names the value kinds a field type accepts, for
// warning messages. The second return is false for unknown field types.
func expectedValueKinds(fieldType string) (string, bool) {
	switch fieldType {
	case "char", "text", "selection", "date", "datetime":
		return "string", true
	case "integer":
		return "integer", true
	case "float", "monetary":
		return "integer, float", true
	case "boolean":
		return "boolean", true
	case "many2one":
		return "integer, boolean, None", true
	case "one2many", "many2many":
		return "list", true
	}
	return "", false
}

func matchesKind(value domainconv.Value, fieldType string) bool {
	switch fieldType {
	case "char", "text", "selection", "date", "datetime":
		_, ok := value.(*domainconv.StringLiteral)
		return ok
	case "integer":
		num, ok := value.(*domainconv.NumberLiteral)
		return ok && num.IsInt
	case "float", "monetary":
		_, ok := value.(*domainconv.NumberLiteral)
		return ok
	case "boolean":
		_, ok := value.(*domainconv.BoolLiteral)
		return ok
	case "many2one":
		switch num := value.(type) {
		case *domainconv.NumberLiteral:
			return num.IsInt
		case *domainconv.BoolLiteral, *domainconv.NoneLiteral:
			return true
		}
		return false
	case "one2many", "many2many":
		_, ok := value.(domainconv.Domain)
		return ok
	}
	return true
}

// kindName names a value's kind for warning messages.
func kindName(value domainconv.Value) string {
	switch v := value.(type) {
	case *domainconv.StringLiteral:
		return "string"
	case *domainconv.NumberLiteral:
		if v.IsInt {
			return "integer"
		}
		return "float"
	case *domainconv.BoolLiteral:
		return "boolean"
	case *domainconv.NoneLiteral:
		return "None"
	case *domainconv.DynamicRef:
		return "dynamic reference"
	case domainconv.Domain:
		return "list"
	case domainconv.Condition:
		return "tuple"
	}
	return "unknown"
}
