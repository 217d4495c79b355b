// Package schema validates parsed Odoo domains against live model
// metadata: field existence, dotted-path traversal, operator/field-type
// compatibility and value-type compatibility.
//
// Metadata comes from a Source, typically an RPC client talking to an Odoo
// server; the package itself performs no I/O beyond what the Source does.
package schema

import "context"

// FieldInfo describes one field of an Odoo model.
type FieldInfo struct {
	// Type is the Odoo field type (char, integer, many2one, ...).
	Type string
	// Relation is the target model for relational fields, empty otherwise.
	Relation string
	// Label is the human-readable field label.
	Label string
}

// Source supplies field metadata per model.
type Source interface {
	// Fields returns the field definitions of a model keyed by field name.
	Fields(ctx context.Context, model string) (map[string]FieldInfo, error)
}

// Level classifies a validation finding.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Finding is one validation result.
type Finding struct {
	Level   Level
	Message string
}

// fieldTypeOperators maps field types to the operators that work with them.
var fieldTypeOperators = map[string]map[string]bool{
	"char":      set("=", "!=", "like", "ilike", "=like", "=ilike", "in", "not in"),
	"text":      set("=", "!=", "like", "ilike", "=like", "=ilike", "in", "not in"),
	"integer":   set("=", "!=", ">", "<", ">=", "<=", "in", "not in"),
	"float":     set("=", "!=", ">", "<", ">=", "<=", "in", "not in"),
	"monetary":  set("=", "!=", ">", "<", ">=", "<=", "in", "not in"),
	"boolean":   set("=", "!="),
	"date":      set("=", "!=", ">", "<", ">=", "<="),
	"datetime":  set("=", "!=", ">", "<", ">=", "<="),
	"many2one":  set("=", "!=", "in", "not in", "child_of", "parent_of"),
	"one2many":  set("in", "not in", "child_of", "parent_of"),
	"many2many": set("in", "not in", "child_of", "parent_of"),
	"selection": set("=", "!=", "in", "not in"),
}

func set(ops ...string) map[string]bool {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// relationalTypes are the field types a dotted path may traverse.
var relationalTypes = map[string]bool{
	"many2one":  true,
	"one2many":  true,
	"many2many": true,
}
