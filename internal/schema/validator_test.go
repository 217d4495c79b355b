package schema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/odoo-tools/domainconv"
)

// fakeSource serves canned field metadata per model.
type fakeSource struct {
	models map[string]map[string]FieldInfo
}

func (s *fakeSource) Fields(ctx context.Context, model string) (map[string]FieldInfo, error) {
	fields, ok := s.models[model]
	if !ok {
		return nil, fmt.Errorf("model %q not found or access denied", model)
	}
	return fields, nil
}

func newTestSource() *fakeSource {
	return &fakeSource{models: map[string]map[string]FieldInfo{
		"res.partner": {
			"name":        {Type: "char", Label: "Name"},
			"active":      {Type: "boolean", Label: "Active"},
			"credit":      {Type: "float", Label: "Total Receivable"},
			"category_id": {Type: "many2many", Relation: "res.partner.category", Label: "Tags"},
			"company_id":  {Type: "many2one", Relation: "res.company", Label: "Company"},
			"state_id":    {Type: "many2one", Relation: "res.country.state", Label: "State"},
			"comment":     {Type: "text", Label: "Notes"},
		},
		"res.company": {
			"name":        {Type: "char", Label: "Company Name"},
			"currency_id": {Type: "many2one", Relation: "res.currency", Label: "Currency"},
		},
		"res.currency": {
			"name": {Type: "char", Label: "Currency"},
		},
		"res.partner.category": {
			"name": {Type: "char", Label: "Tag Name"},
		},
	}}
}

func validate(t *testing.T, source string) []Finding {
	t.Helper()
	domain, err := domainconv.ParseDomain(source)
	if err != nil {
		t.Fatalf("ParseDomain() error: %v", err)
	}
	return NewValidator(newTestSource()).ValidateDomain(context.Background(), "res.partner", domain)
}

func TestValidateDomainClean(t *testing.T) {
	sources := []string{
		"[('name', '=', 'Acme')]",
		"[('active', '=', True)]",
		"[('credit', '>', 100.0)]",
		"[('company_id', '=', 1)]",
		"[('company_id', '=', False)]",
		"[('category_id', 'in', [1, 2])]",
		"[('company_id.currency_id.name', '=', 'EUR')]",
		"['|', ('name', 'ilike', 'acme'), ('comment', '!=', False)]",
		"[(1, '=', 1)]",
		"[('company_id', '=', user.company_id.id)]",
		"[]",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			findings := validate(t, source)
			for _, finding := range findings {
				if finding.Level == LevelError {
					t.Errorf("unexpected error finding: %s", finding.Message)
				}
			}
		})
	}
}

func TestValidateDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "Unknown field",
			source:  "[('bogus', '=', 1)]",
			wantMsg: `field "bogus" does not exist on res.partner`,
		},
		{
			name:    "Unknown field in dotted path",
			source:  "[('company_id.bogus', '=', 1)]",
			wantMsg: `field "bogus" does not exist on res.company`,
		},
		{
			name:    "Traversal through non-relational field",
			source:  "[('name.id', '=', 1)]",
			wantMsg: `cannot traverse "name" on res.partner: not a relational field (type: char)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := validate(t, tt.source)
			if len(findings) != 1 {
				t.Fatalf("got %d findings, expected 1: %v", len(findings), findings)
			}
			if findings[0].Level != LevelError {
				t.Errorf("level = %s, expected error", findings[0].Level)
			}
			if findings[0].Message != tt.wantMsg {
				t.Errorf("got %q, expected %q", findings[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateDomainWarnings(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantSub string
	}{
		{
			name:    "Pattern operator on boolean field",
			source:  "[('active', 'ilike', 'yes')]",
			wantSub: `operator "ilike" may not work correctly with boolean fields`,
		},
		{
			name:    "Ordering operator on many2one field",
			source:  "[('company_id', '>', 5)]",
			wantSub: `operator ">" may not work correctly with many2one fields`,
		},
		{
			name:    "String value on float field",
			source:  "[('credit', '>', 'high')]",
			wantSub: `value type "string" may not match float field`,
		},
		{
			name:    "Float value on boolean field",
			source:  "[('active', '=', 1.5)]",
			wantSub: `value type "float" may not match boolean field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := validate(t, tt.source)
			found := false
			for _, finding := range findings {
				if finding.Level == LevelWarning && strings.Contains(finding.Message, tt.wantSub) {
					found = true
				}
				if finding.Level == LevelError {
					t.Errorf("unexpected error finding: %s", finding.Message)
				}
			}
			if !found {
				t.Errorf("missing warning containing %q in %v", tt.wantSub, findings)
			}
		})
	}
}

func TestValidateConditionArity(t *testing.T) {
	domain := domainconv.Domain{domainconv.Condition{domainconv.Str("name"), domainconv.Str("=")}}
	findings := NewValidator(newTestSource()).ValidateDomain(context.Background(), "res.partner", domain)

	if len(findings) != 1 || findings[0].Level != LevelError {
		t.Fatalf("got %v, expected one error finding", findings)
	}
	if findings[0].Message != "invalid condition: expected 3 elements, got 2" {
		t.Errorf("got %q", findings[0].Message)
	}
}

func TestValidateNestedSubDomain(t *testing.T) {
	findings := validate(t, "['|', ('name', '=', 'x'), [('bogus', '=', 1)]]")

	if len(findings) != 1 || findings[0].Level != LevelError {
		t.Fatalf("got %v, expected one error finding", findings)
	}
}

func TestValidateDynamicRefValuePasses(t *testing.T) {
	findings := validate(t, "[('category_id', 'in', company_ids)]")
	for _, finding := range findings {
		t.Errorf("unexpected finding: %s", finding.Message)
	}
}
