package domainconv

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Labels Odoo gives its magic system fields in the UI.
var systemFieldLabels = map[string]string{
	"create_uid":   "Created By",
	"write_uid":    "Last Updated By",
	"create_date":  "Created On",
	"write_date":   "Last Updated On",
	"active":       "Active",
	"id":           "ID",
	"display_name": "Display Name",
}

// SystemFieldLabel returns the UI label for an Odoo system field, or ""
// when the field is not one of the magic system fields.
func SystemFieldLabel(fieldName string) string {
	return systemFieldLabels[fieldName]
}

func titleWord(word string) string {
	// A cases.Caser carries transformer state, so a fresh one is built per
	// word to keep humanization safe for concurrent callers.
	return cases.Title(language.English).String(word)
}

// humanizeSegment humanizes a single path segment (no dots): a trailing
// _ids suffix is stripped and the base pluralized, a trailing _id suffix is
// stripped, and the remainder is title-cased with underscores as word
// boundaries.
func humanizeSegment(segment string) string {
	if segment == "" {
		return ""
	}

	if base, ok := strings.CutSuffix(segment, "_ids"); ok {
		humanized := humanizeWords(base)
		// company -> Companies, but day -> Days (vowel before the y)
		if len(humanized) >= 2 && humanized[len(humanized)-1] == 'y' && !isVowel(humanized[len(humanized)-2]) {
			return humanized[:len(humanized)-1] + "ies"
		}
		return humanized + "s"
	}

	if base, ok := strings.CutSuffix(segment, "_id"); ok && base != "" {
		return humanizeWords(base)
	}

	return humanizeWords(segment)
}

// humanizeWords title-cases underscore-separated words, dropping empty
// parts from repeated underscores.
func humanizeWords(s string) string {
	var words []string
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		words = append(words, titleWord(part))
	}
	return strings.Join(words, " ")
}

func isVowel(c byte) bool {
	switch c | 0x20 {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// HumanizeField converts a technical field name or dotted path into a
// human-readable label. Every segment of a dotted path except the last is
// given a possessive form:
//
//	HumanizeField("privacy_visibility")  // "Privacy Visibility"
//	HumanizeField("company_id")          // "Company"
//	HumanizeField("group_ids")           // "Groups"
//	HumanizeField("project_id.name")     // "Project's Name"
func HumanizeField(fieldName string) string {
	if fieldName == "" {
		return ""
	}

	segments := strings.Split(fieldName, ".")
	if len(segments) == 1 {
		return humanizeSegment(segments[0])
	}

	parts := make([]string, len(segments))
	for i, segment := range segments {
		humanized := humanizeSegment(segment)
		if i < len(segments)-1 {
			humanized += "'s"
		}
		parts[i] = humanized
	}
	return strings.Join(parts, " ")
}

// HumanizeDynamicRef renders a dynamic reference for pseudocode output.
// Only user.* references are rewritten:
//
//	user.id             -> "current user"
//	user.partner_id.id  -> "current user's Partner"
//	user.company_ids    -> "current user's Companies"
//
// Anything else comes back unchanged.
func HumanizeDynamicRef(ref *DynamicRef) string {
	path := ref.Path

	if !strings.HasPrefix(path, "user.") {
		return path
	}

	if path == "user.id" {
		return "current user"
	}

	parts := strings.Split(strings.TrimPrefix(path, "user."), ".")

	// user.partner_id.id reads as an access to the relation named by the
	// segment before the trailing id/ids; only that one segment is
	// humanized, intermediate hops are ignored.
	if len(parts) >= 2 && (parts[len(parts)-1] == "id" || parts[len(parts)-1] == "ids") {
		return "current user's " + humanizeSegment(parts[len(parts)-2])
	}
	return "current user's " + humanizeSegment(parts[0])
}
