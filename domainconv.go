// Package domainconv parses Odoo ORM domain expressions, the prefix-notation
// filter lists such as [('state', '=', 'draft'), '&', ('user_id', '=', user.id)],
// and converts them to human-readable pseudocode or Python-like expressions.
//
// Unlike a plain literal evaluator, the parser understands dynamic
// references (user.id, company_ids) and keeps them apart from quoted
// strings. Parsing and conversion are pure and synchronous; calls are safe
// to run concurrently.
package domainconv

// Version is the library version reported by the CLI.
const Version = "1.0.0"
