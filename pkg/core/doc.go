// Package core provides a small, stable facade over the internal scanning
// engine for external integrations. It deliberately re-exports a narrow
// API surface so callers can depend on a stable import path without
// reaching into internal packages.
//
// Example:
//
//	res := core.Scan("DATABASE_URL=postgres://app:hunter2@db/prod", nil)
//	if res.HasSecrets {
//		fmt.Println(res.RedactedContent)
//	}
package core
