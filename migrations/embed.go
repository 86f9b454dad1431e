// AngelaMos | 2026
// embed.go

// Package migrations holds the versioned SQL schema for the contacts
// table. Files follow goose naming and annotations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
