// Package catalog embeds the goose migrations for the items table, one
// directory per SQL dialect.
package catalog

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var MigrationsFS embed.FS
