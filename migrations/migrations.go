// Package migrations embeds the versioned schema scripts for each supported
// SQL dialect. Scripts live under a directory named after the dialect.
package migrations

import "embed"

// FS holds sqlite/*.sql and postgres/*.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
