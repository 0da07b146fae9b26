// Package migrations embeds the SQL schema files so the server binary can
// bootstrap a fresh database without external assets.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
