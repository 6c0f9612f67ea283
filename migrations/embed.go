// Package migrations embeds the SQL schema applied with goose.
package migrations

import "embed"

// FS SQL-миграции схемы
//
//go:embed *.sql
var FS embed.FS
