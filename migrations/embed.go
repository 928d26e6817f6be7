package migrations

import "embed"

// Files holds the forward-only SQLite schema. Postgres deployments use gorm
// AutoMigrate instead.
//
//go:embed *.sql
var Files embed.FS
