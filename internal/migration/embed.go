package migration

import "embed"

const migrationsDir = "sql"

//go:embed sql
var embeddedMigrations embed.FS
