package postgres

import "embed"

// Migrations holds the schema migrations, applied with
// pkg/postgres.RunEmbeddedMigrations(dsn, Migrations, MigrationsDir).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations holding the SQL files.
const MigrationsDir = "migrations"
