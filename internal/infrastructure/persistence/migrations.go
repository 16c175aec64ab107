package persistence

import "embed"

// Migrations holds the schema for the submission store and the loan read model.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that golang-migrate reads.
const MigrationsDir = "migrations"
