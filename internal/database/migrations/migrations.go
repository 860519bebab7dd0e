// Package migrations registers the schema migrations applied at startup or
// through the db CLI.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds every registered migration in order.
var Migrations = migrate.NewMigrations()
