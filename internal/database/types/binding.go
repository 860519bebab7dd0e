// Package types defines the persistent records shared between the database
// models and their callers.
package types

// UserBinding maps a Discord user to their Last.fm username. A binding is
// created or overwritten on explicit registration and never auto-deleted.
type UserBinding struct {
	UserID   uint64 `bun:",pk,notnull"`
	Username string `bun:",notnull"`
}
