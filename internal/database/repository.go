package database

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/database/models"
)

// Repository provides access to all database models.
type Repository struct {
	binding *models.BindingModel
	crown   *models.CrownModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		binding: models.NewBinding(db, logger),
		crown:   models.NewCrown(db, logger),
	}
}

// Binding returns the user registry model.
func (r *Repository) Binding() *models.BindingModel {
	return r.binding
}

// Crown returns the crown ledger model.
func (r *Repository) Crown() *models.CrownModel {
	return r.crown
}
