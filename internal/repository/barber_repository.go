package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

const barberColumns = `id, slug, display_name, shop_name, phone, active, created_at, updated_at`

// BarberRepository reads barber tenants.
type BarberRepository struct {
	db *sqlx.DB
}

// NewBarberRepository constructs a BarberRepository.
func NewBarberRepository(db *sqlx.DB) *BarberRepository {
	return &BarberRepository{db: db}
}

// FindByID returns the barber with the given id.
func (r *BarberRepository) FindByID(ctx context.Context, id string) (*models.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE id = $1`
	var barber models.Barber
	if err := r.db.GetContext(ctx, &barber, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find barber by id: %w", err)
	}
	return &barber, nil
}

// FindBySlug resolves the public booking page slug.
func (r *BarberRepository) FindBySlug(ctx context.Context, slug string) (*models.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE slug = $1`
	var barber models.Barber
	if err := r.db.GetContext(ctx, &barber, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find barber by slug: %w", err)
	}
	return &barber, nil
}
