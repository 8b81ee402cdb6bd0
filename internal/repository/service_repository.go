package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

const serviceColumns = `id, barber_id, name, description, duration_minutes, price, active, created_at, updated_at`

// ServiceRepository persists the barber service catalogue.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository constructs a ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ListByBarber lists the barber's services by name.
func (r *ServiceRepository) ListByBarber(ctx context.Context, barberID string, activeOnly bool) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE barber_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY name`
	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query, barberID); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// FindByID returns a service by id.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	var svc models.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &svc, nil
}

// Create inserts a service.
func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	now := time.Now().UTC()
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	svc.CreatedAt = now
	svc.UpdatedAt = now
	const query = `INSERT INTO services (id, barber_id, name, description, duration_minutes, price, active, created_at, updated_at)
		VALUES (:id, :barber_id, :name, :description, :duration_minutes, :price, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, svc); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// Update saves name, description, duration, price and active flag.
func (r *ServiceRepository) Update(ctx context.Context, svc *models.Service) error {
	svc.UpdatedAt = time.Now().UTC()
	const query = `UPDATE services SET name = :name, description = :description, duration_minutes = :duration_minutes,
		price = :price, active = :active, updated_at = :updated_at WHERE id = :id AND barber_id = :barber_id`
	res, err := r.db.NamedExecContext(ctx, query, svc)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return expectAffected(res)
}

// Deactivate hides a service from booking while keeping past appointments intact.
func (r *ServiceRepository) Deactivate(ctx context.Context, barberID, id string) error {
	const query = `UPDATE services SET active = FALSE, updated_at = $3 WHERE id = $1 AND barber_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, barberID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate service: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
