package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/verdant/plantcare/internal/domain"
)

const plantColumns = `id, user_id, name, species, location, edible, last_inspection_at, created_at, updated_at`

// PlantRepository handles plant data access operations.
type PlantRepository struct {
	db *sqlx.DB
}

// NewPlantRepository creates a new PlantRepository.
func NewPlantRepository(db *sqlx.DB) *PlantRepository {
	return &PlantRepository{db: db}
}

// FindByID retrieves a plant by its ID.
func (r *PlantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error) {
	var p domain.Plant
	err := r.db.GetContext(ctx, &p,
		`SELECT `+plantColumns+` FROM plants WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find plant %s: %w", id, err)
	}
	return &p, nil
}

// ListByUser returns all plants belonging to a user.
func (r *PlantRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Plant, error) {
	var plants []domain.Plant
	err := r.db.SelectContext(ctx, &plants,
		`SELECT `+plantColumns+` FROM plants WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list plants for user %s: %w", userID, err)
	}
	return plants, nil
}

// Create inserts a new plant.
func (r *PlantRepository) Create(ctx context.Context, p *domain.Plant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plants (id, user_id, name, species, location, edible, last_inspection_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.UserID, p.Name, p.Species, p.Location, p.Edible, p.LastInspectionAt,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create plant: %w", err)
	}
	return nil
}

// Delete removes a plant. Reminder rows cascade at the database level; the
// service retracts their notifications before calling this.
func (r *PlantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plant %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plant %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
