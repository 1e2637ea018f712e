package repository

import (
	"context"
	"errors"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WineRepository interface {
	Create(ctx context.Context, wine *model.Wine) (*model.Wine, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error)
	FindByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error)
}

type WineRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWineRepository(pool *pgxpool.Pool) WineRepository {
	return &WineRepositoryImpl{
		pool: pool,
	}
}

const wineColumns = `id, wine_id, owner_id, name, country, grape, harvest, image, created_at`

func scanWine(row pgx.Row) (*model.Wine, error) {
	var wine model.Wine
	err := row.Scan(
		&wine.ID,
		&wine.WineID,
		&wine.OwnerID,
		&wine.Name,
		&wine.Country,
		&wine.Grape,
		&wine.Harvest,
		&wine.Image,
		&wine.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wine, nil
}

func (r *WineRepositoryImpl) Create(ctx context.Context, wine *model.Wine) (*model.Wine, error) {
	query := `
		INSERT INTO wines (wine_id, owner_id, name, country, grape, harvest, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + wineColumns

	created, err := scanWine(r.pool.QueryRow(ctx, query,
		wine.WineID, wine.OwnerID, wine.Name, wine.Country, wine.Grape, wine.Harvest, wine.Image,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *WineRepositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error) {
	query := `
		SELECT ` + wineColumns + `
		FROM wines
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wines := make([]*model.Wine, 0)
	for rows.Next() {
		wine, err := scanWine(rows)
		if err != nil {
			return nil, err
		}
		wines = append(wines, wine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return wines, nil
}

func (r *WineRepositoryImpl) FindByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error) {
	query := `
		SELECT ` + wineColumns + `
		FROM wines
		WHERE wine_id = $1
	`
	wine, err := scanWine(r.pool.QueryRow(ctx, query, wineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWineNotFound
		}
		return nil, err
	}
	return wine, nil
}
