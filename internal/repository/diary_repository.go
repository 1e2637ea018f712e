package repository

import (
	"context"
	"fmt"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DiaryRepository interface {
	// Create evaluation_id 重複時回傳 ErrDiaryEntryExists
	Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error)
}

type DiaryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewDiaryRepository(pool *pgxpool.Pool) DiaryRepository {
	return &DiaryRepositoryImpl{
		pool: pool,
	}
}

func (r *DiaryRepositoryImpl) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	query := `
		INSERT INTO diary_entries (
			user_id, event_id, wine_id, evaluation_id,
			wine_name, country, grape, harvest, aroma, color, flavor, notes
		)
		VALUES (
			$1,
			(SELECT id FROM events WHERE event_id = $2),
			(SELECT id FROM wines WHERE wine_id = $3),
			$4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING id, created_at
	`

	created := *entry
	err := r.pool.QueryRow(ctx, query,
		entry.UserID, entry.EventID, entry.WineID, entry.EvaluationID,
		entry.WineName, entry.Country, entry.Grape, entry.Harvest,
		entry.Aroma, entry.Color, entry.Flavor, entry.Notes,
	).Scan(
		&created.ID,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDiaryEntryExists
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create diary entry: %w", err)
	}
	return &created, nil
}

func (r *DiaryRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error) {
	query := `
		SELECT d.id, d.user_id, e.event_id, w.wine_id, d.evaluation_id,
		       d.wine_name, d.country, d.grape, d.harvest, d.aroma, d.color, d.flavor, d.notes, d.created_at
		FROM diary_entries d
		LEFT JOIN events e ON e.id = d.event_id
		LEFT JOIN wines w ON w.id = d.wine_id
		WHERE d.user_id = $1
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.DiaryEntry, 0)
	for rows.Next() {
		var d model.DiaryEntry
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.EventID,
			&d.WineID,
			&d.EvaluationID,
			&d.WineName,
			&d.Country,
			&d.Grape,
			&d.Harvest,
			&d.Aroma,
			&d.Color,
			&d.Flavor,
			&d.Notes,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
