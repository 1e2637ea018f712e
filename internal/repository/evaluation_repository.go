package repository

import (
	"context"
	"errors"
	"fmt"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EvaluationRepository interface {
	// Create 同一活動、酒款、使用者只能有一筆，重複時回傳 ErrAlreadyRated
	Create(ctx context.Context, eventID int, wineID int, evaluation *model.Evaluation) (*model.Evaluation, error)
	FindByID(ctx context.Context, id int) (*model.Evaluation, error)
	// RankingByEvent 依平均分數排序活動中的所有酒款，未被評分的酒款排在最後
	RankingByEvent(ctx context.Context, eventID int) ([]*model.RankingEntry, error)
}

type EvaluationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEvaluationRepository(pool *pgxpool.Pool) EvaluationRepository {
	return &EvaluationRepositoryImpl{
		pool: pool,
	}
}

func (r *EvaluationRepositoryImpl) Create(ctx context.Context, eventID int, wineID int, evaluation *model.Evaluation) (*model.Evaluation, error) {
	query := `
		INSERT INTO evaluations (event_id, wine_id, user_id, aroma, color, flavor, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	created := *evaluation
	err := r.pool.QueryRow(ctx, query,
		eventID, wineID, evaluation.UserID,
		evaluation.Aroma, evaluation.Color, evaluation.Flavor, evaluation.Notes,
	).Scan(
		&created.ID,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyRated
		}
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	return &created, nil
}

func (r *EvaluationRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Evaluation, error) {
	query := `
		SELECT ev.id, e.event_id, w.wine_id, ev.user_id, ev.aroma, ev.color, ev.flavor, ev.notes, ev.created_at
		FROM evaluations ev
		JOIN events e ON e.id = ev.event_id
		JOIN wines w ON w.id = ev.wine_id
		WHERE ev.id = $1
	`

	var e model.Evaluation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.EventID,
		&e.WineID,
		&e.UserID,
		&e.Aroma,
		&e.Color,
		&e.Flavor,
		&e.Notes,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEvaluationNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EvaluationRepositoryImpl) RankingByEvent(ctx context.Context, eventID int) ([]*model.RankingEntry, error) {
	query := `
		SELECT w.id, w.wine_id, w.owner_id, w.name, w.country, w.grape, w.harvest, w.image, w.created_at,
		       COALESCE(AVG((ev.aroma + ev.color + ev.flavor) / 3), 0) AS average_rating,
		       COUNT(ev.id) AS evaluation_count
		FROM event_wines ew
		JOIN wines w ON w.id = ew.wine_id
		LEFT JOIN evaluations ev ON ev.event_id = ew.event_id AND ev.wine_id = ew.wine_id
		WHERE ew.event_id = $1
		GROUP BY w.id, ew.position
		ORDER BY COUNT(ev.id) = 0, average_rating DESC, evaluation_count DESC, ew.position
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.RankingEntry, 0)
	for rows.Next() {
		var wine model.Wine
		var entry model.RankingEntry
		var count int64
		err := rows.Scan(
			&wine.ID,
			&wine.WineID,
			&wine.OwnerID,
			&wine.Name,
			&wine.Country,
			&wine.Grape,
			&wine.Harvest,
			&wine.Image,
			&wine.CreatedAt,
			&entry.AverageRating,
			&count,
		)
		if err != nil {
			return nil, err
		}
		entry.Wine = &wine
		entry.EvaluationCount = int(count)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
