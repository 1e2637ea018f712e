package repository

import (
	"context"
	"errors"
	"fmt"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	// Create 在同一個 transaction 內建立活動、主辦人參與紀錄與酒款順序
	Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Event, error)
	// FindByEventID 回傳完整活動：酒款(依順序)、參與者及其評分
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Event, error)
	// AddParticipant 已是參與者時回傳 false
	AddParticipant(ctx context.Context, id int, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id int, status model.EventStatus) error
	UpdateInviteCode(ctx context.Context, id int, code string) error
	AppendWine(ctx context.Context, id int, wineID int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, name, description, organizer_id, status, invite_code,
		date_start, date_end, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Name,
		&event.Description,
		&event.OrganizerID,
		&event.Status,
		&event.InviteCode,
		&event.DateStart,
		&event.DateEnd,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Wines = make([]*model.Wine, 0)
	event.Participants = make([]*model.Participant, 0)
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO events (event_id, name, description, organizer_id, status, invite_code, date_start, date_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	event, err := scanEvent(tx.QueryRow(ctx, query,
		uuid.New(), params.Name, params.Description, params.OrganizerID,
		model.EventStatusOpen, params.InviteCode, params.DateStart, params.DateEnd,
	))
	if err != nil {
		if violatedConstraint(err) == "events_invite_code_key" {
			return nil, apperrors.ErrInviteCodeConflict
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`,
		event.ID, params.OrganizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add organizer: %w", err)
	}

	for position, wineID := range params.WineIDs {
		var id int
		err := tx.QueryRow(ctx, `SELECT id FROM wines WHERE wine_id = $1`, wineID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrWineNotFound
			}
			return nil, err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO event_wines (event_id, wine_id, position) VALUES ($1, $2, $3)`,
			event.ID, id, position,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, apperrors.ErrWineAlreadyInEvent
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.FindByEventID(ctx, event.EventID)
}

func (r *EventRepositoryImpl) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Event, error) {
	query := `
		SELECT e.id, e.event_id, e.name, e.description, e.organizer_id, e.status, e.invite_code,
		       e.date_start, e.date_end, e.created_at, e.updated_at
		FROM events e
		JOIN event_participants ep ON ep.event_id = e.id
		WHERE ep.user_id = $1
		ORDER BY e.created_at DESC, e.id DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	if err := r.loadWines(ctx, event); err != nil {
		return nil, err
	}
	if err := r.loadParticipants(ctx, event); err != nil {
		return nil, err
	}
	if err := r.loadEvaluations(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) loadWines(ctx context.Context, event *model.Event) error {
	query := `
		SELECT w.id, w.wine_id, w.owner_id, w.name, w.country, w.grape, w.harvest, w.image, w.created_at
		FROM event_wines ew
		JOIN wines w ON w.id = ew.wine_id
		WHERE ew.event_id = $1
		ORDER BY ew.position
	`
	rows, err := r.pool.Query(ctx, query, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		wine, err := scanWine(rows)
		if err != nil {
			return err
		}
		event.Wines = append(event.Wines, wine)
	}
	return rows.Err()
}

func (r *EventRepositoryImpl) loadParticipants(ctx context.Context, event *model.Event) error {
	query := `
		SELECT u.id, u.name, u.is_guest, ep.joined_at
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1
		ORDER BY ep.joined_at, u.name
	`
	rows, err := r.pool.Query(ctx, query, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p := &model.Participant{Evaluations: make([]*model.Evaluation, 0)}
		if err := rows.Scan(&p.ID, &p.Name, &p.IsGuest, &p.JoinedAt); err != nil {
			return err
		}
		event.Participants = append(event.Participants, p)
	}
	return rows.Err()
}

func (r *EventRepositoryImpl) loadEvaluations(ctx context.Context, event *model.Event) error {
	query := `
		SELECT ev.id, w.wine_id, ev.user_id, ev.aroma, ev.color, ev.flavor, ev.notes, ev.created_at
		FROM evaluations ev
		JOIN wines w ON w.id = ev.wine_id
		WHERE ev.event_id = $1
		ORDER BY ev.created_at, ev.id
	`
	rows, err := r.pool.Query(ctx, query, event.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byUser := make(map[uuid.UUID]*model.Participant, len(event.Participants))
	for _, p := range event.Participants {
		byUser[p.ID] = p
	}

	for rows.Next() {
		e := &model.Evaluation{EventID: event.EventID}
		if err := rows.Scan(&e.ID, &e.WineID, &e.UserID, &e.Aroma, &e.Color, &e.Flavor, &e.Notes, &e.CreatedAt); err != nil {
			return err
		}
		if p, ok := byUser[e.UserID]; ok {
			p.Evaluations = append(p.Evaluations, e)
		}
	}
	return rows.Err()
}

func (r *EventRepositoryImpl) FindByInviteCode(ctx context.Context, code string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE invite_code = $1
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInviteCodeNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) AddParticipant(ctx context.Context, id int, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperrors.ErrEventNotFound
		}
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *EventRepositoryImpl) UpdateStatus(ctx context.Context, id int, status model.EventStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidInput
	}
	query := `
		UPDATE events
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) UpdateInviteCode(ctx context.Context, id int, code string) error {
	query := `
		UPDATE events
		SET invite_code = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, code, id)
	if err != nil {
		if violatedConstraint(err) == "events_invite_code_key" {
			return apperrors.ErrInviteCodeConflict
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) AppendWine(ctx context.Context, id int, wineID int) error {
	query := `
		INSERT INTO event_wines (event_id, wine_id, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0)
		FROM event_wines
		WHERE event_id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, wineID)
	if err != nil {
		if violatedConstraint(err) == "event_wines_pkey" {
			return apperrors.ErrWineAlreadyInEvent
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return err
	}
	return nil
}
