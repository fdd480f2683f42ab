package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/dberrors"
	"github.com/yigit/gpacalc/internal/pkg/logger"
)

// PostgresSessionRepository stores sessions in PostgreSQL
type PostgresSessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	term1, err := encodeCourses(session.Term1)
	if err != nil {
		return err
	}
	term2, err := encodeCourses(session.Term2)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(session.ID, string(session.ActiveView), term1, term2, session.LastCourseID,
			session.CreatedAt, session.UpdatedAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSessionAlreadyExists
		}
		logger.Error().Err(err).Str("sessionID", session.ID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a live session by ID
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var (
		session      models.Session
		view         string
		term1, term2 []byte
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.ID, &view, &term1, &term2, &session.LastCourseID,
		&session.CreatedAt, &session.UpdatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Str("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session by ID: %w", err)
	}

	session.ActiveView = domain.View(view)
	if session.Term1, err = decodeCourses(term1); err != nil {
		return nil, err
	}
	if session.Term2, err = decodeCourses(term2); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update writes the view and course lists of a session
func (r *PostgresSessionRepository) Update(ctx context.Context, session *models.Session) error {
	term1, err := encodeCourses(session.Term1)
	if err != nil {
		return err
	}
	term2, err := encodeCourses(session.Term2)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update(sessionsTable).
		Set("active_view", string(session.ActiveView)).
		Set("term1_courses", term1).
		Set("term2_courses", term2).
		Set("last_course_id", session.LastCourseID).
		Set("updated_at", session.UpdatedAt).
		Set("expires_at", session.ExpiresAt).
		Where(squirrel.Eq{"id": session.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update session SQL")
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", session.ID).Msg("Error executing update session query")
		return fmt.Errorf("error updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete(sessionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error executing delete session query")
		return fmt.Errorf("error deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired purges sessions whose expiry is at or before now
func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete(sessionsTable).Where(squirrel.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge sessions query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
