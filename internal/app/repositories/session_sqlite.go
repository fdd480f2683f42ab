package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/logger"
)

// SQLiteSessionRepository stores sessions in an SQLite database.
// Timestamps are kept as unix milliseconds.
type SQLiteSessionRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewSQLiteSessionRepository creates a new SQLiteSessionRepository
func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new session
func (r *SQLiteSessionRepository) Create(ctx context.Context, session *models.Session) error {
	term1, err := encodeCourses(session.Term1)
	if err != nil {
		return err
	}
	term2, err := encodeCourses(session.Term2)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(session.ID, string(session.ActiveView), term1, term2, session.LastCourseID,
			session.CreatedAt.UnixMilli(), session.UpdatedAt.UnixMilli(), session.ExpiresAt.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrSessionAlreadyExists
		}
		logger.Error().Err(err).Str("sessionID", session.ID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a live session by ID
func (r *SQLiteSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query, args, err := r.sb.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": time.Now().UnixMilli()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var (
		session                      models.Session
		view, term1, term2           string
		createdAt, updatedAt, expiry int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&session.ID, &view, &term1, &term2, &session.LastCourseID, &createdAt, &updatedAt, &expiry,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Str("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session by ID: %w", err)
	}

	session.ActiveView = domain.View(view)
	session.CreatedAt = time.UnixMilli(createdAt).UTC()
	session.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	session.ExpiresAt = time.UnixMilli(expiry).UTC()
	if session.Term1, err = decodeCourses([]byte(term1)); err != nil {
		return nil, err
	}
	if session.Term2, err = decodeCourses([]byte(term2)); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update writes the view and course lists of a session
func (r *SQLiteSessionRepository) Update(ctx context.Context, session *models.Session) error {
	term1, err := encodeCourses(session.Term1)
	if err != nil {
		return err
	}
	term2, err := encodeCourses(session.Term2)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Update(sessionsTable).
		Set("active_view", string(session.ActiveView)).
		Set("term1_courses", term1).
		Set("term2_courses", term2).
		Set("last_course_id", session.LastCourseID).
		Set("updated_at", session.UpdatedAt.UnixMilli()).
		Set("expires_at", session.ExpiresAt.UnixMilli()).
		Where(squirrel.Eq{"id": session.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	return r.execAffecting(ctx, query, args, session.ID)
}

// Delete removes a session
func (r *SQLiteSessionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(sessionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}
	return r.execAffecting(ctx, query, args, id)
}

// DeleteExpired purges sessions whose expiry is at or before now
func (r *SQLiteSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.sb.Delete(sessionsTable).Where(squirrel.LtOrEq{"expires_at": now.UnixMilli()}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge sessions query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// execAffecting runs a statement that must touch exactly the given session
func (r *SQLiteSessionRepository) execAffecting(ctx context.Context, query string, args []interface{}, id string) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error executing session statement")
		return fmt.Errorf("error writing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}
