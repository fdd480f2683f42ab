package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/app/repositories"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/grading"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/validation"
	"github.com/yigit/gpacalc/internal/pkg/websocket"
	"github.com/yigit/gpacalc/internal/seed"
)

const lockStripes = 64

// TokenIssuer signs the bearer token handed out with a new session
type TokenIssuer interface {
	GenerateToken(sessionID string, expiresAt time.Time) (string, error)
}

// ResultPublisher receives a message whenever a session's result may have changed
type ResultPublisher interface {
	Publish(message *websocket.Message)
}

// SessionState is a session together with the freshly computed result of its active view
type SessionState struct {
	Session *models.Session
	Result  grading.CalculationResult
}

// ResultUpdate is the payload pushed to live subscribers
type ResultUpdate struct {
	View   domain.View               `json:"view"`
	Result grading.CalculationResult `json:"result"`
	Chart  []grading.ChartPoint      `json:"chart"`
}

// CalculatorService defines the operations on a calculator session.
// Operations on one session never interleave.
type CalculatorService interface {
	CreateSession(ctx context.Context) (*SessionState, string, error)
	GetSession(ctx context.Context, sessionID string) (*SessionState, error)
	EndSession(ctx context.Context, sessionID string) error
	SetView(ctx context.Context, sessionID string, view domain.View) (*SessionState, error)
	AddCourse(ctx context.Context, sessionID string, term domain.View) (*SessionState, domain.Course, error)
	UpdateCourse(ctx context.Context, sessionID string, term domain.View, courseID int64, edit domain.Edit) (*SessionState, bool, error)
	RemoveCourse(ctx context.Context, sessionID string, term domain.View, courseID int64) (*SessionState, error)
	// Result and Chart use the active view when view is empty
	Result(ctx context.Context, sessionID string, view domain.View) (domain.View, grading.CalculationResult, error)
	Chart(ctx context.Context, sessionID string, view domain.View) (domain.View, []grading.ChartPoint, error)
	Snapshot(ctx context.Context, sessionID string) (*ResultUpdate, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type calculatorServiceImpl struct {
	sessionRepo repositories.SessionRepository
	catalog     *seed.Catalog
	tokens      TokenIssuer
	publisher   ResultPublisher
	scale       grading.Scale
	ttl         time.Duration
	locks       *keyedMutex
	now         func() time.Time
	logger      zerolog.Logger
}

// CalculatorConfig holds the session settings of the calculator service
type CalculatorConfig struct {
	TTL   time.Duration
	Scale grading.Scale
}

// NewCalculatorService creates a new calculator service. publisher may be nil.
func NewCalculatorService(
	sessionRepo repositories.SessionRepository,
	catalog *seed.Catalog,
	tokens TokenIssuer,
	publisher ResultPublisher,
	cfg CalculatorConfig,
	logger zerolog.Logger,
) CalculatorService {
	if catalog == nil {
		catalog = seed.DefaultCatalog()
	}
	if cfg.Scale == nil {
		cfg.Scale = grading.DefaultScale
	}
	return &calculatorServiceImpl{
		sessionRepo: sessionRepo,
		catalog:     catalog,
		tokens:      tokens,
		publisher:   publisher,
		scale:       cfg.Scale,
		ttl:         cfg.TTL,
		locks:       newKeyedMutex(lockStripes),
		now:         time.Now,
		logger:      logger,
	}
}

func (s *calculatorServiceImpl) state(session *models.Session) *SessionState {
	return &SessionState{
		Session: session,
		Result:  s.scale.Aggregate(session.Selected(session.ActiveView)),
	}
}

// CreateSession starts a session seeded with the default course lists
func (s *calculatorServiceImpl) CreateSession(ctx context.Context) (*SessionState, string, error) {
	now := s.now().UTC()
	term1, term2 := s.catalog.Lists()
	session := &models.Session{
		ID:           uuid.NewString(),
		ActiveView:   domain.InitialView,
		Term1:        term1,
		Term2:        term2,
		LastCourseID: domain.NextCourseID(0, term1, term2) - 1,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	token, err := s.tokens.GenerateToken(session.ID, session.ExpiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().
		Str("sessionID", session.ID).
		Time("expiresAt", session.ExpiresAt).
		Msg("Calculator session created")
	return s.state(session), token, nil
}

func (s *calculatorServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionState, error) {
	session, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

// EndSession deletes the session and disconnects its subscribers
func (s *calculatorServiceImpl) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if !validation.SessionIDValid(sessionID) {
		return apperrors.ErrSessionNotFound
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.publish(&websocket.Message{Type: websocket.MessageTypeSessionEnded, SessionID: sessionID})
	s.logger.Info().Str("sessionID", sessionID).Msg("Calculator session ended")
	return nil
}

func (s *calculatorServiceImpl) SetView(ctx context.Context, sessionID string, view domain.View) (*SessionState, error) {
	parsed, err := domain.ParseView(string(view))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidView, view)
	}
	session, _, err := s.mutate(ctx, sessionID, func(session *models.Session) (bool, error) {
		if session.ActiveView == parsed {
			return false, nil
		}
		session.ActiveView = parsed
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

// AddCourse appends a default course to term with an id never used before in the session
func (s *calculatorServiceImpl) AddCourse(ctx context.Context, sessionID string, term domain.View) (*SessionState, domain.Course, error) {
	if !term.Editable() {
		return nil, domain.Course{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTerm, term)
	}

	var added domain.Course
	session, _, err := s.mutate(ctx, sessionID, func(session *models.Session) (bool, error) {
		id := domain.NextCourseID(session.LastCourseID, session.Term1, session.Term2)
		courses := domain.AddCourse(session.Courses(term), id)
		session.LastCourseID = id
		added = courses[len(courses)-1]
		session.SetCourses(term, courses)
		return true, nil
	})
	if err != nil {
		return nil, domain.Course{}, err
	}
	return s.state(session), added, nil
}

// UpdateCourse applies edit to a course. Out-of-range values leave the session
// unchanged and report applied=false without an error.
func (s *calculatorServiceImpl) UpdateCourse(ctx context.Context, sessionID string, term domain.View, courseID int64, edit domain.Edit) (*SessionState, bool, error) {
	if !term.Editable() {
		return nil, false, fmt.Errorf("%w: %q", apperrors.ErrInvalidTerm, term)
	}

	session, applied, err := s.mutate(ctx, sessionID, func(session *models.Session) (bool, error) {
		courses, err := domain.UpdateCourse(session.Courses(term), courseID, edit)
		if errors.Is(err, domain.ErrEditRejected) {
			s.logger.Debug().
				Str("sessionID", sessionID).
				Int64("courseID", courseID).
				Str("field", string(edit.Field)).
				Msg("Course edit rejected")
			return false, nil
		}
		if err != nil {
			return false, courseError(err, courseID)
		}
		session.SetCourses(term, courses)
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	return s.state(session), applied, nil
}

func (s *calculatorServiceImpl) RemoveCourse(ctx context.Context, sessionID string, term domain.View, courseID int64) (*SessionState, error) {
	if !term.Editable() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTerm, term)
	}

	session, _, err := s.mutate(ctx, sessionID, func(session *models.Session) (bool, error) {
		courses, err := domain.RemoveCourse(session.Courses(term), courseID)
		if err != nil {
			return false, courseError(err, courseID)
		}
		session.SetCourses(term, courses)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

func (s *calculatorServiceImpl) Result(ctx context.Context, sessionID string, view domain.View) (domain.View, grading.CalculationResult, error) {
	session, view, err := s.load(ctx, sessionID, view)
	if err != nil {
		return "", grading.CalculationResult{}, err
	}
	return view, s.scale.Aggregate(session.Selected(view)), nil
}

func (s *calculatorServiceImpl) Chart(ctx context.Context, sessionID string, view domain.View) (domain.View, []grading.ChartPoint, error) {
	session, view, err := s.load(ctx, sessionID, view)
	if err != nil {
		return "", nil, err
	}
	return view, s.scale.Chart(session.Selected(view)), nil
}

// Snapshot returns the current result update for the active view
func (s *calculatorServiceImpl) Snapshot(ctx context.Context, sessionID string) (*ResultUpdate, error) {
	session, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.update(session), nil
}

func (s *calculatorServiceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int64("purged", n).Msg("Expired calculator sessions purged")
	}
	return n, nil
}

// get loads a live session; ids that are not session ids are never stored
func (s *calculatorServiceImpl) get(ctx context.Context, sessionID string) (*models.Session, error) {
	if !validation.SessionIDValid(sessionID) {
		return nil, apperrors.ErrSessionNotFound
	}
	return s.sessionRepo.GetByID(ctx, sessionID)
}

// load fetches a session and resolves an empty view to its active view
func (s *calculatorServiceImpl) load(ctx context.Context, sessionID string, view domain.View) (*models.Session, domain.View, error) {
	if view != "" {
		parsed, err := domain.ParseView(string(view))
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", apperrors.ErrInvalidView, view)
		}
		view = parsed
	}
	session, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if view == "" {
		view = session.ActiveView
	}
	return session, view, nil
}

// mutate runs fn on the stored session under the session's lock and persists
// the session when fn reports a change. Subscribers are notified of changes.
func (s *calculatorServiceImpl) mutate(ctx context.Context, sessionID string, fn func(*models.Session) (bool, error)) (*models.Session, bool, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	changed, err := fn(session)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return session, false, nil
	}

	session.UpdatedAt = s.now().UTC()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to save session: %w", err)
	}

	s.publish(&websocket.Message{
		Type:      websocket.MessageTypeResult,
		SessionID: session.ID,
		Data:      s.update(session),
	})
	return session, true, nil
}

func (s *calculatorServiceImpl) update(session *models.Session) *ResultUpdate {
	courses := session.Selected(session.ActiveView)
	return &ResultUpdate{
		View:   session.ActiveView,
		Result: s.scale.Aggregate(courses),
		Chart:  s.scale.Chart(courses),
	}
}

func (s *calculatorServiceImpl) publish(message *websocket.Message) {
	if s.publisher != nil {
		s.publisher.Publish(message)
	}
}

func courseError(err error, courseID int64) error {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound, fmt.Sprintf("no course with id %d", courseID))
	case errors.Is(err, domain.ErrUnknownField):
		return apperrors.ErrInvalidField
	}
	return err
}
