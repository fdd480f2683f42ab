package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gpacalc/internal/app/repositories"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/grading"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/websocket"
	"github.com/yigit/gpacalc/internal/seed"
)

type fakeTokens struct {
	err error
}

func (f fakeTokens) GenerateToken(sessionID string, _ time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + sessionID, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*websocket.Message
}

func (p *recordingPublisher) Publish(m *websocket.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, m)
}

func (p *recordingPublisher) all() []*websocket.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*websocket.Message(nil), p.messages...)
}

type fixture struct {
	svc  *calculatorServiceImpl
	repo *repositories.MemorySessionRepository
	pub  *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repositories.NewMemorySessionRepository()
	pub := &recordingPublisher{}
	svc := NewCalculatorService(repo, seed.DefaultCatalog(), fakeTokens{}, pub,
		CalculatorConfig{TTL: time.Hour}, zerolog.Nop())
	return &fixture{svc: svc.(*calculatorServiceImpl), repo: repo, pub: pub}
}

func (f *fixture) create(t *testing.T) string {
	t.Helper()
	state, token, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-"+state.Session.ID, token)
	return state.Session.ID
}

func scoreEdit(v float64) domain.Edit {
	return domain.Edit{Field: domain.FieldScore, Number: domain.Score(v)}
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, _, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	s := state.Session
	assert.Equal(t, domain.ViewTerm1, s.ActiveView)
	assert.Len(t, s.Term1, 6)
	assert.Len(t, s.Term2, 7)
	assert.Equal(t, grading.CalculationResult{}, state.Result)
	assert.WithinDuration(t, s.CreatedAt.Add(time.Hour), s.ExpiresAt, time.Second)
	assert.Empty(t, f.pub.all())

	got, err := f.svc.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Term1, got.Session.Term1)
}

func TestCreateSession_TokenFailure(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	svc := NewCalculatorService(repo, nil, fakeTokens{err: errors.New("no key")}, nil,
		CalculatorConfig{TTL: time.Hour}, zerolog.Nop())

	_, _, err := svc.CreateSession(context.Background())
	assert.Error(t, err)
	assert.Zero(t, repo.Len())
}

func TestUpdateCourse_RecomputesAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	_, applied, err := f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 1, scoreEdit(95))
	require.NoError(t, err)
	assert.True(t, applied)

	state, applied, err := f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 2, scoreEdit(85))
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, grading.CalculationResult{GPA: 3.65, TotalCredits: 6, TotalPoints: 21.9, MaxPoints: 24}, state.Result)

	msgs := f.pub.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, websocket.MessageTypeResult, msgs[1].Type)
	assert.Equal(t, id, msgs[1].SessionID)
	update, ok := msgs[1].Data.(*ResultUpdate)
	require.True(t, ok)
	assert.Equal(t, 3.65, update.Result.GPA)
	assert.Len(t, update.Chart, 2)
}

func TestUpdateCourse_RejectedLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	before, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)

	for _, edit := range []domain.Edit{
		scoreEdit(150),
		scoreEdit(-1),
		{Field: domain.FieldCredits, Number: domain.Score(-3)},
	} {
		state, applied, err := f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 1, edit)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, before.Session.Term1, state.Session.Term1)
	}

	after, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Session, after.Session)
	assert.Empty(t, f.pub.all())
}

func TestUpdateCourse_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	_, _, err := f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 999, scoreEdit(80))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// term 2 ids are not addressable through term 1
	_, _, err = f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 101, scoreEdit(80))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, _, err = f.svc.UpdateCourse(ctx, id, domain.ViewCombined, 1, scoreEdit(80))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTerm)

	_, _, err = f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 1, domain.Edit{Field: "grade"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidField)

	_, _, err = f.svc.UpdateCourse(ctx, "missing", domain.ViewTerm1, 1, scoreEdit(80))
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAddAndRemoveCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	state, added, err := f.svc.AddCourse(ctx, id, domain.ViewTerm1)
	require.NoError(t, err)
	assert.Equal(t, int64(108), added.ID)
	assert.Equal(t, domain.DefaultCourseName, added.Name)
	assert.Equal(t, domain.DefaultCourseCredits, added.Credits)
	assert.Nil(t, added.Score)
	assert.Len(t, state.Session.Term1, 7)

	_, added2, err := f.svc.AddCourse(ctx, id, domain.ViewTerm2)
	require.NoError(t, err)
	assert.Equal(t, int64(109), added2.ID)

	state, err = f.svc.RemoveCourse(ctx, id, domain.ViewTerm1, 108)
	require.NoError(t, err)
	assert.Len(t, state.Session.Term1, 6)

	_, err = f.svc.RemoveCourse(ctx, id, domain.ViewTerm1, 108)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// with 108 and 109 gone the next id still moves forward
	_, err = f.svc.RemoveCourse(ctx, id, domain.ViewTerm2, 109)
	require.NoError(t, err)
	state, added3, err := f.svc.AddCourse(ctx, id, domain.ViewTerm1)
	require.NoError(t, err)
	assert.Equal(t, int64(110), added3.ID)
	assert.Equal(t, int64(110), state.Session.LastCourseID)

	_, _, err = f.svc.AddCourse(ctx, id, domain.ViewCombined)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTerm)
}

func TestViewsAndResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	// term 1: 4.0 over 3 credits, term 2: 0.0 over 2 credits
	_, _, err := f.svc.UpdateCourse(ctx, id, domain.ViewTerm1, 1, scoreEdit(95))
	require.NoError(t, err)
	_, _, err = f.svc.UpdateCourse(ctx, id, domain.ViewTerm2, 106, scoreEdit(40))
	require.NoError(t, err)

	view, res, err := f.svc.Result(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewTerm1, view)
	assert.Equal(t, 4.0, res.GPA)

	_, res, err = f.svc.Result(ctx, id, domain.ViewTerm2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.GPA)
	assert.Equal(t, 2.0, res.TotalCredits)

	state, err := f.svc.SetView(ctx, id, "Combined")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCombined, state.Session.ActiveView)
	assert.Equal(t, 2.4, state.Result.GPA)
	assert.Equal(t, 5.0, state.Result.TotalCredits)

	view, points, err := f.svc.Chart(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCombined, view)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1), points[0].CourseID)
	assert.Equal(t, int64(106), points[1].CourseID)
	assert.Equal(t, grading.ColorF, points[1].Fill)

	_, _, err = f.svc.Result(ctx, id, "term3")
	assert.ErrorIs(t, err, apperrors.ErrInvalidView)
	_, err = f.svc.SetView(ctx, id, "all")
	assert.ErrorIs(t, err, apperrors.ErrInvalidView)

	snap, err := f.svc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCombined, snap.View)
	assert.Equal(t, 2.4, snap.Result.GPA)
}

func TestSetView_SameViewDoesNotPublish(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	_, err := f.svc.SetView(context.Background(), id, domain.ViewTerm1)
	require.NoError(t, err)
	assert.Empty(t, f.pub.all())
}

func TestEndSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	require.NoError(t, f.svc.EndSession(ctx, id))

	_, err := f.svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.EndSession(ctx, id), apperrors.ErrSessionNotFound)

	msgs := f.pub.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, websocket.MessageTypeSessionEnded, msgs[0].Type)
}

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t)
	f.create(t)

	n, err := f.svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = f.svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Zero(t, f.repo.Len())
}

func TestConcurrentAddsAreSerialised(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	const workers = 40
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			term := domain.ViewTerm1
			if i%2 == 1 {
				term = domain.ViewTerm2
			}
			_, c, err := f.svc.AddCourse(ctx, id, term)
			assert.NoError(t, err)
			ids <- c.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for cid := range ids {
		assert.False(t, seen[cid], "duplicate id %d", cid)
		seen[cid] = true
	}

	state, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.Session.Term1, 6+workers/2)
	assert.Len(t, state.Session.Term2, 7+workers/2)
}

func TestGradingService(t *testing.T) {
	svc := NewGradingService(grading.DefaultScale)

	scale := svc.Scale()
	require.Len(t, scale, 12)
	scale[0].Grade = "Z"
	assert.Equal(t, "A+", svc.Scale()[0].Grade)

	grade, points := svc.Resolve(domain.Score(77))
	assert.Equal(t, "B-", grade)
	assert.Equal(t, 2.7, points)

	res, chart := svc.Calculate([]domain.Course{
		{ID: 1, Credits: 3, Score: domain.Score(95)},
		{ID: 2, Credits: 3, Score: domain.Score(85)},
		{ID: 3, Credits: 3},
	})
	assert.Equal(t, 3.65, res.GPA)
	assert.Len(t, chart, 2)
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex(0)
	unlock := k.Lock("a")
	unlock()
	unlock = k.Lock("a")
	unlock()
}
