package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/db"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
)

func newSession(id string, expiresAt time.Time) *models.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.Session{
		ID:         id,
		ActiveView: domain.ViewTerm1,
		Term1: []domain.Course{
			{ID: 1, Name: "رياضة (1)", Credits: 3, Score: domain.Score(91.5)},
			{ID: 2, Name: "Physics", Credits: 2},
		},
		Term2:        []domain.Course{},
		LastCourseID: 2,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    expiresAt.UTC().Truncate(time.Millisecond),
	}
}

func repositoriesUnderTest(t *testing.T) map[string]SessionRepository {
	t.Helper()
	sqlDB, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return map[string]SessionRepository{
		"memory": NewMemorySessionRepository(),
		"sqlite": NewSQLiteSessionRepository(sqlDB),
	}
}

func TestSessionRepository_CRUD(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession("s-1", time.Now().Add(time.Hour))

			require.NoError(t, repo.Create(ctx, s))
			assert.ErrorIs(t, repo.Create(ctx, s), apperrors.ErrSessionAlreadyExists)

			got, err := repo.GetByID(ctx, "s-1")
			require.NoError(t, err)
			assert.Equal(t, s.ActiveView, got.ActiveView)
			assert.Equal(t, s.Term1, got.Term1)
			assert.Empty(t, got.Term2)
			assert.Equal(t, int64(2), got.LastCourseID)
			assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

			got.ActiveView = domain.ViewCombined
			got.Term2 = append(got.Term2, domain.Course{ID: 101, Name: "Chemistry", Credits: 3, Score: domain.Score(70)})
			got.Term1[0].Score = nil
			got.LastCourseID = 101
			require.NoError(t, repo.Update(ctx, got))

			again, err := repo.GetByID(ctx, "s-1")
			require.NoError(t, err)
			assert.Equal(t, domain.ViewCombined, again.ActiveView)
			assert.Nil(t, again.Term1[0].Score)
			require.Len(t, again.Term2, 1)
			assert.Equal(t, 70.0, *again.Term2[0].Score)
			assert.Equal(t, int64(101), again.LastCourseID)

			require.NoError(t, repo.Delete(ctx, "s-1"))
			_, err = repo.GetByID(ctx, "s-1")
			assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, "s-1"), apperrors.ErrSessionNotFound)
			assert.ErrorIs(t, repo.Update(ctx, s), apperrors.ErrSessionNotFound)
		})
	}
}

func TestSessionRepository_Expiry(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Create(ctx, newSession("live", time.Now().Add(time.Hour))))
			require.NoError(t, repo.Create(ctx, newSession("stale", time.Now().Add(-time.Minute))))

			_, err := repo.GetByID(ctx, "stale")
			assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

			n, err := repo.DeleteExpired(ctx, time.Now())
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			_, err = repo.GetByID(ctx, "live")
			assert.NoError(t, err)

			n, err = repo.DeleteExpired(ctx, time.Now())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestMemorySessionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	s := newSession("s-1", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(ctx, s))

	// mutating the caller's value must not reach the store
	*s.Term1[0].Score = 10
	got, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 91.5, *got.Term1[0].Score)

	got.Term1[0].Name = "changed"
	again, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "رياضة (1)", again.Term1[0].Name)
	assert.Equal(t, 1, repo.Len())
}

func TestCourseColumnCodec(t *testing.T) {
	raw, err := encodeCourses(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	courses, err := decodeCourses(nil)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	_, err = decodeCourses([]byte("{not json"))
	assert.Error(t, err)
}

func TestBackend(t *testing.T) {
	assert.Equal(t, models.SessionStoreMemory, Backend(NewMemoryRepositories().SessionRepository))
	assert.Equal(t, models.SessionStoreSQLite, Backend(NewSQLiteSessionRepository(nil)))
	assert.Equal(t, models.SessionStorePostgres, Backend(NewPostgresSessionRepository(nil)))
}
