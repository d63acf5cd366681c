package repository_test

import (
	"strings"
	"testing"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/repository"
	"psytech/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepo(t *testing.T) {
	db := setupTestDB(t)
	testContactRepository(t, repository.NewContactRepository(db))
}

func TestMongoContactRepo(t *testing.T) {
	db := setupTestMongo(t)
	testContactRepository(t, repository.NewMongoContactRepository(db))
}

func newTestContact(createdAt time.Time) models.ContactSubmission {
	company := gofakeit.Company()

	return models.ContactSubmission{
		ID:          uuid.New(),
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		Company:     &company,
		CompanyType: "hospital",
		Message:     gofakeit.Sentence(12),
		CreatedAt:   createdAt.UTC().Truncate(time.Millisecond),
		Status:      models.ContactStatusNew,
	}
}

func testContactRepository(t *testing.T, repo repository.ContactRepository) {
	older := newTestContact(time.Now().Add(-time.Hour))
	newer := newTestContact(time.Now())
	newer.Company = nil

	require.NoError(t, repo.SaveContact(testCtx, older))
	require.NoError(t, repo.SaveContact(testCtx, newer))

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetContact(testCtx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, older.Name, got.Name)
		assert.Equal(t, older.Email, got.Email)
		require.NotNil(t, got.Company)
		assert.Equal(t, *older.Company, *got.Company)
		assert.Nil(t, got.Phone)
		assert.Equal(t, models.ContactStatusNew, got.Status)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.GetContact(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrContactNotFound)
	})

	t.Run("long free-form company type", func(t *testing.T) {
		contact := newTestContact(time.Now().Add(-2 * time.Hour))
		contact.CompanyType = strings.Repeat("independent research collective ", 10)

		require.NoError(t, repo.SaveContact(testCtx, contact))

		got, err := repo.GetContact(testCtx, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, contact.CompanyType, got.CompanyType)
	})

	t.Run("list newest first", func(t *testing.T) {
		contacts, err := repo.ListContacts(testCtx)
		require.NoError(t, err)
		require.Len(t, contacts, 3)
		assert.Equal(t, newer.ID, contacts[0].ID)
		assert.Equal(t, older.ID, contacts[1].ID)
		assert.Nil(t, contacts[0].Company)
	})
}
