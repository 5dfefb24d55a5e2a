package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contact-form/internal/core/database"
	"contact-form/internal/domain"
	"contact-form/internal/feature/contact"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&contact.ContactModel{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

var ana = domain.NormalizedContact{Name: "Ana Silva", Email: "ana@example.com", Phone: "(11) 91234-5678"}

func TestContactRepo_Create(t *testing.T) {
	t.Run("Should assign identity and timestamps", func(t *testing.T) {
		r := NewContactRepo(openTestDB(t))
		c, err := r.Create(context.Background(), ana)
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.False(t, c.CreatedAt.IsZero())
		assert.False(t, c.UpdatedAt.IsZero())
		assert.Equal(t, ana.Name, c.Name)
		assert.Equal(t, ana.Email, c.Email)
		assert.Equal(t, ana.Phone, c.Phone)
	})

	t.Run("Should allow duplicates", func(t *testing.T) {
		r := NewContactRepo(openTestDB(t))
		first, err := r.Create(context.Background(), ana)
		require.NoError(t, err)
		second, err := r.Create(context.Background(), ana)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Should surface failures as StorageError without partial rows", func(t *testing.T) {
		db := openTestDB(t)
		r := NewContactRepo(db)
		boom := errors.New("connection reset")
		require.NoError(t, db.Callback().Create().Before("gorm:create").
			Register("test:fail", func(tx *gorm.DB) { _ = tx.AddError(boom) }))

		_, err := r.Create(context.Background(), ana)
		var se *domain.StorageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "create", se.Op)
		assert.ErrorIs(t, err, boom)

		require.NoError(t, db.Callback().Create().Remove("test:fail"))
		all, err := r.FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestContactRepo_FindAll(t *testing.T) {
	t.Run("Should return contacts in insertion order", func(t *testing.T) {
		r := NewContactRepo(openTestDB(t))
		names := []string{"Ana Silva", "Bruno Costa", "Carla Dias"}
		for _, n := range names {
			in := ana
			in.Name = n
			_, err := r.Create(context.Background(), in)
			require.NoError(t, err)
		}
		all, err := r.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, c := range all {
			assert.Equal(t, names[i], c.Name)
			assert.Equal(t, ana.Email, c.Email)
			assert.Equal(t, ana.Phone, c.Phone)
		}
	})

	t.Run("Should return an empty slice on an empty table", func(t *testing.T) {
		all, err := NewContactRepo(openTestDB(t)).FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("Should surface a missing table as StorageError", func(t *testing.T) {
		db := openTestDB(t)
		require.NoError(t, db.Migrator().DropTable(&contact.ContactModel{}))
		_, err := NewContactRepo(db).FindAll(context.Background())
		var se *domain.StorageError
		assert.ErrorAs(t, err, &se)
	})
}
