package database

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/huma-users/internal/platform/timeutil"
	"github.com/janisto/huma-users/internal/service/user"
)

func TestMigrationsEmbedded(t *testing.T) {
	sub, err := Migrations()
	require.NoError(t, err)

	names, err := fs.Glob(sub, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"001_create_users.sql"}, names)

	data, err := fs.ReadFile(sub, names[0])
	require.NoError(t, err)
	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE users")
	assert.Contains(t, sql, "---- create above / drop below ----")
	for _, column := range []string{"email", "first_name", "last_name", "birth_date", "address", "phone_number"} {
		assert.True(t, strings.Contains(sql, column), "missing column %s", column)
	}
}

func TestOpenRejectsUnreachable(t *testing.T) {
	_, err := Open(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.Error(t, err)
}

// TestPostgresStoreRoundTrip runs against USERS_TEST_DATABASE_URL when set.
func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("USERS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("USERS_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, dsn))

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := user.NewPostgresStore(db)
	require.NoError(t, store.Ping(ctx))

	birthDate, err := timeutil.ParseDate("1990-04-01")
	require.NoError(t, err)
	created, err := store.Create(ctx, user.Record{
		Email:     "pg@example.com",
		FirstName: "Pat",
		LastName:  "Gres",
		BirthDate: birthDate,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Delete(ctx, created.ID) })

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pg@example.com", got.Email)
	assert.Equal(t, "1990-04-01", timeutil.FormatDate(got.BirthDate))
}
