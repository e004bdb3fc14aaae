package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
)

// setupTestPostgres opens a database/sql connection for schema setup and
// cleanup, and a pgxpool for the repositories under test.
// Skips the test if TEST_DB_DSN is not set. You can set TEST_DB_DSN
// directly, or use individual env vars:
//
//	TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER, TEST_DB_PASSWORD, TEST_DB_NAME
func setupTestPostgres(t *testing.T) (*sql.DB, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		host := os.Getenv("TEST_DB_HOST")
		port := os.Getenv("TEST_DB_PORT")
		user := os.Getenv("TEST_DB_USER")
		password := os.Getenv("TEST_DB_PASSWORD")
		dbname := os.Getenv("TEST_DB_NAME")

		if host == "" || port == "" || user == "" || dbname == "" {
			t.Skip("TEST_DB_DSN or TEST_DB_* environment variables not set, skipping PostgreSQL integration test")
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	schema, err := os.ReadFile("schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	// Each test starts from empty tables.
	_, err = db.Exec(`delete from creations; delete from campaign_results;`)
	require.NoError(t, err)

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = db.Exec(`delete from creations; delete from campaign_results;`)
		db.Close()
	})

	return db, pool
}

func TestCreationRepo_InsertAndList(t *testing.T) {
	_, pool := setupTestPostgres(t)
	repo := NewCreationRepo(pool)
	ctx := context.Background()

	first, err := repo.Insert(ctx, "user-a", domain.ToolArticle, "write about go", "an article", false)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "user-a", first.OwnerID)
	assert.False(t, first.Published)
	assert.Empty(t, first.Likes)

	second, err := repo.Insert(ctx, "user-a", domain.ToolImage, "a cat", "https://cdn/img.png", true)
	require.NoError(t, err)

	_, err = repo.Insert(ctx, "user-b", domain.ToolArticle, "other", "text", false)
	require.NoError(t, err)

	mine, err := repo.ListByOwner(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// Newest first.
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	feed, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, second.ID, feed[0].ID)
}

func TestCreationRepo_ToggleLike(t *testing.T) {
	_, pool := setupTestPostgres(t)
	repo := NewCreationRepo(pool)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "user-a", domain.ToolImage, "a cat", "url", true)
	require.NoError(t, err)

	liked, nowLiked, err := repo.ToggleLike(ctx, created.ID, "user-b")
	require.NoError(t, err)
	assert.True(t, nowLiked)
	assert.Equal(t, []string{"user-b"}, liked.Likes)

	unliked, nowLiked, err := repo.ToggleLike(ctx, created.ID, "user-b")
	require.NoError(t, err)
	assert.False(t, nowLiked)
	assert.Empty(t, unliked.Likes)

	_, _, err = repo.ToggleLike(ctx, "00000000-0000-0000-0000-000000000000", "user-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreationRepo_TogglePublish(t *testing.T) {
	_, pool := setupTestPostgres(t)
	repo := NewCreationRepo(pool)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "user-a", domain.ToolArticle, "p", "c", false)
	require.NoError(t, err)

	updated, err := repo.TogglePublish(ctx, created.ID, "user-a")
	require.NoError(t, err)
	assert.True(t, updated.Published)

	// Only the owner may flip the flag.
	_, err = repo.TogglePublish(ctx, created.ID, "user-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCampaignRepo_InsertAndList(t *testing.T) {
	db, pool := setupTestPostgres(t)
	repo := NewCampaignRepo(pool)
	ctx := context.Background()

	const content = `{"campaign_title":"T","campaign_description":"D"}`
	res, err := repo.Insert(ctx, "user-a", "launch topic", content)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.JSONEq(t, content, res.Content)

	// The column really is jsonb, not text.
	var colType string
	err = db.QueryRow(`select data_type from information_schema.columns
		where table_name = 'campaign_results' and column_name = 'content'`).Scan(&colType)
	require.NoError(t, err)
	assert.Equal(t, "jsonb", colType)

	list, err := repo.ListByOwner(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "launch topic", list[0].Prompt)
	assert.JSONEq(t, content, list[0].Content)

	other, err := repo.ListByOwner(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}
