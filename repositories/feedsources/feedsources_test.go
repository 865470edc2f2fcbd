package feedsources

import (
	"testing"
	"time"

	"shiny-tracker/models/entities"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testConnection struct {
	db *gorm.DB
}

func (c *testConnection) GetDB() *gorm.DB { return c.db }

func (c *testConnection) IsConnected() bool { return true }

func (c *testConnection) Run() error { return nil }

func (c *testConnection) Shutdown() {}

func setupRepository(t *testing.T) *Impl {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.FeedSource{}))

	return New(&testConnection{db: db})
}

func TestCreateAndFetchAll(t *testing.T) {
	repo := setupRepository(t)

	assert.Equal(t, int64(0), repo.Count())

	require.NoError(t, repo.Create(entities.FeedSource{
		FeedTypeID: "pokemon-go-hub",
		Title:      "Pokémon GO Hub",
		URL:        "https://pokemongohub.net/feed/",
		LastUpdate: time.Now().UTC(),
	}))

	feedSources, err := repo.FetchAll()
	require.NoError(t, err)
	require.Len(t, feedSources, 1)
	assert.Equal(t, "Pokémon GO Hub", feedSources[0].Title)
	assert.Equal(t, int64(1), repo.Count())
}

func TestSaveCursorOnlyMovesLastUpdate(t *testing.T) {
	repo := setupRepository(t)

	createdAt := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(entities.FeedSource{
		FeedTypeID: "pokemon-go-hub",
		Title:      "Pokémon GO Hub",
		URL:        "https://pokemongohub.net/feed/",
		LastUpdate: createdAt,
	}))

	cursor := createdAt.Add(48 * time.Hour)
	require.NoError(t, repo.SaveCursor(entities.FeedSource{FeedTypeID: "pokemon-go-hub", LastUpdate: cursor}))

	feedSources, err := repo.FetchAll()
	require.NoError(t, err)
	require.Len(t, feedSources, 1)
	assert.WithinDuration(t, cursor, feedSources[0].LastUpdate, time.Second)
	assert.Equal(t, "https://pokemongohub.net/feed/", feedSources[0].URL, "cursor updates leave the URL alone")
}
