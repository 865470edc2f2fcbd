package shinies

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
	require.NoError(t, db.AutoMigrate(&entities.ShinyRecord{}))

	return New(&testConnection{db: db})
}

func TestReplaceSourceInsertsFreshRecords(t *testing.T) {
	repo := setupRepository(t)

	err := repo.ReplaceSource("pogoapi.net", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Wild: true},
		{DexID: 1, Name: "Bulbasaur", Evolution: true},
	})
	require.NoError(t, err)

	records, err := repo.FetchBySource("pogoapi.net")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].DexID, "records come back ordered by dex id")
	assert.Equal(t, 25, records[1].DexID)
	assert.Equal(t, "pogoapi.net", records[0].Source)
	assert.WithinDuration(t, time.Now().UTC(), records[0].FirstSeen, time.Minute)
}

func TestReplaceSourceKeepsFirstSeen(t *testing.T) {
	repo := setupRepository(t)

	firstSeen := time.Date(2023, time.March, 12, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceSource("gamepress.gg", []entities.ShinyRecord{
		{DexID: 133, Name: "Eevee", Evolution: true, FirstSeen: firstSeen},
	}))

	require.NoError(t, repo.ReplaceSource("gamepress.gg", []entities.ShinyRecord{
		{DexID: 133, Name: "Eevee", Evolution: true, Wild: true},
	}))

	records, err := repo.FetchBySource("gamepress.gg")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Wild)
	assert.WithinDuration(t, firstSeen, records[0].FirstSeen, time.Second)
}

func TestReplaceSourceDropsVanishedRecords(t *testing.T) {
	repo := setupRepository(t)

	require.NoError(t, repo.ReplaceSource("pogoapi.net", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Wild: true},
		{DexID: 26, Name: "Raichu", Evolution: true},
	}))

	require.NoError(t, repo.ReplaceSource("pogoapi.net", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Wild: true},
	}))

	records, err := repo.FetchBySource("pogoapi.net")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 25, records[0].DexID)
}

func TestReplaceSourceLeavesOtherSourcesAlone(t *testing.T) {
	repo := setupRepository(t)

	require.NoError(t, repo.ReplaceSource("pogoapi.net", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Wild: true},
	}))
	require.NoError(t, repo.ReplaceSource("gamepress.gg", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Raid: true},
	}))

	require.NoError(t, repo.ReplaceSource("gamepress.gg", nil))

	assert.Equal(t, int64(1), repo.CountBySource("pogoapi.net"))
	assert.Equal(t, int64(0), repo.CountBySource("gamepress.gg"))
	assert.Equal(t, int64(1), repo.Count())
}

func TestLastRefresh(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.LastRefresh("pogoapi.net")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.ReplaceSource("pogoapi.net", []entities.ShinyRecord{
		{DexID: 25, Name: "Pikachu", Wild: true},
	}))

	refreshedAt, err := repo.LastRefresh("pogoapi.net")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), refreshedAt, time.Minute)
}
