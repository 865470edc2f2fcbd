package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNames map[int]string

func (names staticNames) NameByID(dexID int) string {
	if name, found := names[dexID]; found {
		return name
	}

	return "unknown Pokémon"
}

func newTestPogoAPI(serverURL string, names NameLookup) *PogoAPI {
	source := NewPogoAPI(names)
	source.baseURL = serverURL

	return source
}

func TestPogoAPIFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, shinyPokemonEndpoint, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"25": {"name": "Pikachu", "dex_number": 25, "found_wild": true, "found_raid": true, "found_evolution": false, "found_egg": false},
			"147": {"dex_number": 147, "found_wild": false, "found_raid": false, "found_evolution": false, "found_egg": true},
			"1": {"name": "Bulbasaur", "found_evolution": true}
		}`))
	}))
	defer server.Close()

	source := newTestPogoAPI(server.URL, staticNames{147: "Dratini"})

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 1, records[0].DexID, "records are ordered by dex id, this one got its id from the payload key")
	assert.Equal(t, "Bulbasaur", records[0].Name)
	assert.True(t, records[0].Evolution)

	assert.Equal(t, 25, records[1].DexID)
	assert.True(t, records[1].Wild)
	assert.True(t, records[1].Raid)
	assert.False(t, records[1].Egg)

	assert.Equal(t, 147, records[2].DexID)
	assert.Equal(t, "Dratini", records[2].Name, "missing names resolve through the pokedex")
	assert.True(t, records[2].Egg)

	for _, record := range records {
		assert.Equal(t, "pogoapi.net", record.Source)
	}
}

func TestPogoAPIFetchEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	source := newTestPogoAPI(server.URL, staticNames{})

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntries)

	var fetchErr *FetchErr
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "pogoapi.net", fetchErr.Source)
}

func TestPogoAPIFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := newTestPogoAPI(server.URL, staticNames{})

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pogoapi.net")
}

func TestPogoAPIFetchBrokenPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"25": {`))
	}))
	defer server.Close()

	source := newTestPogoAPI(server.URL, staticNames{})

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}
