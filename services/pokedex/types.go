package pokedex

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	pogoAPIBaseURL       = "https://pogoapi.net"
	pokemonNamesEndpoint = "/api/v1/pokemon_names.json"
	clientHTTPTimeout    = 15 * time.Second
	namesCacheKey        = "pokemonNamesCacheKey"

	// UnknownSpecies names a Pokémon whose dex id cannot be resolved.
	UnknownSpecies = "unknown Pokémon"
)

type Service interface {
	NameByID(dexID int) string
	Refresh() error
}

type Impl struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}
