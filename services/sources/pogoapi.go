package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	pogoAPIBaseURL       = "https://pogoapi.net"
	shinyPokemonEndpoint = "/api/v1/shiny_pokemon.json"
)

type PogoAPI struct {
	baseURL string
	client  *http.Client
	names   NameLookup
}

func NewPogoAPI(names NameLookup) *PogoAPI {
	return &PogoAPI{
		baseURL: pogoAPIBaseURL,
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		names: names,
	}
}

func (source *PogoAPI) Name() string {
	return constants.SourcePogoAPI
}

type shinyPokemonEntry struct {
	Name           string `json:"name"`
	DexNumber      int    `json:"dex_number"`
	FoundWild      bool   `json:"found_wild"`
	FoundRaid      bool   `json:"found_raid"`
	FoundEvolution bool   `json:"found_evolution"`
	FoundEgg       bool   `json:"found_egg"`
}

// Fetch reads the shiny pokemon endpoint, keyed by pokedex id.
func (source *PogoAPI) Fetch(ctx context.Context) ([]entities.ShinyRecord, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, source.baseURL+shinyPokemonEndpoint, nil)
	if errReq != nil {
		return nil, &FetchErr{Source: source.Name(), Err: errReq}
	}
	if agent := viper.GetString(constants.UserAgent); agent != "" {
		req.Header.Set("User-Agent", agent)
	}

	resp, errFetch := source.client.Do(req)
	if errFetch != nil {
		return nil, &FetchErr{Source: source.Name(), Err: fmt.Errorf("failed to fetch data: %w", errFetch)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchErr{Source: source.Name(), Err: fmt.Errorf("API request failed with status: %d", resp.StatusCode)}
	}

	var payload map[string]shinyPokemonEntry
	if errDecode := json.NewDecoder(resp.Body).Decode(&payload); errDecode != nil {
		return nil, &FetchErr{Source: source.Name(), Err: fmt.Errorf("failed to parse response: %w", errDecode)}
	}

	var records []entities.ShinyRecord
	for key, entry := range payload {
		dexID := entry.DexNumber
		if dexID == 0 {
			parsed, errParse := strconv.Atoi(key)
			if errParse != nil {
				log.Debug().Str(constants.LogSource, source.Name()).Str("key", key).Msg("Skipped entry without usable dex id")
				continue
			}
			dexID = parsed
		}

		name := entry.Name
		if name == "" {
			name = source.names.NameByID(dexID)
		}

		records = append(records, entities.ShinyRecord{
			Source:    source.Name(),
			DexID:     dexID,
			Name:      name,
			Wild:      entry.FoundWild,
			Raid:      entry.FoundRaid,
			Evolution: entry.FoundEvolution,
			Egg:       entry.FoundEgg,
		})
	}

	if len(records) == 0 {
		return nil, &FetchErr{Source: source.Name(), Err: ErrNoEntries}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].DexID < records[j].DexID })

	return records, nil
}
