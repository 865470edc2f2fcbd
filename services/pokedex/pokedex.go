package pokedex

import (
	"encoding/json"
	"fmt"
	"net/http"

	"shiny-tracker/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := &Impl{
		baseURL: pogoAPIBaseURL,
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		cache: cache.New(cache.NoExpiration, 0),
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.PokedexCronTab), true),
		gocron.NewTask(func() {
			if err := service.Refresh(); err != nil {
				log.Error().Err(err).Msg("Cannot refresh pokedex names")
			}
		}),
		gocron.WithName("Refresh pokedex names"),
	)
	if errJob != nil {
		return nil, errJob
	}

	if err := service.Refresh(); err != nil {
		log.Warn().Err(err).Msg("Pokedex names not warmed up yet")
	}

	return service, nil
}

// NameByID resolves a dex id against the cached pokedex. A cold cache
// triggers one refresh attempt before giving up on the name.
func (service *Impl) NameByID(dexID int) string {
	if x, found := service.cache.Get(namesCacheKey); found {
		if name, known := x.(map[int]string)[dexID]; known {
			return name
		}

		return UnknownSpecies
	}

	if err := service.Refresh(); err != nil {
		log.Warn().Err(err).Int(constants.LogDexID, dexID).Msg("Cannot resolve name without pokedex")
		return UnknownSpecies
	}

	if x, found := service.cache.Get(namesCacheKey); found {
		if name, known := x.(map[int]string)[dexID]; known {
			return name
		}
	}

	return UnknownSpecies
}

type pokemonNameEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (service *Impl) Refresh() error {
	log.Info().Msg("Start fetching pokedex names")

	endpoint := fmt.Sprintf("%s%s", service.baseURL, pokemonNamesEndpoint)
	req, errReq := http.NewRequest(http.MethodGet, endpoint, nil)
	if errReq != nil {
		return errReq
	}
	if agent := viper.GetString(constants.UserAgent); agent != "" {
		req.Header.Set("User-Agent", agent)
	}

	resp, errFetch := service.client.Do(req)
	if errFetch != nil {
		return fmt.Errorf("failed to fetch data: %w", errFetch)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var payload map[string]pokemonNameEntry
	if errDecode := json.NewDecoder(resp.Body).Decode(&payload); errDecode != nil {
		return fmt.Errorf("failed to parse response: %w", errDecode)
	}

	names := make(map[int]string, len(payload))
	for _, entry := range payload {
		if entry.ID > 0 && entry.Name != "" {
			names[entry.ID] = entry.Name
		}
	}

	if len(names) == 0 {
		return fmt.Errorf("pokedex payload came back empty")
	}

	service.cache.SetDefault(namesCacheKey, names)
	log.Info().Int(constants.LogRecordCount, len(names)).Msg("End fetching pokedex names")

	return nil
}
