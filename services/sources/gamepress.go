package sources

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	gamePressBaseURL = "https://pokemongo.gamepress.gg"
	shinyListPath    = "/pokemon-go-shinies-list"
)

// Table row classes on the shinies list page and the method they map to.
// Nesting Pokémon are found in the wild, the page only refines the label.
var rowClassMethods = []struct {
	class  string
	method string
}{
	{class: "Raids", method: entities.MethodRaid},
	{class: "Wild", method: entities.MethodWild},
	{class: "Nesting", method: entities.MethodWild},
	{class: "Evolution", method: entities.MethodEvolution},
	{class: "Eggs", method: entities.MethodEgg},
	{class: "Research", method: entities.MethodResearch},
	{class: "Mystery", method: entities.MethodMystery},
}

type GamePress struct {
	baseURL string
	client  *http.Client
	names   NameLookup
}

func NewGamePress(names NameLookup) *GamePress {
	return &GamePress{
		baseURL: gamePressBaseURL,
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		names: names,
	}
}

func (source *GamePress) Name() string {
	return constants.SourceGamePress
}

// Fetch scrapes the shinies list page. The pokedex id comes from the Pokémon
// page link of each row; a Pokémon sitting in several rows gets its method
// flags merged.
func (source *GamePress) Fetch(ctx context.Context) ([]entities.ShinyRecord, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, source.baseURL+shinyListPath, nil)
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
		return nil, &FetchErr{Source: source.Name(), Err: fmt.Errorf("page request failed with status: %d", resp.StatusCode)}
	}

	document, errParse := goquery.NewDocumentFromReader(resp.Body)
	if errParse != nil {
		return nil, &FetchErr{Source: source.Name(), Err: fmt.Errorf("failed to parse page: %w", errParse)}
	}

	found := make(map[int]*entities.ShinyRecord)
	for _, mapping := range rowClassMethods {
		document.Find("tr." + mapping.class).Each(func(_ int, row *goquery.Selection) {
			href, hasHref := row.Find("a").First().Attr("href")
			if !hasHref {
				return
			}

			dexID, valid := dexIDFromLink(href)
			if !valid {
				log.Debug().Str(constants.LogSource, source.Name()).Str("href", href).Msg("Skipped row without dex id")
				return
			}

			record, known := found[dexID]
			if !known {
				record = &entities.ShinyRecord{
					Source: source.Name(),
					DexID:  dexID,
					Name:   source.names.NameByID(dexID),
				}
				found[dexID] = record
			}
			record.MarkObtainable(mapping.method)
		})
	}

	if len(found) == 0 {
		return nil, &FetchErr{Source: source.Name(), Err: ErrNoEntries}
	}

	records := make([]entities.ShinyRecord, 0, len(found))
	for _, record := range found {
		records = append(records, *record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].DexID < records[j].DexID })

	return records, nil
}

// dexIDFromLink keeps only the digits of a Pokémon page link.
func dexIDFromLink(href string) (int, bool) {
	var digits strings.Builder
	for _, char := range href {
		if char >= '0' && char <= '9' {
			digits.WriteRune(char)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	dexID, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}

	return dexID, true
}
