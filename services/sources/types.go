package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiny-tracker/models/entities"
)

const clientHTTPTimeout = 15 * time.Second

// ErrNoEntries marks a fetch whose payload parsed to zero records. A site
// briefly serving an empty page must not wipe the stored snapshot.
var ErrNoEntries = errors.New("no shiny entries found")

// Source retrieves the complete shiny list of one site.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]entities.ShinyRecord, error)
}

// NameLookup resolves a pokedex id to a display name.
type NameLookup interface {
	NameByID(dexID int) string
}

// FetchErr wraps any failure of one source with its name.
type FetchErr struct {
	Source string
	Err    error
}

func (e *FetchErr) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *FetchErr) Unwrap() error {
	return e.Err
}
