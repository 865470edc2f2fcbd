package insights

import (
	"fmt"
	"net/http"
	"time"

	"shiny-tracker/models/constants"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Probes struct {
	isReady func() bool
}

func NewProbes(isReady func() bool) *Probes {
	return &Probes{isReady: isReady}
}

// Handler exposes the liveness and readiness endpoints.
func (probes *Probes) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.HandleFunc("/readiness", func(w http.ResponseWriter, _ *http.Request) {
		if probes.isReady != nil && probes.isReady() {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "READY")
			return
		}

		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "NOT READY")
	})

	return mux
}

// ListenAndServe starts serving probes without blocking the caller.
func (probes *Probes) ListenAndServe() {
	addr := fmt.Sprintf(":%d", viper.GetInt(constants.ProbePort))
	server := &http.Server{
		Addr:              addr,
		Handler:           probes.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Msgf("Probes exposed on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Probe server stopped")
		}
	}()
}
