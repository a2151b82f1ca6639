package controllers

import (
	"context"
	"net/http"

	"github.com/sricodings/balashop/api/responses"
	"github.com/sricodings/balashop/pkg/config"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/logger"
)

// Pinger is the health-check surface of a backing dependency.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Balashop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Balashop-Env", cfg.App.Env)
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
