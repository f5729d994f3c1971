package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/prakashthakuri/Happy-Hours/api/responses"
	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

const (
	envHeader    = "X-HappyHours-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and reports 503 with the failing names
// when any of them is unreachable.
func HealthReady(cfg *config.Config, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		var errs error
		failing := map[string]any{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
				failing[name] = "unreachable"
			}
		}
		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies unavailable").WithDetails(failing))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
