// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KHUSHI-P15/Hackout/internal/config"
	"github.com/KHUSHI-P15/Hackout/internal/infrastructure"
	"github.com/KHUSHI-P15/Hackout/pkg/middleware"
	"github.com/KHUSHI-P15/Hackout/pkg/module"
	"github.com/KHUSHI-P15/Hackout/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
// The context bounds the startup backend probe.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(ctx, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	specBytes, err := buildSpec(cfg)
	if err != nil {
		return nil, fmt.Errorf("build openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
