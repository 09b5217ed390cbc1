package api

import (
	"net/http"

	"github.com/KHUSHI-P15/Hackout/internal/config"
	"github.com/KHUSHI-P15/Hackout/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Reports.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	routes.Register(mux, domain.Validations.Handler().Routes())
	routes.Register(mux, domain.Classifier.Routes())

	storage := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)
	routes.Register(mux, storage.routes())
}
