package classify

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KHUSHI-P15/Hackout/pkg/handlers"
	"github.com/KHUSHI-P15/Hackout/pkg/routes"
)

// Handler provides ad-hoc classification endpoints that exercise the
// classifier directly without persisting audit records.
type Handler struct {
	classifier *Classifier
	logger     *slog.Logger
}

// ClassifyRequest identifies a single image to classify.
type ClassifyRequest struct {
	Locator string `json:"locator"`
	Context string `json:"context"`
}

// BatchRequest identifies a set of images to classify as one batch.
type BatchRequest struct {
	Images []ClassifyRequest `json:"images"`
}

// NewHandler creates a Handler backed by the given classifier.
func NewHandler(classifier *Classifier, logger *slog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		logger:     logger.With("handler", "classify"),
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
		},
	}
}

// Classify runs a single image through validation and the active backend.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.Locator == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}

	result := h.classifier.ClassifyOne(r.Context(), ImageRef{
		Locator: req.Locator,
		Context: req.Context,
	})

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Batch runs a set of images through the batch classifier and returns
// per-image results with an aggregate summary.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Images) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("at least one image required"))
		return
	}

	refs := make([]ImageRef, 0, len(req.Images))
	for _, img := range req.Images {
		refs = append(refs, ImageRef{Locator: img.Locator, Context: img.Context})
	}

	batch := h.classifier.ClassifyBatch(r.Context(), refs)
	handlers.RespondJSON(w, http.StatusOK, batch)
}
