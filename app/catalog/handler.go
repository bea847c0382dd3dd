package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/recallify/catalog-service/app/api"
	"github.com/recallify/catalog-service/app/logger"
	"github.com/recallify/catalog-service/models"
	"go.uber.org/zap"
)

// maxCreateBodyBytes bounds the create request body.
const maxCreateBodyBytes = 64 << 10

type Catalog struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CatalogStore interface {
	Create(ctx context.Context, name string, description *string) (*models.Catalog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Catalog, error)
}

type CatalogHandler struct {
	repo CatalogStore
}

func NewCatalogHandler(r CatalogStore) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBodyBytes))
	err := dec.Decode(&input)
	if err == nil {
		// Exactly one JSON value is allowed.
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("trailing data after JSON body")
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	record, err := h.repo.Create(r.Context(), input.Name, input.Description)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			api.ErrorResponse(w, http.StatusBadRequest, vErr.Error())
			return
		}
		logger.FromContext(r.Context()).Error("failed to create catalog", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create catalog")
		return
	}

	logger.FromContext(r.Context()).Info("catalog created", zap.Stringer("id", record.ID))
	api.JSONResponse(w, http.StatusCreated, toResponse(record))
}

// HandleGet answers GET /catalog/{id}. An id that is not a UUID cannot
// have been issued by the store, so it is reported as not found.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Catalog not found")
		return
	}

	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCatalogNotFound) {
			api.ErrorResponse(w, http.StatusNotFound, "Catalog not found")
			return
		}
		logger.FromContext(r.Context()).Error("failed to get catalog", zap.Stringer("id", id), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}

	api.OKResponse(w, toResponse(record))
}

func toResponse(c *models.Catalog) Catalog {
	return Catalog{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
