package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/service"
	"refdata/pkg/domain"
	"refdata/pkg/optional"
	"refdata/pkg/platform/httputil"
)

type updateSectorRequest struct {
	models.SectorAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchSectorRequest struct {
	models.SectorPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// SectorHandler serves /sectors.
type SectorHandler struct {
	res *resource[models.SectorAttributes]
}

func NewSector(svc *service.Service[models.SectorAttributes], logger *slog.Logger) *SectorHandler {
	return &SectorHandler{res: &resource[models.SectorAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParseSectorID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.SectorAttributes, bool) {
			req, ok := httputil.Decode[models.SectorAttributes](w, r, logger)
			if !ok {
				return models.SectorAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.SectorAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updateSectorRequest](w, r, logger)
			if !ok {
				return models.SectorAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.SectorAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.SectorAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchSectorRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.SectorPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "name", "name")
			return nil
		},
	}}
}

func (h *SectorHandler) Register(r chi.Router) {
	h.res.register(r, "/sectors")
}
