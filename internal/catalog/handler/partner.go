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

type updatePartnerRequest struct {
	models.PartnerAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchPartnerRequest struct {
	models.PartnerPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// PartnerHandler serves /partners.
type PartnerHandler struct {
	res *resource[models.PartnerAttributes]
}

func NewPartner(svc *service.Service[models.PartnerAttributes], logger *slog.Logger) *PartnerHandler {
	return &PartnerHandler{res: &resource[models.PartnerAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParsePartnerID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.PartnerAttributes, bool) {
			req, ok := httputil.Decode[models.PartnerAttributes](w, r, logger)
			if !ok {
				return models.PartnerAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.PartnerAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updatePartnerRequest](w, r, logger)
			if !ok {
				return models.PartnerAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.PartnerAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.PartnerAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchPartnerRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.PartnerPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "name", "name")
			queryEqID(values, c, "sector_id", "sector_id")
			queryEqID(values, c, "parent_partner_id", "parent_partner_id")
			return nil
		},
	}}
}

func (h *PartnerHandler) Register(r chi.Router) {
	h.res.register(r, "/partners")
}
