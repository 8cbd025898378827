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

type updatePartnerAccountRequest struct {
	models.PartnerAccountAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchPartnerAccountRequest struct {
	models.PartnerAccountPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// PartnerAccountHandler serves /partner-accounts.
type PartnerAccountHandler struct {
	res *resource[models.PartnerAccountAttributes]
}

func NewPartnerAccount(svc *service.Service[models.PartnerAccountAttributes], logger *slog.Logger) *PartnerAccountHandler {
	return &PartnerAccountHandler{res: &resource[models.PartnerAccountAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParsePartnerAccountID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.PartnerAccountAttributes, bool) {
			req, ok := httputil.Decode[models.PartnerAccountAttributes](w, r, logger)
			if !ok {
				return models.PartnerAccountAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.PartnerAccountAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updatePartnerAccountRequest](w, r, logger)
			if !ok {
				return models.PartnerAccountAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.PartnerAccountAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.PartnerAccountAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchPartnerAccountRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.PartnerAccountPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "number", "number")
			queryEq(values, c, "label", "label")
			queryEqID(values, c, "bank_id", "bank_id")
			queryEqID(values, c, "currency_id", "currency_id")
			return nil
		},
	}}
}

func (h *PartnerAccountHandler) Register(r chi.Router) {
	h.res.register(r, "/partner-accounts")
}
