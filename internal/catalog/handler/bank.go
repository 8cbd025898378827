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

type updateBankRequest struct {
	models.BankAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchBankRequest struct {
	models.BankPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// BankHandler serves /banks.
type BankHandler struct {
	res *resource[models.BankAttributes]
}

func NewBank(svc *service.Service[models.BankAttributes], logger *slog.Logger) *BankHandler {
	return &BankHandler{res: &resource[models.BankAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParseBankID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.BankAttributes, bool) {
			req, ok := httputil.Decode[models.BankAttributes](w, r, logger)
			if !ok {
				return models.BankAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.BankAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updateBankRequest](w, r, logger)
			if !ok {
				return models.BankAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.BankAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.BankAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchBankRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.BankPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "name", "name")
			queryEq(values, c, "abbreviation", "abbreviation")
			return nil
		},
	}}
}

func (h *BankHandler) Register(r chi.Router) {
	h.res.register(r, "/banks")
}
