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

type updateCurrencyRequest struct {
	models.CurrencyAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchCurrencyRequest struct {
	models.CurrencyPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// CurrencyHandler serves /currencies.
type CurrencyHandler struct {
	res *resource[models.CurrencyAttributes]
}

func NewCurrency(svc *service.Service[models.CurrencyAttributes], logger *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{res: &resource[models.CurrencyAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParseCurrencyID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.CurrencyAttributes, bool) {
			req, ok := httputil.Decode[models.CurrencyAttributes](w, r, logger)
			if !ok {
				return models.CurrencyAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.CurrencyAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updateCurrencyRequest](w, r, logger)
			if !ok {
				return models.CurrencyAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.CurrencyAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.CurrencyAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchCurrencyRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.CurrencyPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "name", "name")
			return nil
		},
	}}
}

func (h *CurrencyHandler) Register(r chi.Router) {
	h.res.register(r, "/currencies")
}
