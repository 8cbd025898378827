package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/service"
	"refdata/pkg/domain"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
	"refdata/pkg/platform/httputil"
)

type updatePricingRequest struct {
	models.PricingAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchPricingRequest struct {
	models.PricingPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// PricingHandler serves /pricings.
type PricingHandler struct {
	res *resource[models.PricingAttributes]
}

func NewPricing(svc *service.Service[models.PricingAttributes], logger *slog.Logger) *PricingHandler {
	return &PricingHandler{res: &resource[models.PricingAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParsePricingID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.PricingAttributes, bool) {
			req, ok := httputil.Decode[models.PricingAttributes](w, r, logger)
			if !ok {
				return models.PricingAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.PricingAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updatePricingRequest](w, r, logger)
			if !ok {
				return models.PricingAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.PricingAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.PricingAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchPricingRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.PricingPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "label", "label")
			queryEqID(values, c, "currency_id", "currency_id")
			return queryFloatRange(values, c, "rate")
		},
	}}
}

func (h *PricingHandler) Register(r chi.Router) {
	h.res.register(r, "/pricings")
}

// queryFloatRange maps <field>_min / <field>_max parameters onto a closed
// numeric range filter. An unparseable bound rejects the request.
func queryFloatRange(values url.Values, c *core.Criteria, field string) error {
	if raw := values.Get(field + "_min"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dErrors.NewValidation(map[string]string{field + "_min": "must be a number"})
		}
		c.Min(field, f)
	}
	if raw := values.Get(field + "_max"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dErrors.NewValidation(map[string]string{field + "_max": "must be a number"})
		}
		c.Max(field, f)
	}
	return nil
}
