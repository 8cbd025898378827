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

type updateContractPricingRequest struct {
	models.ContractPricingAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchContractPricingRequest struct {
	models.ContractPricingPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// ContractPricingHandler serves /contract-pricings.
type ContractPricingHandler struct {
	res *resource[models.ContractPricingAttributes]
}

func NewContractPricing(svc *service.Service[models.ContractPricingAttributes], logger *slog.Logger) *ContractPricingHandler {
	return &ContractPricingHandler{res: &resource[models.ContractPricingAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParseContractPricingID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.ContractPricingAttributes, bool) {
			req, ok := httputil.Decode[models.ContractPricingAttributes](w, r, logger)
			if !ok {
				return models.ContractPricingAttributes{}, false
			}
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.ContractPricingAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updateContractPricingRequest](w, r, logger)
			if !ok {
				return models.ContractPricingAttributes{}, optional.None[bool](), false
			}
			return req.ContractPricingAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.ContractPricingAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchContractPricingRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.ContractPricingPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEqID(values, c, "contract_id", "contract_id")
			queryEqID(values, c, "pricing_id", "pricing_id")
			return nil
		},
	}}
}

func (h *ContractPricingHandler) Register(r chi.Router) {
	h.res.register(r, "/contract-pricings")
}
