package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

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

type updateContractRequest struct {
	models.ContractAttributes
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

type patchContractRequest struct {
	models.ContractPatch
	IsEnabled optional.Value[bool] `json:"is_enabled"`
}

// ContractHandler serves /contracts.
type ContractHandler struct {
	res *resource[models.ContractAttributes]
}

func NewContract(svc *service.Service[models.ContractAttributes], logger *slog.Logger) *ContractHandler {
	return &ContractHandler{res: &resource[models.ContractAttributes]{
		svc: svc,
		parseID: func(raw string) (uuid.UUID, error) {
			id, err := domain.ParseContractID(raw)
			return id.UUID(), err
		},
		decodeCreate: func(w http.ResponseWriter, r *http.Request) (models.ContractAttributes, bool) {
			req, ok := httputil.Decode[models.ContractAttributes](w, r, logger)
			if !ok {
				return models.ContractAttributes{}, false
			}
			req.Normalize()
			return *req, true
		},
		decodeUpdate: func(w http.ResponseWriter, r *http.Request) (models.ContractAttributes, optional.Value[bool], bool) {
			req, ok := httputil.Decode[updateContractRequest](w, r, logger)
			if !ok {
				return models.ContractAttributes{}, optional.None[bool](), false
			}
			req.Normalize()
			return req.ContractAttributes, req.IsEnabled, true
		},
		decodePatch: func(w http.ResponseWriter, r *http.Request) (service.Patch[models.ContractAttributes], optional.Value[bool], bool) {
			req, ok := httputil.Decode[patchContractRequest](w, r, logger)
			if !ok {
				return nil, optional.None[bool](), false
			}
			return req.ContractPatch, req.IsEnabled, true
		},
		query: func(values url.Values, c *core.Criteria) error {
			queryEq(values, c, "code", "code")
			queryEq(values, c, "label", "label")
			queryEqID(values, c, "partner_id", "partner_id")
			return queryTimeRange(values, c, "start_date")
		},
	}}
}

func (h *ContractHandler) Register(r chi.Router) {
	h.res.register(r, "/contracts")
}

// queryTimeRange maps <field>_min / <field>_max RFC 3339 parameters onto a
// closed date range filter. An unparseable bound rejects the request.
func queryTimeRange(values url.Values, c *core.Criteria, field string) error {
	if raw := values.Get(field + "_min"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return dErrors.NewValidation(map[string]string{field + "_min": "must be an RFC 3339 timestamp"})
		}
		c.Min(field, t)
	}
	if raw := values.Get(field + "_max"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return dErrors.NewValidation(map[string]string{field + "_max": "must be an RFC 3339 timestamp"})
		}
		c.Max(field, t)
	}
	return nil
}
