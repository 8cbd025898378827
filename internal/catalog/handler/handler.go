// Package handler wires the reference data services to chi routes. Every
// entity mounts the same verb set: POST / (create), GET / (paginated list),
// GET /{id}, PUT /{id} (full update), PATCH /{id} (partial update) and
// POST /{id}/disable | /{id}/enable for lifecycle transitions. Per-entity
// files supply only the request shapes and the filter mapping.
package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/service"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
	"refdata/pkg/platform/httputil"
)

// resource is the generic handler for one entity type. The decode and
// query hooks carry everything entity-specific.
type resource[A service.Attributes] struct {
	svc          *service.Service[A]
	parseID      func(string) (uuid.UUID, error)
	decodeCreate func(w http.ResponseWriter, r *http.Request) (A, bool)
	decodeUpdate func(w http.ResponseWriter, r *http.Request) (A, optional.Value[bool], bool)
	decodePatch  func(w http.ResponseWriter, r *http.Request) (service.Patch[A], optional.Value[bool], bool)
	query        func(url.Values, *core.Criteria) error
}

func (res *resource[A]) register(r chi.Router, path string) {
	r.Route(path, func(r chi.Router) {
		r.Post("/", res.create)
		r.Get("/", res.list)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", res.get)
			r.Put("/", res.update)
			r.Patch("/", res.patch)
			r.Post("/disable", res.disable)
			r.Post("/enable", res.enable)
		})
	})
}

func (res *resource[A]) id(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := res.parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return uuid.Nil, false
	}
	return id, true
}

func (res *resource[A]) create(w http.ResponseWriter, r *http.Request) {
	attrs, ok := res.decodeCreate(w, r)
	if !ok {
		return
	}
	agg, err := res.svc.Create(r.Context(), attrs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, agg)
}

func (res *resource[A]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	attrs, enabled, ok := res.decodeUpdate(w, r)
	if !ok {
		return
	}
	agg, err := res.svc.Update(r.Context(), id, attrs, enabled)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}

func (res *resource[A]) patch(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	p, enabled, ok := res.decodePatch(w, r)
	if !ok {
		return
	}
	agg, err := res.svc.Patch(r.Context(), id, p, enabled)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}

func (res *resource[A]) disable(w http.ResponseWriter, r *http.Request) {
	res.setEnabled(w, r, false)
}

func (res *resource[A]) enable(w http.ResponseWriter, r *http.Request) {
	res.setEnabled(w, r, true)
}

func (res *resource[A]) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	var agg *core.Aggregate[A]
	var err error
	if enabled {
		agg, err = res.svc.Enable(r.Context(), id)
	} else {
		agg, err = res.svc.Disable(r.Context(), id)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}

func (res *resource[A]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	agg, err := res.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}

func (res *resource[A]) list(w http.ResponseWriter, r *http.Request) {
	c := core.NewCriteria()
	values := r.URL.Query()
	if err := applyCommonQuery(values, c); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := res.query(values, c); err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := res.svc.List(r.Context(), c)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// applyCommonQuery maps pagination and lifecycle filters shared by every
// list endpoint. Filter values that fail to parse reject the request
// rather than silently matching nothing.
func applyCommonQuery(values url.Values, c *core.Criteria) error {
	page, size := core.DefaultPageNumber, core.DefaultPageSize
	if raw := values.Get("page_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dErrors.NewValidation(map[string]string{"page_number": "must be an integer"})
		}
		if n < 1 {
			return dErrors.NewValidation(map[string]string{"page_number": "must be at least 1"})
		}
		page = n
	}
	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dErrors.NewValidation(map[string]string{"page_size": "must be an integer"})
		}
		if n < 1 {
			return dErrors.NewValidation(map[string]string{"page_size": "must be at least 1"})
		}
		size = n
	}
	c.Page(page, size)

	if raw := values.Get("enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return dErrors.NewValidation(map[string]string{"enabled": "must be a boolean"})
		}
		c.Enabled(enabled)
	}
	return nil
}

// queryEq adds an exact-match filter when the parameter is present.
func queryEq(values url.Values, c *core.Criteria, param, field string) {
	if raw := values.Get(param); raw != "" {
		c.Eq(field, raw)
	}
}

// queryEqID adds an exact-match filter over a UUID field when present.
// An unparseable id matches nothing, which mirrors filtering on a value
// that cannot exist.
func queryEqID(values url.Values, c *core.Criteria, param, field string) {
	if raw := values.Get(param); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			c.Eq(field, id)
		} else {
			c.Eq(field, uuid.Nil)
		}
	}
}
