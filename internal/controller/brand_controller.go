package controller

import (
	"net/http"

	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

type BrandController struct {
	BrandService *service.BrandService
}

func (c *BrandController) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := c.BrandService.List(r.Context(), r.URL.Query().Get("sort") == "name")
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch brands")
		return
	}
	httputil.OK(w, brands)
}

func (c *BrandController) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	brand, err := c.BrandService.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch brand")
		return
	}
	httputil.OK(w, brand)
}

func (c *BrandController) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var body service.BrandInput
	if !httputil.Decode(w, r, &body) {
		return
	}
	brand, err := c.BrandService.Create(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to create brand")
		return
	}
	httputil.Created(w, brand)
}

func (c *BrandController) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	var body service.BrandInput
	if !httputil.Decode(w, r, &body) {
		return
	}
	brand, err := c.BrandService.Update(r.Context(), id, body)
	if err != nil {
		httputil.WriteError(w, err, "Failed to update brand")
		return
	}
	httputil.OK(w, brand)
}

func (c *BrandController) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	if err := c.BrandService.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err, "Failed to delete brand")
		return
	}
	httputil.OK(w, map[string]any{"success": true})
}
