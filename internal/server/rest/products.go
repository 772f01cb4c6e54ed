package rest

import (
	"net/http"
	"strconv"

	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/products"
)

const defaultProductLimit = 50

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultProductLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	list, err := s.products.Latest(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(list))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	d, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(*d))
}

func (s *Server) handleProductsByBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	list, err := s.products.ByBrand(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(list))
}

func (s *Server) handleProductsByModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	list, err := s.products.ByModel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(list))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	list, err := s.products.Search(r.Context(), products.SearchFilter{
		Search:     req.Search,
		RegionID:   req.RegionID,
		BrandID:    req.BrandID,
		ModelID:    req.ModelID,
		ColorID:    req.ColorID,
		PriceFrom:  req.PriceFrom,
		PriceTo:    req.PriceTo,
		MemoryFrom: req.MemoryFrom,
		MemoryTo:   req.MemoryTo,
		Top:        req.Top,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	result := toProducts(list)
	if result == nil {
		result = []product{}
	}
	writeJSON(w, http.StatusOK, result)
}

func productFromRequest(req productRequest, userID int64) *models.Product {
	return &models.Product{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		BrandID:     req.BrandID,
		ModelID:     req.ModelID,
		CustomModel: req.CustomModel,
		ColorID:     req.ColorID,
		Price:       req.Price,
		FloorPrice:  req.FloorPrice,
		CurrencyID:  req.CurrencyID,
		IsNew:       req.IsNew,
		HasDocument: req.HasDocument,
		AddressID:   req.AddressID,
		PhoneID:     req.PhoneID,
		Storage:     req.Storage,
		RAM:         req.RAM,
	}
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	d, err := s.products.Create(r.Context(), productFromRequest(req, userID(r.Context())))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProduct(*d))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	p := productFromRequest(req, userID(r.Context()))
	p.ID = id
	d, err := s.products.Update(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(*d))
}

func (s *Server) handleArchiveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req struct {
		IsSold bool `json:"is_sold"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.products.Archive(r.Context(), userID(r.Context()), id, req.IsSold); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUnarchiveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.products.Unarchive(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUpgradeProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.products.Upgrade(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := s.products.Home(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHomepage(data))
}
