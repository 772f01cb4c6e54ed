package rest

import "net/http"

func (s *Server) handleFavourites(w http.ResponseWriter, r *http.Request) {
	list, err := s.favourites.List(r.Context(), userID(r.Context()))
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

func (s *Server) handleAddFavourite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := decodeBody(r, &req); err != nil || req.ProductID <= 0 {
		badRequest(w, "product_id is required")
		return
	}
	if err := s.favourites.Add(r.Context(), userID(r.Context()), req.ProductID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleRemoveFavourite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.favourites.Remove(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
