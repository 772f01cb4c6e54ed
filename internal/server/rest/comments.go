package rest

import "net/http"

func (s *Server) handleCommentsByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	list, err := s.comments.ByProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	result := toComments(list)
	if result == nil {
		result = []comment{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64  `json:"product_id"`
		Text      string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil || req.ProductID <= 0 || req.Text == "" {
		badRequest(w, "product_id and text are required")
		return
	}
	c, err := s.comments.Add(r.Context(), userID(r.Context()), req.ProductID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComment(*c))
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil || req.Text == "" {
		badRequest(w, "text is required")
		return
	}
	c, err := s.comments.Update(r.Context(), userID(r.Context()), id, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComment(*c))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.comments.Delete(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
