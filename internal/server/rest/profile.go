package rest

import (
	"net/http"

	"github.com/phonomarket/phono/internal/server/models"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	data, err := s.profile.Me(r.Context(), userID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserProfile(data))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	uid := userID(r.Context())
	if _, err := s.profile.Update(r.Context(), uid, req.Name, req.Surname, req.DOB, req.Avatar); err != nil {
		writeError(w, err)
		return
	}

	// The client replaces its whole profile from the response.
	data, err := s.profile.Me(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserProfile(data))
}

func (s *Server) handleChangeLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeBody(r, &req); err != nil || req.Language == "" {
		badRequest(w, "language is required")
		return
	}
	if err := s.profile.ChangeLanguage(r.Context(), userID(r.Context()), req.Language); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.profile.DeleteAccount(r.Context(), userID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAddPhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := decodeBody(r, &req); err != nil || req.Phone == "" {
		badRequest(w, "phone is required")
		return
	}
	p, err := s.profile.AddPhone(r.Context(), userID(r.Context()), req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPhone(*p))
}

func (s *Server) handleDeletePhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.profile.DeletePhone(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAddEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}
	e, err := s.profile.AddEmail(r.Context(), userID(r.Context()), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmail(*e))
}

func (s *Server) handleEditEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}
	e, err := s.profile.EditEmail(r.Context(), userID(r.Context()), id, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmail(*e))
}

func (s *Server) handleDeleteEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.profile.DeleteEmail(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAddAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Address == "" {
		badRequest(w, "address is required")
		return
	}
	a, err := s.profile.AddAddress(r.Context(), &models.Address{
		UserID:  userID(r.Context()),
		Name:    req.Name,
		Address: req.Address,
		Lat:     req.Lat,
		Long:    req.Long,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAddress(*a))
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.profile.DeleteAddress(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
