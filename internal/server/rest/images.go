package rest

import (
	"io"
	"net/http"
	"strconv"
)

const maxImageUploadBytes = 32 << 20

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		badRequest(w, "invalid multipart body")
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		badRequest(w, "product_id is required")
		return
	}
	isMain := r.FormValue("is_main") == "true"

	file, header, err := r.FormFile("images")
	if err != nil {
		badRequest(w, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "reading image")
		return
	}

	img, err := s.images.Upload(r.Context(), userID(r.Context()), productID, isMain, header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductImage(*img))
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.images.Delete(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleSetMainImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if err := s.images.SetMain(r.Context(), userID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
