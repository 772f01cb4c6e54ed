package rest

import "net/http"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Phone == "" || req.Password == "" {
		badRequest(w, "phone and password are required")
		return
	}

	challenge, err := s.auth.Register(r.Context(), req.Phone, req.Password, req.Name, req.Surname)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{
		UUID:   challenge.UUID,
		Expire: timeString(challenge.Expire),
		Phone:  challenge.Phone,
	})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.UUID == "" || req.OTP == "" {
		badRequest(w, "uuid and otp are required")
		return
	}

	pair, err := s.auth.VerifyOTP(r.Context(), req.UUID, req.OTP)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	pair, err := s.auth.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// handleRefreshToken rotates a refresh token into a fresh pair. The endpoint
// is public: the caller proves identity with the refresh token itself.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		badRequest(w, "refreshToken is required")
		return
	}

	pair, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// handleLogout exists so clients have a uniform sign-out call; tokens are
// stateless, so there is nothing to revoke server-side.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nil)
}
