package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mobilestore/storefront/internal/model"
)

// AuthHandler serves the customer registration, login and profile routes.
type AuthHandler struct {
	store      *Store
	jwtService *JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *Store, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{store: store, jwtService: jwtService}
}

// HandleRegister handles POST /customers/register/
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = []string{"This field is required."}
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = []string{"This field is required."}
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = []string{"This field is required."}
	}
	if req.Password == "" {
		fields["password"] = []string{"This field is required."}
	} else if len(req.Password) < 8 {
		fields["password"] = []string{"This password is too short. It must contain at least 8 characters."}
	}
	if req.Password2 == "" {
		fields["password2"] = []string{"This field is required."}
	} else if req.Password != "" && req.Password != req.Password2 {
		fields["password"] = []string{"Password fields didn't match."}
	}
	if len(fields) > 0 {
		respondFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	user, ok := h.store.createCustomer(req)
	if !ok {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"email": {"customer with this email already exists."},
		})
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin handles POST /customers/login/
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, ok := h.store.authenticate(req.Email, req.Password)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	access, err := h.jwtService.SignAccessToken(user.ID, user.Email)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	refresh, err := generateRefreshToken()
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, model.Tokens{Access: access, Refresh: refresh})
}

// HandleMe handles GET /customers/profiles/me/
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.customerByID(customerID(r.Context()))
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile handles PUT/PATCH /customers/profiles/update_profile/
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, ok := h.store.updateCustomer(customerID(r.Context()), req)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleChangePassword handles POST /customers/profiles/change_password/
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.NewPassword != req.NewPassword2 {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"new_password": {"Password fields didn't match."},
		})
		return
	}

	found, changed := h.store.changePassword(customerID(r.Context()), req.OldPassword, req.NewPassword)
	if !found {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	if !changed {
		writeJSON(w, http.StatusBadRequest, map[string]string{"old_password": "Wrong password."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully."})
}
