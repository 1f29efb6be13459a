package handlers

import (
	"net/http"
	"strconv"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
)

// settingsCompany picks ?company_id= or the company of the user
func settingsCompany(req *http.Request) (int64, error) {
	if raw := req.URL.Query().Get("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, apperror.NewValidation("Invalid company_id")
		}
		return id, nil
	}
	if id := companyFromClaims(req); id != 0 {
		return id, nil
	}
	return 0, apperror.NewValidation("company_id is required")
}

func (r *Router) getGLSSettings(w http.ResponseWriter, req *http.Request) {
	companyID, err := settingsCompany(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	s, err := r.deps.GLS.Load(req.Context(), companyID)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (r *Router) saveGLSSettings(w http.ResponseWriter, req *http.Request) {
	companyID, err := settingsCompany(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	var body settings.GLSSettings
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	if err := r.deps.GLS.Save(req.Context(), companyID, body); err != nil {
		respondAppError(w, req, err)
		return
	}
	s, err := r.deps.GLS.Load(req.Context(), companyID)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
