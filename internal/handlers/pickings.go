package handlers

import (
	"net/http"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/services/picking"
)

// OnChangeCarrierRequest is the form state when the carrier changes
type OnChangeCarrierRequest struct {
	CarrierID *int64 `json:"carrierId"`
}

// OnChangeOptionsRequest is the form state when the options change
type OnChangeOptionsRequest struct {
	CarrierID *int64  `json:"carrierId"`
	OptionIDs []int64 `json:"optionIds"`
}

// ChangeCarrierRequest updates the carrier of a stored picking.
// A nil OptionIDs applies the carrier defaults when the carrier changes
// and keeps the stored options otherwise.
type ChangeCarrierRequest struct {
	CarrierID *int64  `json:"carrierId"`
	OptionIDs []int64 `json:"optionIds"`
}

// GenerateLabelsRequest selects the pickings to label
type GenerateLabelsRequest struct {
	IDs     []int64        `json:"ids"`
	Context picking.Values `json:"context"`
}

func (r *Router) createPicking(w http.ResponseWriter, req *http.Request) {
	var in picking.CreateInput
	if err := decodeJSON(req, &in); err != nil {
		respondAppError(w, req, err)
		return
	}
	if in.CompanyID == nil {
		if id := companyFromClaims(req); id != 0 {
			in.CompanyID = &id
		}
	}
	p, err := r.deps.Pickings.Create(req.Context(), in)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (r *Router) getPicking(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	p, err := r.deps.Pickings.Get(req.Context(), id)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (r *Router) changeCarrier(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	var body ChangeCarrierRequest
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	p, warning, err := r.deps.Pickings.ChangeCarrier(req.Context(), id, body.CarrierID, body.OptionIDs)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"picking": p,
		"warning": warning,
	})
}

func (r *Router) onchangeCarrier(w http.ResponseWriter, req *http.Request) {
	var body OnChangeCarrierRequest
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	res, err := r.deps.Pickings.CarrierIDChange(req.Context(), body.CarrierID)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (r *Router) onchangeOptions(w http.ResponseWriter, req *http.Request) {
	var body OnChangeOptionsRequest
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	res, err := r.deps.Pickings.OptionIDsChange(req.Context(), body.OptionIDs, body.CarrierID)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (r *Router) generateLabels(w http.ResponseWriter, req *http.Request) {
	var body GenerateLabelsRequest
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	if len(body.IDs) == 0 {
		respondAppError(w, req, apperror.NewValidation("ids is required"))
		return
	}
	ok, err := r.deps.Pickings.ActionGenerateCarrierLabel(req.Context(), body.IDs, body.Context)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"result": ok})
}
