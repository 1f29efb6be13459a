package handlers

import (
	"net/http"
	"strings"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/models"
	"gorm.io/datatypes"
)

// CarrierOptionRequest describes an option of a new carrier
type CarrierOptionRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	State string `json:"state"`
}

// CarrierRequest describes a new carrier
type CarrierRequest struct {
	Name    string                 `json:"name"`
	Type    string                 `json:"type"`
	Code    string                 `json:"code"`
	Active  *bool                  `json:"active"`
	Config  datatypes.JSON         `json:"config"`
	Options []CarrierOptionRequest `json:"options"`
}

func (c CarrierRequest) toModel() (*models.DeliveryCarrier, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, apperror.NewValidation("carrier name is required")
	}
	carrier := &models.DeliveryCarrier{
		Name:       name,
		Type:       models.OdooString(c.Type),
		Code:       models.OdooString(c.Code),
		Active:     c.Active == nil || *c.Active,
		ConfigJSON: c.Config,
	}
	for _, o := range c.Options {
		state := o.State
		if state == "" {
			state = models.OptionStateOptional
		}
		switch state {
		case models.OptionStateDefault, models.OptionStateMandatory, models.OptionStateOptional:
		default:
			return nil, apperror.NewValidation("unknown option state: " + state)
		}
		carrier.AvailableOptions = append(carrier.AvailableOptions, models.DeliveryCarrierOption{
			Name:  o.Name,
			Code:  models.OdooString(o.Code),
			State: state,
		})
	}
	return carrier, nil
}

func (r *Router) listCarriers(w http.ResponseWriter, req *http.Request) {
	activeOnly := req.URL.Query().Get("all") != "true"
	carriers, err := r.deps.Carriers.ListCarriers(req.Context(), activeOnly)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, carriers)
}

func (r *Router) getCarrier(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	carrier, err := r.deps.Carriers.GetCarrier(req.Context(), id)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, carrier)
}

func (r *Router) createCarrier(w http.ResponseWriter, req *http.Request) {
	var body CarrierRequest
	if err := decodeJSON(req, &body); err != nil {
		respondAppError(w, req, err)
		return
	}
	carrier, err := body.toModel()
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	if err := r.deps.Carriers.CreateCarrier(req.Context(), carrier); err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusCreated, carrier)
}
