package picking

import (
	"context"

	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// Warning texts shown when a mandatory option is removed
const (
	WarningTitleMandatory   = "User Error !"
	WarningMessageMandatory = "You can not remove a mandatory option.\nOptions are reset to default."
	WarningCodeMandatory    = "MANDATORY_OPTION"
)

// CarrierValues are the picking fields recomputed when the carrier changes
type CarrierValues struct {
	CarrierType string  `json:"carrier_type"`
	CarrierCode string  `json:"carrier_code"`
	OptionIDs   []int64 `json:"option_ids"`
}

// OptionDomain restricts which options can be selected
type OptionDomain struct {
	OptionIDs []int64 `json:"option_ids"`
}

// Warning is a non-blocking message for the user
type Warning struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// OnChangeResult is what a form receives after a field change.
// An empty result means nothing to update.
type OnChangeResult struct {
	Value   *CarrierValues `json:"value,omitempty"`
	Domain  *OptionDomain  `json:"domain,omitempty"`
	Warning *Warning       `json:"warning,omitempty"`
}

// IsEmpty reports whether the result carries no change
func (r OnChangeResult) IsEmpty() bool {
	return r.Value == nil && r.Domain == nil && r.Warning == nil
}

// carrierDefaults computes values and domain for a loaded carrier
func carrierDefaults(carrier *models.DeliveryCarrier) OnChangeResult {
	defaults := make([]int64, 0, len(carrier.AvailableOptions))
	available := make([]int64, 0, len(carrier.AvailableOptions))
	for _, opt := range carrier.AvailableOptions {
		available = append(available, opt.ID)
		if opt.IsDefault() {
			defaults = append(defaults, opt.ID)
		}
	}
	return OnChangeResult{
		Value: &CarrierValues{
			CarrierType: carrier.Type.String(),
			CarrierCode: carrier.Code.String(),
			OptionIDs:   defaults,
		},
		Domain: &OptionDomain{OptionIDs: available},
	}
}

// CarrierIDChange returns the carrier's type, code and default options,
// restricting selectable options to the carrier's available ones.
// Without carrier the result is empty.
func (s *Service) CarrierIDChange(ctx context.Context, carrierID *int64) (OnChangeResult, error) {
	if carrierID == nil || *carrierID == 0 {
		return OnChangeResult{}, nil
	}
	carrier, err := s.store.GetCarrier(ctx, *carrierID)
	if err != nil {
		return OnChangeResult{}, err
	}
	return carrierDefaults(carrier), nil
}

// OptionIDsChange checks that no mandatory option was removed. When one is
// missing the whole option set is reset to the carrier defaults and a
// warning is returned.
func (s *Service) OptionIDsChange(ctx context.Context, optionIDs []int64, carrierID *int64) (OnChangeResult, error) {
	if carrierID == nil || *carrierID == 0 {
		return OnChangeResult{}, nil
	}
	carrier, err := s.store.GetCarrier(ctx, *carrierID)
	if err != nil {
		return OnChangeResult{}, err
	}

	selected := make(map[int64]struct{}, len(optionIDs))
	for _, id := range optionIDs {
		selected[id] = struct{}{}
	}

	for _, opt := range carrier.AvailableOptions {
		if !opt.IsMandatory() {
			continue
		}
		if _, ok := selected[opt.ID]; ok {
			continue
		}
		res := carrierDefaults(carrier)
		res.Warning = &Warning{
			Code:    WarningCodeMandatory,
			Title:   WarningTitleMandatory,
			Message: WarningMessageMandatory,
		}
		logger.FromContext(ctx).Infow("mandatory option removed, options reset",
			"carrier_id", carrier.ID, "option_id", opt.ID)
		return res, nil
	}
	return OnChangeResult{}, nil
}
