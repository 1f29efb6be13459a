// Package picking holds the carrier rules of warehouse pickings and the
// shipping label action. Inbound, outbound and internal pickings share the
// same implementation; only the attachment relation name differs.
package picking

import (
	"context"
	"strings"
	"time"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// Store is the persistence the picking service needs
type Store interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	GetCarrier(ctx context.Context, id int64) (*models.DeliveryCarrier, error)

	CreatePicking(ctx context.Context, p *models.StockPicking, optionIDs []int64) error
	GetPicking(ctx context.Context, id int64) (*models.StockPicking, error)
	GetPickings(ctx context.Context, ids []int64) ([]models.StockPicking, error)
	UpdatePickingCarrier(ctx context.Context, p *models.StockPicking, carrierID *int64, optionIDs []int64) error

	CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error
	ListShippingLabels(ctx context.Context, resModel string, resID int64) ([]models.ShippingLabel, error)
	GetShippingLabel(ctx context.Context, id int64) (*models.ShippingLabel, error)
}

// Generators resolves the label generator of a picking
type Generators interface {
	For(picking *models.StockPicking) delivery.ShippingLabelGenerator
}

// LabelNotifier is told about every committed label
type LabelNotifier interface {
	LabelCreated(picking *models.StockPicking, label *models.ShippingLabel)
}

// Service implements the picking operations
type Service struct {
	store      Store
	generators Generators
	notifier   LabelNotifier
	log        *logger.Logger
}

// NewService creates the picking service. notifier may be nil.
func NewService(store Store, generators Generators, notifier LabelNotifier, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		generators: generators,
		notifier:   notifier,
		log:        log.WithComponent("picking"),
	}
}

// CreateInput holds the values of a new picking
type CreateInput struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	State         string    `json:"state"`
	Origin        string    `json:"origin"`
	PartnerID     *int64    `json:"partnerId"`
	CompanyID     *int64    `json:"companyId"`
	ScheduledDate time.Time `json:"scheduledDate"`
	CarrierID     *int64    `json:"carrierId"`
	OptionIDs     []int64   `json:"optionIds"`
}

func (in *CreateInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.NewValidation("picking name is required")
	}
	if in.Type == "" {
		in.Type = models.PickingTypeInternal
	}
	switch in.Type {
	case models.PickingTypeIn, models.PickingTypeOut, models.PickingTypeInternal:
	default:
		return apperror.NewValidation("unknown picking type: " + in.Type)
	}
	if in.State == "" {
		in.State = models.PickingStateDraft
	}
	if in.CarrierID != nil && *in.CarrierID == 0 {
		in.CarrierID = nil
	}
	return nil
}

// Create saves a new picking. When a carrier is preset its default options
// replace the given ones.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.StockPicking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	optionIDs := in.OptionIDs
	if in.CarrierID != nil {
		res, err := s.CarrierIDChange(ctx, in.CarrierID)
		if err != nil {
			return nil, err
		}
		if res.Value != nil && len(res.Value.OptionIDs) > 0 {
			optionIDs = res.Value.OptionIDs
		}
	}

	p := &models.StockPicking{
		Name:          in.Name,
		Type:          in.Type,
		State:         in.State,
		Origin:        in.Origin,
		PartnerID:     in.PartnerID,
		CompanyID:     in.CompanyID,
		ScheduledDate: in.ScheduledDate,
		CarrierID:     in.CarrierID,
	}

	if err := s.store.CreatePicking(ctx, p, optionIDs); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("picking created", "picking", p.Name, "carrier_id", p.CarrierID, "options", len(optionIDs))

	return s.store.GetPicking(ctx, p.ID)
}

// Get loads a picking
func (s *Service) Get(ctx context.Context, id int64) (*models.StockPicking, error) {
	return s.store.GetPicking(ctx, id)
}

// ChangeCarrier sets the carrier and options of a picking. Done pickings are
// read-only. The option set is checked the same way a form does it: removing
// a mandatory option resets to the carrier defaults and returns a warning.
func (s *Service) ChangeCarrier(ctx context.Context, id int64, carrierID *int64, optionIDs []int64) (*models.StockPicking, *Warning, error) {
	if carrierID != nil && *carrierID == 0 {
		carrierID = nil
	}

	var warning *Warning
	var updated *models.StockPicking
	err := s.store.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.store.GetPicking(ctx, id)
		if err != nil {
			return err
		}
		if p.IsDone() {
			return apperror.NewPickingDone(p.Name)
		}

		// Without options a new carrier starts from its defaults and the
		// same carrier keeps the stored ones
		carrierChanged := !sameCarrier(p.CarrierID, carrierID)
		if optionIDs == nil && !carrierChanged {
			optionIDs = p.OptionIDs()
		}
		if optionIDs == nil && carrierChanged {
			res, err := s.CarrierIDChange(ctx, carrierID)
			if err != nil {
				return err
			}
			if res.Value != nil {
				optionIDs = res.Value.OptionIDs
			}
		}

		res, err := s.OptionIDsChange(ctx, optionIDs, carrierID)
		if err != nil {
			return err
		}
		if res.Warning != nil {
			warning = res.Warning
			optionIDs = res.Value.OptionIDs
		}

		if err := s.store.UpdatePickingCarrier(ctx, p, carrierID, optionIDs); err != nil {
			return err
		}
		updated, err = s.store.GetPicking(ctx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, warning, nil
}

func sameCarrier(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
