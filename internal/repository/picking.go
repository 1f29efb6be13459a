package repository

import (
	"context"
	"fmt"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/models"
	"gorm.io/gorm"
)

// GetCarrier loads a carrier with its available options
func (r *Repository) GetCarrier(ctx context.Context, id int64) (*models.DeliveryCarrier, error) {
	var carrier models.DeliveryCarrier
	err := r.conn(ctx).
		Preload("AvailableOptions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&carrier, id).Error
	if err != nil {
		return nil, notFound(err, "carrier", id)
	}
	return &carrier, nil
}

// ListCarriers returns carriers ordered by name
func (r *Repository) ListCarriers(ctx context.Context, activeOnly bool) ([]models.DeliveryCarrier, error) {
	var carriers []models.DeliveryCarrier
	q := r.conn(ctx).Preload("AvailableOptions").Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&carriers).Error; err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}
	return carriers, nil
}

// CreateCarrier stores a carrier and its options
func (r *Repository) CreateCarrier(ctx context.Context, carrier *models.DeliveryCarrier) error {
	if err := r.conn(ctx).Create(carrier).Error; err != nil {
		return fmt.Errorf("create carrier: %w", err)
	}
	return nil
}

// resolveOptions loads option rows by id, failing on unknown ids
func (r *Repository) resolveOptions(ctx context.Context, ids []int64) ([]models.DeliveryCarrierOption, error) {
	if len(ids) == 0 {
		return []models.DeliveryCarrierOption{}, nil
	}
	var opts []models.DeliveryCarrierOption
	if err := r.conn(ctx).Where("id IN ?", ids).Order("id ASC").Find(&opts).Error; err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	if len(opts) != len(uniqueIDs(ids)) {
		return nil, apperror.NewValidation("unknown carrier option in selection")
	}
	return opts, nil
}

// CreatePicking inserts a picking and links its options
func (r *Repository) CreatePicking(ctx context.Context, p *models.StockPicking, optionIDs []int64) error {
	opts, err := r.resolveOptions(ctx, optionIDs)
	if err != nil {
		return err
	}
	p.Options = opts

	// Options already exist, only the relation rows are written
	if err := r.conn(ctx).Omit("Options.*", "Carrier", "Partner", "Company", "Packages").Create(p).Error; err != nil {
		return fmt.Errorf("create picking: %w", err)
	}
	return nil
}

func (r *Repository) pickingQuery(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Carrier").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_carrier_option.id ASC") }).
		Preload("Partner").
		Preload("Company").
		Preload("Packages", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// GetPicking loads a picking with all its relations
func (r *Repository) GetPicking(ctx context.Context, id int64) (*models.StockPicking, error) {
	var p models.StockPicking
	if err := r.pickingQuery(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "picking", id)
	}
	p.SyncCarrierFields()
	return &p, nil
}

// GetPickings loads pickings in the order of ids
func (r *Repository) GetPickings(ctx context.Context, ids []int64) ([]models.StockPicking, error) {
	var found []models.StockPicking
	if err := r.pickingQuery(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load pickings: %w", err)
	}

	byID := make(map[int64]models.StockPicking, len(found))
	for _, p := range found {
		p.SyncCarrierFields()
		byID[p.ID] = p
	}

	pickings := make([]models.StockPicking, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, apperror.NewNotFound("picking", id)
		}
		pickings = append(pickings, p)
	}
	return pickings, nil
}

// UpdatePickingCarrier sets the carrier and replaces the option set
func (r *Repository) UpdatePickingCarrier(ctx context.Context, p *models.StockPicking, carrierID *int64, optionIDs []int64) error {
	opts, err := r.resolveOptions(ctx, optionIDs)
	if err != nil {
		return err
	}

	db := r.conn(ctx)
	if err := db.Model(p).Update("carrier_id", carrierID).Error; err != nil {
		return fmt.Errorf("update carrier: %w", err)
	}
	if err := db.Model(p).Omit("Options.*").Association("Options").Replace(opts); err != nil {
		return fmt.Errorf("replace options: %w", err)
	}
	p.CarrierID = carrierID
	p.Options = opts
	return nil
}

// CreateShippingLabel writes the attachment then the label pointing at it
func (r *Repository) CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error {
	if label.Attachment == nil {
		return fmt.Errorf("shipping label without attachment")
	}
	db := r.conn(ctx)
	if err := db.Create(label.Attachment).Error; err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	label.AttachmentID = label.Attachment.ID
	if err := db.Omit("Attachment", "Tracking").Create(label).Error; err != nil {
		return fmt.Errorf("create shipping label: %w", err)
	}
	return nil
}

// ListShippingLabels returns the labels attached to a record
func (r *Repository) ListShippingLabels(ctx context.Context, resModel string, resID int64) ([]models.ShippingLabel, error) {
	var labels []models.ShippingLabel
	err := r.conn(ctx).
		Joins("Attachment").
		Where(`"Attachment"."res_model" = ? AND "Attachment"."res_id" = ?`, resModel, resID).
		Order("shipping_label.id ASC").
		Find(&labels).Error
	if err != nil {
		return nil, fmt.Errorf("list shipping labels: %w", err)
	}
	return labels, nil
}

// GetShippingLabel loads a label and its attachment
func (r *Repository) GetShippingLabel(ctx context.Context, id int64) (*models.ShippingLabel, error) {
	var label models.ShippingLabel
	if err := r.conn(ctx).Preload("Attachment").First(&label, id).Error; err != nil {
		return nil, notFound(err, "shipping label", id)
	}
	return &label, nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
