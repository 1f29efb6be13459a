package repository

import (
	"context"
	"fmt"

	"github.com/xelth-com/eckshipgo/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertCarrier creates or updates a carrier keyed by its Odoo id. The
// local id is filled in on return.
func (r *Repository) UpsertCarrier(ctx context.Context, carrier *models.DeliveryCarrier) error {
	if carrier.OdooID == nil {
		return fmt.Errorf("upsert carrier %q: missing odoo id", carrier.Name)
	}
	err := r.conn(ctx).Omit("AvailableOptions").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "odoo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "type", "code", "active", "updated_at"}),
	}).Create(carrier).Error
	if err != nil {
		return fmt.Errorf("upsert carrier %d: %w", *carrier.OdooID, err)
	}
	return nil
}

// UpsertCarrierOption creates or updates an option keyed by its Odoo id.
// CarrierID must already be the local carrier id.
func (r *Repository) UpsertCarrierOption(ctx context.Context, option *models.DeliveryCarrierOption) error {
	if option.OdooID == nil {
		return fmt.Errorf("upsert option %q: missing odoo id", option.Name)
	}
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "odoo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"carrier_id", "name", "code", "state", "updated_at"}),
	}).Create(option).Error
	if err != nil {
		return fmt.Errorf("upsert option %d: %w", *option.OdooID, err)
	}
	return nil
}

// FindUserByEmail loads an active user for login
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	var user models.UserAuth
	if err := r.conn(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

// TouchLogin records the login time of a user
func (r *Repository) TouchLogin(ctx context.Context, user *models.UserAuth) error {
	return r.conn(ctx).Model(user).Update("last_login", user.LastLogin).Error
}
