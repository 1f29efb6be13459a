package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/eckshipgo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetParam reads a system parameter. found is false when the key does not exist.
func (r *Repository) GetParam(ctx context.Context, key string) (value string, found bool, err error) {
	var param models.IrConfigParameter
	err = r.conn(ctx).Where("key = ?", key).First(&param).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load parameter %s: %w", key, err)
	}
	return param.Value.String(), true, nil
}

// SetParam creates or updates a system parameter
func (r *Repository) SetParam(ctx context.Context, key, value string) error {
	param := models.IrConfigParameter{Key: key, Value: models.OdooString(value)}
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&param).Error
	if err != nil {
		return fmt.Errorf("set parameter %s: %w", key, err)
	}
	return nil
}

// GetCompany loads a company
func (r *Repository) GetCompany(ctx context.Context, id int64) (*models.ResCompany, error) {
	var company models.ResCompany
	if err := r.conn(ctx).First(&company, id).Error; err != nil {
		return nil, notFound(err, "company", id)
	}
	return &company, nil
}

// UpdateCompanyGLS writes the GLS fields of a company
func (r *Repository) UpdateCompanyGLS(ctx context.Context, company *models.ResCompany) error {
	err := r.conn(ctx).Model(company).Select("gls_inter_contact_id", "gls_fr_contact_id", "gls_test").
		Updates(map[string]interface{}{
			"gls_inter_contact_id": company.GLSInterContactID,
			"gls_fr_contact_id":    company.GLSFrContactID,
			"gls_test":             company.GLSTest,
		}).Error
	if err != nil {
		return fmt.Errorf("update company %d: %w", company.ID, err)
	}
	return nil
}
