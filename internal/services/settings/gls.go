// Package settings implements the per-carrier configuration screens.
// Read-only fields mirror global system parameters; the others are bound
// to the company record.
package settings

import (
	"context"
	"strings"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// ParamPrefix prefixes every carrier system parameter key
const ParamPrefix = "carrier_"

// Read-only GLS fields backed by system parameters
const (
	FieldGLSCustomerCode = "gls_customer_code"
	FieldGLSWarehouse    = "gls_warehouse"
)

// ReadOnlyFields lists the GLS fields loaded from system parameters
var ReadOnlyFields = []string{FieldGLSCustomerCode, FieldGLSWarehouse}

// Store is the persistence the settings service needs
type Store interface {
	GetParam(ctx context.Context, key string) (value string, found bool, err error)
	GetCompany(ctx context.Context, id int64) (*models.ResCompany, error)
	UpdateCompanyGLS(ctx context.Context, company *models.ResCompany) error
}

// GLSSettings is the transient GLS settings form
type GLSSettings struct {
	CompanyID      int64  `json:"companyId"`
	CustomerCode   string `json:"gls_customer_code"`
	Warehouse      string `json:"gls_warehouse"`
	InterContactID string `json:"inter_contact_id"`
	FrContactID    string `json:"fr_contact_id"`
	Test           bool   `json:"test"`
}

// ContactFor picks the contact id matching the recipient country
func (s GLSSettings) ContactFor(countryCode string) string {
	if strings.EqualFold(countryCode, "FR") {
		return s.FrContactID
	}
	return s.InterContactID
}

// GLSService loads and saves the GLS settings
type GLSService struct {
	store Store
	log   *logger.Logger
}

// NewGLSService creates the GLS settings service
func NewGLSService(store Store, log *logger.Logger) *GLSService {
	return &GLSService{store: store, log: log.WithComponent("settings.gls")}
}

// DefaultGet returns the system parameter value of each requested read-only
// field. Other field names are ignored. A missing parameter is an error.
func (s *GLSService) DefaultGet(ctx context.Context, fields []string) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		if !isReadOnly(field) {
			continue
		}
		key := ParamPrefix + field
		value, found, err := s.store.GetParam(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			logger.FromContext(ctx).Warnw("system parameter missing", "key", key)
			return nil, apperror.NewMissingParameter(field, key)
		}
		values[field] = value
	}
	return values, nil
}

// Load fills the whole form for a company
func (s *GLSService) Load(ctx context.Context, companyID int64) (*GLSSettings, error) {
	defaults, err := s.DefaultGet(ctx, ReadOnlyFields)
	if err != nil {
		return nil, err
	}

	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return &GLSSettings{
		CompanyID:      company.ID,
		CustomerCode:   defaults[FieldGLSCustomerCode],
		Warehouse:      defaults[FieldGLSWarehouse],
		InterContactID: company.GLSInterContactID,
		FrContactID:    company.GLSFrContactID,
		Test:           company.GLSTest,
	}, nil
}

// Save writes the company-bound fields. Read-only fields are ignored.
func (s *GLSService) Save(ctx context.Context, companyID int64, values GLSSettings) error {
	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return err
	}

	company.GLSInterContactID = values.InterContactID
	company.GLSFrContactID = values.FrContactID
	company.GLSTest = values.Test

	if err := s.store.UpdateCompanyGLS(ctx, company); err != nil {
		return err
	}
	s.log.Infow("✅ GLS settings saved", "company_id", companyID, "test", company.GLSTest)
	return nil
}

func isReadOnly(field string) bool {
	for _, f := range ReadOnlyFields {
		if f == field {
			return true
		}
	}
	return false
}
