package models

import (
	"time"

	"gorm.io/datatypes"
)

// Carrier type selection. The type groups carriers by family; label
// generators are registered per type.
const (
	CarrierTypeGLS    = "gls"
	CarrierTypeDHL    = "dhl"
	CarrierTypeOpal   = "opal"
	CarrierTypeManual = "manual"
)

// CarrierTypeSelection lists the known carrier types with their labels
var CarrierTypeSelection = [][2]string{
	{CarrierTypeGLS, "GLS"},
	{CarrierTypeDHL, "DHL"},
	{CarrierTypeOpal, "OPAL Kurier"},
	{CarrierTypeManual, "Manual"},
}

// DeliveryCarrier mirrors Odoo 'delivery.carrier'
type DeliveryCarrier struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OdooID     *int64         `gorm:"uniqueIndex" json:"odooId,omitempty" xmlrpc:"id"` // nil for local carriers
	Name       string         `gorm:"not null" json:"name" xmlrpc:"name"`
	Type       OdooString     `gorm:"index" json:"type" xmlrpc:"type"` // gls, dhl, ...
	Code       OdooString     `json:"code" xmlrpc:"code"`              // Delivery method code
	Active     bool           `gorm:"default:true" json:"active" xmlrpc:"active"`
	ConfigJSON datatypes.JSON `gorm:"type:jsonb" json:"config,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	AvailableOptions []DeliveryCarrierOption `gorm:"foreignKey:CarrierID" json:"availableOptions,omitempty"`
}

func (DeliveryCarrier) TableName() string { return "delivery_carrier" }

// Option membership states relative to a carrier
const (
	OptionStateDefault   = "default_option"
	OptionStateMandatory = "mandatory"
	OptionStateOptional  = "optional"
)

// DeliveryCarrierOption mirrors Odoo 'delivery.carrier.option'
type DeliveryCarrierOption struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OdooID    *int64     `gorm:"uniqueIndex" json:"odooId,omitempty" xmlrpc:"id"`
	CarrierID int64      `gorm:"index;not null" json:"carrierId"` // local carrier id
	Name      string     `gorm:"not null" json:"name" xmlrpc:"name"`
	Code      OdooString `json:"code" xmlrpc:"code"`
	State     string     `gorm:"default:optional" json:"state" xmlrpc:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (DeliveryCarrierOption) TableName() string { return "delivery_carrier_option" }

// IsDefault reports whether the option is pre-selected when its carrier is chosen
func (o DeliveryCarrierOption) IsDefault() bool {
	return o.State == OptionStateDefault || o.State == OptionStateMandatory
}

// IsMandatory reports whether the option can not be removed from a picking
func (o DeliveryCarrierOption) IsMandatory() bool {
	return o.State == OptionStateMandatory
}
