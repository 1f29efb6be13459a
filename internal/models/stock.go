package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Picking types
const (
	PickingTypeIn       = "in"
	PickingTypeOut      = "out"
	PickingTypeInternal = "internal"
)

// Picking states
const (
	PickingStateDraft     = "draft"
	PickingStateWaiting   = "waiting"
	PickingStateConfirmed = "confirmed"
	PickingStateAssigned  = "assigned"
	PickingStateDone      = "done"
	PickingStateCancel    = "cancel"
)

// StockPicking mirrors 'stock.picking' (Transfer Orders) with carrier data
type StockPicking struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id" xmlrpc:"id"`
	Name          string    `gorm:"uniqueIndex" json:"name" xmlrpc:"name"` // WH/OUT/0001
	Type          string    `gorm:"index;default:internal" json:"type" xmlrpc:"type"`
	State         string    `gorm:"index;default:draft" json:"state" xmlrpc:"state"`
	Origin        string    `json:"origin" xmlrpc:"origin"`
	PartnerID     *int64    `gorm:"index" json:"partnerId" xmlrpc:"partner_id"`
	CompanyID     *int64    `gorm:"index" json:"companyId" xmlrpc:"company_id"`
	ScheduledDate time.Time `json:"scheduledDate" xmlrpc:"scheduled_date"`
	CarrierID     *int64    `gorm:"index" json:"carrierId" xmlrpc:"carrier_id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Derived from Carrier after every load, never stored
	CarrierType string `gorm:"-" json:"carrierType"`
	CarrierCode string `gorm:"-" json:"carrierCode"`

	// Relations
	Carrier  *DeliveryCarrier        `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
	Partner  *ResPartner             `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Company  *ResCompany             `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Options  []DeliveryCarrierOption `gorm:"many2many:stock_picking_carrier_option_rel;joinForeignKey:PickingID;joinReferences:OptionID" json:"options"`
	Packages []StockQuantPackage     `gorm:"foreignKey:PickingID" json:"packages,omitempty"`
}

func (StockPicking) TableName() string {
	return "stock_picking"
}

// AfterFind keeps the related carrier fields in line with the carrier
func (p *StockPicking) AfterFind(tx *gorm.DB) error {
	p.SyncCarrierFields()
	return nil
}

// SyncCarrierFields copies type and code from the loaded carrier
func (p *StockPicking) SyncCarrierFields() {
	if p.Carrier == nil {
		p.CarrierType, p.CarrierCode = "", ""
		return
	}
	p.CarrierType = p.Carrier.Type.String()
	p.CarrierCode = p.Carrier.Code.String()
}

// IsDone reports whether the picking reached its terminal state
func (p StockPicking) IsDone() bool {
	return p.State == PickingStateDone
}

// OptionIDs returns the ids of the selected options
func (p StockPicking) OptionIDs() []int64 {
	ids := make([]int64, 0, len(p.Options))
	for _, o := range p.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

// Relation names an attachment is bound to, per picking type
const (
	ResModelPicking    = "stock.picking"
	ResModelPickingIn  = "stock.picking.in"
	ResModelPickingOut = "stock.picking.out"
)

// ResModel maps the picking type to the relation name used by attachments
func (p StockPicking) ResModel() (string, error) {
	switch p.Type {
	case PickingTypeIn:
		return ResModelPickingIn, nil
	case PickingTypeOut:
		return ResModelPickingOut, nil
	case PickingTypeInternal:
		return ResModelPicking, nil
	}
	return "", fmt.Errorf("unknown picking type %q for picking %d", p.Type, p.ID)
}

// StockQuantPackage mirrors 'stock.quant.package' (Boxes / Pallets).
// Used as tracking unit: labels may be generated per package.
type StockQuantPackage struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id" xmlrpc:"id"`
	Name           string          `gorm:"uniqueIndex" json:"name" xmlrpc:"name"`
	PickingID      *int64          `gorm:"index" json:"pickingId"`
	ShippingWeight decimal.Decimal `gorm:"type:numeric(12,3)" json:"shippingWeight"` // kg
	PackDate       time.Time       `json:"packDate"`
}

func (StockQuantPackage) TableName() string {
	return "stock_quant_package"
}
