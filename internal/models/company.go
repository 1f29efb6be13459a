package models

import "time"

// ResCompany mirrors 'res.company' with the GLS fields added by the carrier module
type ResCompany struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id" xmlrpc:"id"`
	Name              string    `gorm:"not null" json:"name" xmlrpc:"name"`
	GLSInterContactID string    `json:"glsInterContactId" xmlrpc:"gls_inter_contact_id"` // TP8914 international
	GLSFrContactID    string    `json:"glsFrContactId" xmlrpc:"gls_fr_contact_id"`       // TP8914 France
	GLSTest           bool      `json:"glsTest" xmlrpc:"gls_test"`                       // use the test web service
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (ResCompany) TableName() string { return "res_company" }

// IrConfigParameter mirrors 'ir.config_parameter', the global key/value store
type IrConfigParameter struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id" xmlrpc:"id"`
	Key       string     `gorm:"uniqueIndex;not null" json:"key" xmlrpc:"key"`
	Value     OdooString `gorm:"type:text" json:"value" xmlrpc:"value"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (IrConfigParameter) TableName() string { return "ir_config_parameter" }
