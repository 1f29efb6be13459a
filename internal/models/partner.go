package models

// ResPartner is the recipient of a picking (res.partner)
type ResPartner struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id" xmlrpc:"id"`
	Name        string `gorm:"index" json:"name" xmlrpc:"name"`
	Street      string `json:"street" xmlrpc:"street"`
	Street2     string `json:"street2" xmlrpc:"street2"`
	Zip         string `json:"zip" xmlrpc:"zip"`
	City        string `json:"city" xmlrpc:"city"`
	CountryCode string `gorm:"size:2" json:"countryCode" xmlrpc:"country_code"` // ISO 3166-1 alpha-2
	Phone       string `json:"phone" xmlrpc:"phone"`
	Email       string `json:"email" xmlrpc:"email"`
}

func (ResPartner) TableName() string { return "res_partner" }
