package models

import "time"

// IrAttachment mirrors 'ir.attachment': a file bound to any record by
// (ResModel, ResID). Datas holds the base64-encoded content.
type IrAttachment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ResModel  string    `gorm:"index:idx_attachment_res" json:"resModel"`
	ResID     int64     `gorm:"index:idx_attachment_res" json:"resId"`
	Datas     string    `gorm:"type:text" json:"-"`
	Mimetype  string    `json:"mimetype"`
	FileSize  int       `json:"fileSize"`
	Checksum  string    `gorm:"type:varchar(64)" json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
}

func (IrAttachment) TableName() string { return "ir_attachment" }

// File types a shipping label can have
const (
	FileTypePDF = "pdf"
)

// FileTypeSelection lists the supported label file types
var FileTypeSelection = [][2]string{
	{FileTypePDF, "PDF"},
}

// ShippingLabel mirrors 'shipping.label': an attachment flagged as carrier
// label. The attachment row is created together with the label and shares
// its lifecycle.
type ShippingLabel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AttachmentID int64     `gorm:"uniqueIndex;not null" json:"attachmentId"`
	FileType     string    `gorm:"default:pdf" json:"fileType"`
	TrackingID   *int64    `gorm:"index" json:"trackingId"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relations
	Attachment *IrAttachment      `gorm:"foreignKey:AttachmentID;constraint:OnDelete:CASCADE" json:"attachment,omitempty"`
	Tracking   *StockQuantPackage `gorm:"foreignKey:TrackingID" json:"tracking,omitempty"`
}

func (ShippingLabel) TableName() string { return "shipping_label" }

// ValidFileType reports whether t is a known label file type
func ValidFileType(t string) bool {
	for _, s := range FileTypeSelection {
		if s[0] == t {
			return true
		}
	}
	return false
}
