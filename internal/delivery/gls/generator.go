// Package gls renders GLS shipping labels as PDF, one per pack.
package gls

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/eckshipgo/internal/config"
	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
)

// Label size in mm (A6 portrait, the usual thermal label format)
const (
	labelWidth  = 105.0
	labelHeight = 148.0
	margin      = 5.0
	qrSize      = 35.0
)

// SettingsLoader returns the GLS settings of a company
type SettingsLoader interface {
	Load(ctx context.Context, companyID int64) (*settings.GLSSettings, error)
}

// Generator implements delivery.ShippingLabelGenerator for GLS
type Generator struct {
	settings         SettingsLoader
	sender           config.WarehouseConfig
	defaultCompanyID int64
	log              *logger.Logger
}

// NewGenerator creates the GLS generator. Pickings without company use
// defaultCompanyID for settings lookup.
func NewGenerator(loader SettingsLoader, sender config.WarehouseConfig, defaultCompanyID int64, log *logger.Logger) *Generator {
	return &Generator{
		settings:         loader,
		sender:           sender,
		defaultCompanyID: defaultCompanyID,
		log:              log.WithComponent("delivery.gls"),
	}
}

// CarrierType returns "gls"
func (g *Generator) CarrierType() string { return models.CarrierTypeGLS }

// QRContent is the payload scanned at the depot
func QRContent(customerCode, picking, pack string) string {
	return fmt.Sprintf("GLS|%s|%s|%s", customerCode, picking, pack)
}

// GenerateShippingLabels returns one label per pack, or one label for the
// whole picking when it has no packs.
func (g *Generator) GenerateShippingLabels(ctx context.Context, picking *models.StockPicking) ([]delivery.Label, error) {
	companyID := g.defaultCompanyID
	if picking.CompanyID != nil {
		companyID = *picking.CompanyID
	}

	cfg, err := g.settings.Load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var recipient models.ResPartner
	if picking.Partner != nil {
		recipient = *picking.Partner
	}

	if len(picking.Packages) == 0 {
		file, err := g.render(cfg, picking, recipient, nil)
		if err != nil {
			return nil, err
		}
		return []delivery.Label{{
			Name:     picking.Name + ".pdf",
			File:     file,
			FileType: models.FileTypePDF,
		}}, nil
	}

	labels := make([]delivery.Label, 0, len(picking.Packages))
	for i := range picking.Packages {
		pack := picking.Packages[i]
		file, err := g.render(cfg, picking, recipient, &pack)
		if err != nil {
			return nil, err
		}
		trackingID := pack.ID
		labels = append(labels, delivery.Label{
			Name:       fmt.Sprintf("%s_%s.pdf", picking.Name, pack.Name),
			File:       file,
			FileType:   models.FileTypePDF,
			TrackingID: &trackingID,
		})
	}

	logger.FromContext(ctx).Debugw("GLS labels rendered", "picking", picking.Name, "count", len(labels))
	return labels, nil
}

func (g *Generator) render(cfg *settings.GLSSettings, picking *models.StockPicking, to models.ResPartner, pack *models.StockQuantPackage) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: labelWidth, Ht: labelHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	contentW := labelWidth - 2*margin

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(contentW/2, 10, "GLS", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(contentW/2, 10, tr("Customer "+cfg.CustomerCode), "", 1, "R", false, 0, "")

	if cfg.Test {
		pdf.SetFillColor(0, 0, 0)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(contentW, 7, "TEST - NOT FOR SHIPPING", "", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// Sender
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(contentW, 4, "From:", "", 1, "L", false, 0, "")
	pdf.MultiCell(contentW, 3.5, tr(fmt.Sprintf("%s\n%s\n%s-%s %s",
		g.sender.Name, g.sender.Street, g.sender.Country, g.sender.Zip, g.sender.City)), "", "L", false)

	// Recipient
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(contentW, 4, "To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	address := to.Name + "\n" + to.Street
	if to.Street2 != "" {
		address += "\n" + to.Street2
	}
	address += fmt.Sprintf("\n%s-%s %s", to.CountryCode, to.Zip, to.City)
	pdf.MultiCell(contentW, 5, tr(address), "1", "L", false)

	// Shipment data
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 8)
	rows := [][2]string{
		{"Picking", picking.Name},
		{"Warehouse", cfg.Warehouse},
		{"Contact", cfg.ContactFor(to.CountryCode)},
	}
	packName := ""
	if pack != nil {
		packName = pack.Name
		rows = append(rows,
			[2]string{"Pack", pack.Name},
			[2]string{"Weight", pack.ShippingWeight.StringFixed(2) + " kg"},
		)
	}
	for _, row := range rows {
		pdf.CellFormat(25, 4.5, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-25, 4.5, tr(row[1]), "", 1, "L", false, 0, "")
	}

	// QR code, bottom right
	qrPng, err := qrcode.Encode(QRContent(cfg.CustomerCode, picking.Name, packName), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr", labelWidth-margin-qrSize, labelHeight-margin-qrSize, qrSize, qrSize, false, imgOptions, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render GLS label for %s: %w", picking.Name, err)
	}
	return buf.Bytes(), nil
}
