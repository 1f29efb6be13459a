package gls

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/config"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
)

type staticLoader struct {
	cfg *settings.GLSSettings
	err error
	ids []int64
}

func (s *staticLoader) Load(ctx context.Context, companyID int64) (*settings.GLSSettings, error) {
	s.ids = append(s.ids, companyID)
	return s.cfg, s.err
}

func newTestGenerator(loader SettingsLoader) *Generator {
	sender := config.WarehouseConfig{Name: "Warehouse", Street: "Hauptstraße 1", Zip: "10115", City: "Berlin", Country: "DE"}
	return NewGenerator(loader, sender, 1, logger.Nop())
}

func testPicking() *models.StockPicking {
	companyID := int64(3)
	return &models.StockPicking{
		ID:        10,
		Name:      "WH/OUT/0010",
		Type:      models.PickingTypeOut,
		CompanyID: &companyID,
		Partner:   &models.ResPartner{Name: "Société Générale", Street: "1 rue de Paris", Zip: "75001", City: "Paris", CountryCode: "FR"},
		Carrier:   &models.DeliveryCarrier{Type: models.CarrierTypeGLS},
	}
}

func TestGenerateOneLabelPerPack(t *testing.T) {
	loader := &staticLoader{cfg: &settings.GLSSettings{CustomerCode: "2760179437", Warehouse: "FR0031", FrContactID: "250fr", Test: true}}
	gen := newTestGenerator(loader)

	p := testPicking()
	p.Packages = []models.StockQuantPackage{
		{ID: 7, Name: "PACK0007", ShippingWeight: decimal.RequireFromString("1.5")},
		{ID: 8, Name: "PACK0008", ShippingWeight: decimal.RequireFromString("12.25")},
	}

	labels, err := gen.GenerateShippingLabels(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	for i, l := range labels {
		if l.TrackingID == nil || *l.TrackingID != p.Packages[i].ID {
			t.Errorf("label %d tracking = %v, want %d", i, l.TrackingID, p.Packages[i].ID)
		}
		if l.FileType != models.FileTypePDF {
			t.Errorf("label %d file type = %q", i, l.FileType)
		}
		if !bytes.HasPrefix(l.File, []byte("%PDF")) {
			t.Errorf("label %d is not a PDF", i)
		}
	}
	if labels[0].Name != "WH/OUT/0010_PACK0007.pdf" {
		t.Errorf("label name = %q", labels[0].Name)
	}
	if len(loader.ids) != 1 || loader.ids[0] != 3 {
		t.Errorf("settings loaded for %v, want picking company 3", loader.ids)
	}
}

func TestGenerateSingleLabelWithoutPacks(t *testing.T) {
	loader := &staticLoader{cfg: &settings.GLSSettings{CustomerCode: "2760179437"}}
	gen := newTestGenerator(loader)

	p := testPicking()
	p.CompanyID = nil
	labels, err := gen.GenerateShippingLabels(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 1 || labels[0].TrackingID != nil {
		t.Fatalf("expected one untracked label, got %+v", labels)
	}
	if loader.ids[0] != 1 {
		t.Errorf("expected default company 1, got %d", loader.ids[0])
	}
}

func TestGenerateMissingSettings(t *testing.T) {
	loader := &staticLoader{err: apperror.NewMissingParameter("gls_customer_code", "carrier_gls_customer_code")}
	gen := newTestGenerator(loader)

	if _, err := gen.GenerateShippingLabels(context.Background(), testPicking()); !errors.Is(err, apperror.ErrMissingParameter) {
		t.Errorf("expected missing parameter error, got %v", err)
	}
}

func TestQRContent(t *testing.T) {
	if got := QRContent("123", "WH/OUT/1", "PACK1"); got != "GLS|123|WH/OUT/1|PACK1" {
		t.Errorf("QRContent() = %q", got)
	}
}
