package delivery

import (
	"context"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// Label is one generated label file, ready to be stored as a shipping label
type Label struct {
	Name       string `json:"name"`
	File       []byte `json:"-"`
	FileType   string `json:"fileType"`
	TrackingID *int64 `json:"trackingId,omitempty"` // Pack the label belongs to
}

// DefaultLabelGenerator produces the single label of a picking.
// Carrier modules implement it when one label per picking is enough.
type DefaultLabelGenerator interface {
	GenerateDefaultLabel(ctx context.Context, picking *models.StockPicking) (file []byte, fileType string, err error)
}

// ShippingLabelGenerator produces every label of a picking.
// This is the contract the label action dispatches to.
type ShippingLabelGenerator interface {
	// CarrierType returns the carrier type this generator serves (e.g., "gls")
	CarrierType() string

	GenerateShippingLabels(ctx context.Context, picking *models.StockPicking) ([]Label, error)
}

// BaseGenerator is used for pickings whose carrier has no label support.
// It always fails with the unconfigured-label error.
type BaseGenerator struct{}

func (BaseGenerator) CarrierType() string { return "" }

// GenerateDefaultLabel always fails: a carrier module has to provide it
func (BaseGenerator) GenerateDefaultLabel(ctx context.Context, picking *models.StockPicking) ([]byte, string, error) {
	return nil, "", apperror.NewNoLabelConfigured()
}

// GenerateShippingLabels wraps the default label in a one-element list
func (g BaseGenerator) GenerateShippingLabels(ctx context.Context, picking *models.StockPicking) ([]Label, error) {
	return WrapDefault("", g).GenerateShippingLabels(ctx, picking)
}

// singleLabel adapts a DefaultLabelGenerator to ShippingLabelGenerator
type singleLabel struct {
	carrierType string
	gen         DefaultLabelGenerator
}

// WrapDefault turns a single-label generator into a ShippingLabelGenerator
// returning exactly one label named after the picking.
func WrapDefault(carrierType string, gen DefaultLabelGenerator) ShippingLabelGenerator {
	return &singleLabel{carrierType: carrierType, gen: gen}
}

func (s *singleLabel) CarrierType() string { return s.carrierType }

func (s *singleLabel) GenerateShippingLabels(ctx context.Context, picking *models.StockPicking) ([]Label, error) {
	file, fileType, err := s.gen.GenerateDefaultLabel(ctx, picking)
	if err != nil {
		return nil, err
	}
	return []Label{{
		Name:     picking.Name,
		File:     file,
		FileType: fileType,
	}}, nil
}
