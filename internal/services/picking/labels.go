package picking

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// Values is the caller context of an action, e.g. form defaults
// ("default_<field>" keys).
type Values map[string]any

// Without returns a copy of v without the given keys
func (v Values) Without(keys ...string) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// defaultString returns the "default_<field>" value when it is a string
func (v Values) defaultString(field string) (string, bool) {
	s, ok := v["default_"+field].(string)
	return s, ok && s != ""
}

// pickingDefaultKeys are set by picking forms and must not leak into
// attachment defaults.
var pickingDefaultKeys = []string{"default_type"}

var mimetypes = map[string]string{
	models.FileTypePDF: "application/pdf",
}

// GenerateShippingLabels returns the labels of a picking from the generator
// registered for its carrier type.
func (s *Service) GenerateShippingLabels(ctx context.Context, picking *models.StockPicking) ([]delivery.Label, error) {
	return s.generators.For(picking).GenerateShippingLabels(ctx, picking)
}

// ActionGenerateCarrierLabel generates the labels of every picking and stores
// each one as a shipping label attached to its picking. The batch runs in one
// transaction: any error discards every label of the call.
func (s *Service) ActionGenerateCarrierLabel(ctx context.Context, ids []int64, values Values) (bool, error) {
	attachmentValues := values.Without(pickingDefaultKeys...)

	type created struct {
		picking *models.StockPicking
		label   *models.ShippingLabel
	}
	var batch []created

	err := s.store.RunInTransaction(ctx, func(ctx context.Context) error {
		pickings, err := s.store.GetPickings(ctx, ids)
		if err != nil {
			return err
		}

		for i := range pickings {
			pick := &pickings[i]
			labels, err := s.GenerateShippingLabels(ctx, pick)
			if err != nil {
				return err
			}
			for _, label := range labels {
				resModel, err := pick.ResModel()
				if err != nil {
					return err
				}
				record := newShippingLabel(pick.ID, resModel, label, attachmentValues)
				if err := s.store.CreateShippingLabel(ctx, record); err != nil {
					return fmt.Errorf("store label %q of %s: %w", label.Name, pick.Name, err)
				}
				batch = append(batch, created{picking: pick, label: record})
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Warnw("label generation aborted", "pickings", ids, "error", err)
		return false, err
	}

	logger.FromContext(ctx).Infow("✅ shipping labels created", "pickings", len(ids), "labels", len(batch))
	if s.notifier != nil {
		for _, c := range batch {
			s.notifier.LabelCreated(c.picking, c.label)
		}
	}
	return true, nil
}

// newShippingLabel builds the label record and its attachment
func newShippingLabel(pickingID int64, resModel string, label delivery.Label, values Values) *models.ShippingLabel {
	fileType := label.FileType
	if fileType == "" {
		if def, ok := values.defaultString("file_type"); ok {
			fileType = def
		} else {
			fileType = models.FileTypePDF
		}
	}

	mimetype := mimetypes[fileType]
	if def, ok := values.defaultString("mimetype"); ok {
		mimetype = def
	}

	sum := sha256.Sum256(label.File)
	return &models.ShippingLabel{
		FileType:   fileType,
		TrackingID: label.TrackingID,
		Attachment: &models.IrAttachment{
			Name:     label.Name,
			ResModel: resModel,
			ResID:    pickingID,
			Datas:    base64.StdEncoding.EncodeToString(label.File),
			Mimetype: mimetype,
			FileSize: len(label.File),
			Checksum: hex.EncodeToString(sum[:]),
		},
	}
}

// Labels lists the shipping labels attached to a picking
func (s *Service) Labels(ctx context.Context, pickingID int64) ([]models.ShippingLabel, error) {
	p, err := s.store.GetPicking(ctx, pickingID)
	if err != nil {
		return nil, err
	}
	resModel, err := p.ResModel()
	if err != nil {
		return nil, err
	}
	return s.store.ListShippingLabels(ctx, resModel, p.ID)
}

// LabelFile returns the decoded content of a label
func (s *Service) LabelFile(ctx context.Context, labelID int64) (*models.ShippingLabel, []byte, error) {
	label, err := s.store.GetShippingLabel(ctx, labelID)
	if err != nil {
		return nil, nil, err
	}
	if label.Attachment == nil {
		return nil, nil, fmt.Errorf("shipping label %d has no attachment", labelID)
	}
	data, err := base64.StdEncoding.DecodeString(label.Attachment.Datas)
	if err != nil {
		return nil, nil, fmt.Errorf("decode label %d: %w", labelID, err)
	}
	return label, data, nil
}
