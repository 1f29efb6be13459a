package picking

import (
	"context"
	"sort"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// memStore is an in-memory Store. RunInTransaction restores the previous
// state when fn fails.
type memStore struct {
	carriers map[int64]*models.DeliveryCarrier
	pickings map[int64]*models.StockPicking
	options  map[int64][]int64 // picking id -> option ids
	labels   []models.ShippingLabel
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		carriers: map[int64]*models.DeliveryCarrier{},
		pickings: map[int64]*models.StockPicking{},
		options:  map[int64][]int64{},
		nextID:   100,
	}
}

func (m *memStore) addCarrier(c *models.DeliveryCarrier) {
	for i := range c.AvailableOptions {
		c.AvailableOptions[i].CarrierID = c.ID
	}
	m.carriers[c.ID] = c
}

func (m *memStore) addPicking(p *models.StockPicking, optionIDs ...int64) {
	m.pickings[p.ID] = p
	m.options[p.ID] = optionIDs
}

func (m *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	pickings := make(map[int64]*models.StockPicking, len(m.pickings))
	for k, v := range m.pickings {
		cp := *v
		pickings[k] = &cp
	}
	options := make(map[int64][]int64, len(m.options))
	for k, v := range m.options {
		options[k] = append([]int64(nil), v...)
	}
	labels := append([]models.ShippingLabel(nil), m.labels...)
	nextID := m.nextID

	if err := fn(ctx); err != nil {
		m.pickings, m.options, m.labels, m.nextID = pickings, options, labels, nextID
		return err
	}
	return nil
}

func (m *memStore) GetCarrier(ctx context.Context, id int64) (*models.DeliveryCarrier, error) {
	c, ok := m.carriers[id]
	if !ok {
		return nil, apperror.NewNotFound("carrier", id)
	}
	return c, nil
}

func (m *memStore) option(id int64) (models.DeliveryCarrierOption, bool) {
	for _, c := range m.carriers {
		for _, o := range c.AvailableOptions {
			if o.ID == id {
				return o, true
			}
		}
	}
	return models.DeliveryCarrierOption{}, false
}

func (m *memStore) CreatePicking(ctx context.Context, p *models.StockPicking, optionIDs []int64) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.pickings[p.ID] = &cp
	m.options[p.ID] = append([]int64(nil), optionIDs...)
	return nil
}

func (m *memStore) GetPicking(ctx context.Context, id int64) (*models.StockPicking, error) {
	stored, ok := m.pickings[id]
	if !ok {
		return nil, apperror.NewNotFound("picking", id)
	}
	p := *stored
	p.Carrier = nil
	if p.CarrierID != nil {
		p.Carrier = m.carriers[*p.CarrierID]
	}
	ids := append([]int64(nil), m.options[id]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	p.Options = nil
	for _, oid := range ids {
		if o, ok := m.option(oid); ok {
			p.Options = append(p.Options, o)
		}
	}
	p.SyncCarrierFields()
	return &p, nil
}

func (m *memStore) GetPickings(ctx context.Context, ids []int64) ([]models.StockPicking, error) {
	out := make([]models.StockPicking, 0, len(ids))
	for _, id := range ids {
		p, err := m.GetPicking(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) UpdatePickingCarrier(ctx context.Context, p *models.StockPicking, carrierID *int64, optionIDs []int64) error {
	stored := m.pickings[p.ID]
	stored.CarrierID = carrierID
	m.options[p.ID] = append([]int64(nil), optionIDs...)
	return nil
}

func (m *memStore) CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error {
	m.nextID++
	label.Attachment.ID = m.nextID
	label.AttachmentID = m.nextID
	m.nextID++
	label.ID = m.nextID
	m.labels = append(m.labels, *label)
	return nil
}

func (m *memStore) ListShippingLabels(ctx context.Context, resModel string, resID int64) ([]models.ShippingLabel, error) {
	var out []models.ShippingLabel
	for _, l := range m.labels {
		if l.Attachment.ResModel == resModel && l.Attachment.ResID == resID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) GetShippingLabel(ctx context.Context, id int64) (*models.ShippingLabel, error) {
	for _, l := range m.labels {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("shipping label", id)
}
