package picking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

func ptr(v int64) *int64 { return &v }

// glsCarrier: 1 default, 2 mandatory, 3 optional
func glsCarrier() *models.DeliveryCarrier {
	return &models.DeliveryCarrier{
		ID:   1,
		Name: "GLS Business Parcel",
		Type: models.CarrierTypeGLS,
		Code: "BP",
		AvailableOptions: []models.DeliveryCarrierOption{
			{ID: 1, Name: "Saturday", Code: "SAT", State: models.OptionStateDefault},
			{ID: 2, Name: "Signature", Code: "SIG", State: models.OptionStateMandatory},
			{ID: 3, Name: "Insurance", Code: "INS", State: models.OptionStateOptional},
		},
	}
}

// plainCarrier has only optional options
func plainCarrier() *models.DeliveryCarrier {
	return &models.DeliveryCarrier{
		ID:   2,
		Name: "Pickup",
		Type: models.CarrierTypeManual,
		Code: "PICKUP",
		AvailableOptions: []models.DeliveryCarrierOption{
			{ID: 10, Name: "Notify", State: models.OptionStateOptional},
		},
	}
}

func newTestService(store *memStore, reg *delivery.Registry) *Service {
	if reg == nil {
		reg = delivery.NewRegistry()
	}
	return NewService(store, reg, nil, logger.Nop())
}

func TestCarrierIDChange(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	svc := newTestService(store, nil)

	res, err := svc.CarrierIDChange(context.Background(), ptr(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := OnChangeResult{
		Value:  &CarrierValues{CarrierType: "gls", CarrierCode: "BP", OptionIDs: []int64{1, 2}},
		Domain: &OptionDomain{OptionIDs: []int64{1, 2, 3}},
	}
	if !reflect.DeepEqual(res, want) {
		t.Errorf("CarrierIDChange() = %+v / %+v, want %+v / %+v", res.Value, res.Domain, want.Value, want.Domain)
	}
}

func TestCarrierIDChangeWithoutCarrier(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	for _, id := range []*int64{nil, ptr(0)} {
		res, err := svc.CarrierIDChange(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsEmpty() {
			t.Errorf("expected empty result, got %+v", res)
		}
	}
}

func TestCarrierIDChangeUnknownCarrier(t *testing.T) {
	svc := newTestService(newMemStore(), nil)
	if _, err := svc.CarrierIDChange(context.Background(), ptr(99)); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestOptionIDsChange(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	svc := newTestService(store, nil)

	tests := []struct {
		name      string
		options   []int64
		carrier   *int64
		wantReset bool
	}{
		{"no carrier", []int64{}, nil, false},
		{"all defaults kept", []int64{1, 2}, ptr(1), false},
		{"default removed, mandatory kept", []int64{2}, ptr(1), false},
		{"optional added", []int64{2, 3}, ptr(1), false},
		{"mandatory removed", []int64{1, 3}, ptr(1), true},
		{"everything removed", nil, ptr(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.OptionIDsChange(context.Background(), tt.options, tt.carrier)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.wantReset {
				if !res.IsEmpty() {
					t.Errorf("expected empty result, got %+v", res)
				}
				return
			}
			if res.Warning == nil {
				t.Fatal("expected a warning")
			}
			if res.Warning.Title != "User Error !" {
				t.Errorf("title = %q", res.Warning.Title)
			}
			if res.Warning.Message != "You can not remove a mandatory option.\nOptions are reset to default." {
				t.Errorf("message = %q", res.Warning.Message)
			}
			// Full reset, never a partial correction
			if !reflect.DeepEqual(res.Value.OptionIDs, []int64{1, 2}) {
				t.Errorf("options reset to %v, want [1 2]", res.Value.OptionIDs)
			}
			if !reflect.DeepEqual(res.Domain.OptionIDs, []int64{1, 2, 3}) {
				t.Errorf("domain = %v", res.Domain.OptionIDs)
			}
		})
	}
}

func TestCreateAppliesCarrierDefaults(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	svc := newTestService(store, nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "WH/OUT/0001", Type: models.PickingTypeOut, CarrierID: ptr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{1, 2}) {
		t.Errorf("options = %v, want [1 2]", p.OptionIDs())
	}
	if p.CarrierType != "gls" || p.CarrierCode != "BP" {
		t.Errorf("carrier fields = %q/%q", p.CarrierType, p.CarrierCode)
	}
	if p.State != models.PickingStateDraft {
		t.Errorf("state = %q", p.State)
	}
}

func TestCreateReplacesExplicitOptions(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	svc := newTestService(store, nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "WH/OUT/0002", CarrierID: ptr(1), OptionIDs: []int64{3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{1, 2}) {
		t.Errorf("options = %v, want carrier defaults [1 2]", p.OptionIDs())
	}
	if p.Type != models.PickingTypeInternal {
		t.Errorf("type = %q, want internal", p.Type)
	}
}

func TestCreateKeepsOptionsWhenCarrierHasNoDefaults(t *testing.T) {
	store := newMemStore()
	store.addCarrier(plainCarrier())
	svc := newTestService(store, nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "WH/OUT/0003", CarrierID: ptr(2), OptionIDs: []int64{10}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{10}) {
		t.Errorf("options = %v, want [10]", p.OptionIDs())
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	tests := []CreateInput{
		{Name: "  "},
		{Name: "WH/X/1", Type: "dropship"},
	}
	for _, in := range tests {
		if _, err := svc.Create(context.Background(), in); apperror.HTTPStatus(err) != 400 {
			t.Errorf("Create(%+v) error = %v, want validation error", in, err)
		}
	}
}

func TestChangeCarrier(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	store.addCarrier(plainCarrier())
	store.addPicking(&models.StockPicking{ID: 5, Name: "WH/OUT/0005", Type: models.PickingTypeOut, State: models.PickingStateAssigned, CarrierID: ptr(2)}, 10)
	svc := newTestService(store, nil)
	ctx := context.Background()

	// New carrier without options gets its defaults
	p, warning, err := svc.ChangeCarrier(ctx, 5, ptr(1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning != nil {
		t.Errorf("unexpected warning %+v", warning)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{1, 2}) {
		t.Errorf("options = %v, want [1 2]", p.OptionIDs())
	}

	// Removing the mandatory option resets to defaults
	p, warning, err = svc.ChangeCarrier(ctx, 5, ptr(1), []int64{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning == nil || warning.Code != WarningCodeMandatory {
		t.Errorf("expected mandatory warning, got %+v", warning)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{1, 2}) {
		t.Errorf("options = %v, want [1 2]", p.OptionIDs())
	}

	// Adding an optional one is kept
	p, _, err = svc.ChangeCarrier(ctx, 5, ptr(1), []int64{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.OptionIDs(), []int64{2, 3}) {
		t.Errorf("options = %v, want [2 3]", p.OptionIDs())
	}
}

func TestChangeCarrierKeepsOptionsOfSameCarrier(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	store.addCarrier(plainCarrier())
	store.addPicking(&models.StockPicking{ID: 5, Name: "WH/OUT/0005", Type: models.PickingTypeOut, State: models.PickingStateAssigned, CarrierID: ptr(2)}, 10)
	store.addPicking(&models.StockPicking{ID: 6, Name: "WH/OUT/0006", Type: models.PickingTypeOut, State: models.PickingStateAssigned, CarrierID: ptr(1)}, 1, 2, 3)
	svc := newTestService(store, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		pickingID int64
		carrierID int64
		want      []int64
	}{
		{"no mandatory options", 5, 2, []int64{10}},
		{"optional picks next to mandatory", 6, 1, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		p, warning, err := svc.ChangeCarrier(ctx, tt.pickingID, ptr(tt.carrierID), nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if warning != nil {
			t.Errorf("%s: unexpected warning %+v", tt.name, warning)
		}
		if !reflect.DeepEqual(p.OptionIDs(), tt.want) {
			t.Errorf("%s: options = %v, want %v", tt.name, p.OptionIDs(), tt.want)
		}
	}
}

func TestChangeCarrierOnDonePicking(t *testing.T) {
	store := newMemStore()
	store.addCarrier(glsCarrier())
	store.addPicking(&models.StockPicking{ID: 6, Name: "WH/OUT/0006", Type: models.PickingTypeOut, State: models.PickingStateDone})
	svc := newTestService(store, nil)

	_, _, err := svc.ChangeCarrier(context.Background(), 6, ptr(1), nil)
	ue, ok := apperror.As(err)
	if !ok || ue.Code != apperror.CodePickingDone {
		t.Fatalf("expected picking done error, got %v", err)
	}
	if store.pickings[6].CarrierID != nil {
		t.Error("carrier of a done picking must not change")
	}
}
