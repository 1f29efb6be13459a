package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

type fakeStore struct {
	params    map[string]string
	companies map[int64]*models.ResCompany
	updates   int
}

func (f *fakeStore) GetParam(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.params[key]
	return v, ok, nil
}

func (f *fakeStore) GetCompany(ctx context.Context, id int64) (*models.ResCompany, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, apperror.NewNotFound("company", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) UpdateCompanyGLS(ctx context.Context, company *models.ResCompany) error {
	f.updates++
	cp := *company
	f.companies[company.ID] = &cp
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		params: map[string]string{
			"carrier_gls_customer_code": "2760179437",
			"carrier_gls_warehouse":     "FR0031",
		},
		companies: map[int64]*models.ResCompany{
			1: {ID: 1, Name: "My Company", GLSInterContactID: "250aaaaa", GLSFrContactID: "250bbbbb"},
		},
	}
}

func TestDefaultGetReturnsStoredValues(t *testing.T) {
	svc := NewGLSService(newFakeStore(), logger.Nop())

	values, err := svc.DefaultGet(context.Background(), []string{FieldGLSCustomerCode, FieldGLSWarehouse, "inter_contact_id"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[FieldGLSCustomerCode] != "2760179437" {
		t.Errorf("customer code = %q", values[FieldGLSCustomerCode])
	}
	if values[FieldGLSWarehouse] != "FR0031" {
		t.Errorf("warehouse = %q", values[FieldGLSWarehouse])
	}
	if _, ok := values["inter_contact_id"]; ok {
		t.Error("company-bound field must not be read from parameters")
	}
}

func TestDefaultGetMissingParameter(t *testing.T) {
	store := newFakeStore()
	delete(store.params, "carrier_gls_warehouse")
	svc := NewGLSService(store, logger.Nop())

	_, err := svc.DefaultGet(context.Background(), ReadOnlyFields)
	if !errors.Is(err, apperror.ErrMissingParameter) {
		t.Fatalf("expected missing parameter error, got %v", err)
	}
	ue, _ := apperror.As(err)
	if ue.Title != "Missing parameter" {
		t.Errorf("title = %q", ue.Title)
	}
	if !strings.HasPrefix(ue.Message, "'gls_warehouse' key is missing") {
		t.Errorf("message = %q", ue.Message)
	}
	if ue.Details["key"] != "carrier_gls_warehouse" {
		t.Errorf("details = %v", ue.Details)
	}
}

func TestDefaultGetOnlyRequestedFields(t *testing.T) {
	store := newFakeStore()
	delete(store.params, "carrier_gls_warehouse")
	svc := NewGLSService(store, logger.Nop())

	values, err := svc.DefaultGet(context.Background(), []string{FieldGLSCustomerCode})
	if err != nil {
		t.Fatalf("unrequested missing field must not fail: %v", err)
	}
	if len(values) != 1 {
		t.Errorf("expected 1 value, got %v", values)
	}
}

func TestLoadAndSave(t *testing.T) {
	store := newFakeStore()
	svc := NewGLSService(store, logger.Nop())
	ctx := context.Background()

	err := svc.Save(ctx, 1, GLSSettings{
		CustomerCode:   "ignored",
		InterContactID: "250cccc",
		FrContactID:    "250dddd",
		Test:           true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.updates != 1 {
		t.Errorf("expected 1 company update, got %d", store.updates)
	}

	got, err := svc.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := GLSSettings{
		CompanyID:      1,
		CustomerCode:   "2760179437",
		Warehouse:      "FR0031",
		InterContactID: "250cccc",
		FrContactID:    "250dddd",
		Test:           true,
	}
	if *got != want {
		t.Errorf("Load() = %+v, want %+v", *got, want)
	}
}

func TestLoadUnknownCompany(t *testing.T) {
	svc := NewGLSService(newFakeStore(), logger.Nop())
	if _, err := svc.Load(context.Background(), 42); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestContactFor(t *testing.T) {
	s := GLSSettings{InterContactID: "inter", FrContactID: "fr"}
	tests := map[string]string{"FR": "fr", "fr": "fr", "DE": "inter", "": "inter"}
	for country, want := range tests {
		if got := s.ContactFor(country); got != want {
			t.Errorf("ContactFor(%q) = %q, want %q", country, got, want)
		}
	}
}
