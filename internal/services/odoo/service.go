package odoo

import (
	"context"
	"strings"
	"time"

	"github.com/xelth-com/eckshipgo/internal/config"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
)

const pageSize = 1000

// Source reads records from Odoo
type Source interface {
	Authenticate() (int, error)
	SearchRead(model string, domain []interface{}, fields []string, limit, offset int, result interface{}) error
}

// Store receives the synchronized records
type Store interface {
	UpsertCarrier(ctx context.Context, carrier *models.DeliveryCarrier) error
	UpsertCarrierOption(ctx context.Context, option *models.DeliveryCarrierOption) error
	SetParam(ctx context.Context, key, value string) error
}

type carrierRecord struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Type   models.OdooString `json:"type"`
	Code   models.OdooString `json:"code"`
	Active bool              `json:"active"`
}

type optionRecord struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Code      models.OdooString   `json:"code"`
	State     models.OdooString   `json:"state"`
	CarrierID models.OdooMany2One `json:"carrier_id"`
}

type paramRecord struct {
	Key   string            `json:"key"`
	Value models.OdooString `json:"value"`
}

// SyncResult counts the records written by one run
type SyncResult struct {
	Carriers int
	Options  int
	Params   int
}

// SyncService imports carriers, their options and carrier parameters from Odoo
type SyncService struct {
	source Source
	store  Store
	cfg    config.OdooConfig
	log    *logger.Logger
	stop   chan struct{}
}

// NewSyncService creates a new synchronization service
func NewSyncService(store Store, cfg config.OdooConfig, log *logger.Logger) *SyncService {
	return NewSyncServiceWithSource(NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password), store, cfg, log)
}

// NewSyncServiceWithSource uses the given source instead of an XML-RPC client
func NewSyncServiceWithSource(source Source, store Store, cfg config.OdooConfig, log *logger.Logger) *SyncService {
	return &SyncService{
		source: source,
		store:  store,
		cfg:    cfg,
		log:    log.WithComponent("odoo"),
		stop:   make(chan struct{}),
	}
}

// Start begins the background synchronization loop
func (s *SyncService) Start() {
	if s.cfg.URL == "" {
		s.log.Info("Odoo Sync disabled: ODOO_URL not configured")
		return
	}

	go func() {
		s.log.Info("📡 Odoo Sync Service started")

		if _, err := s.source.Authenticate(); err != nil {
			s.log.Errorf("❌ Odoo authentication failed: %v", err)
			return
		}

		s.runLogged()

		interval := time.Duration(s.cfg.SyncInterval) * time.Minute
		if s.cfg.SyncInterval <= 0 {
			interval = 15 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runLogged()
			case <-s.stop:
				s.log.Info("🛑 Odoo Sync Service stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *SyncService) Stop() {
	close(s.stop)
}

func (s *SyncService) runLogged() {
	res, err := s.RunFullSync(context.Background())
	if err != nil {
		s.log.Errorf("❌ Odoo Sync Error: %v", err)
		return
	}
	s.log.Infow("✅ Odoo: Full sync completed", "carriers", res.Carriers, "options", res.Options, "params", res.Params)
}

// RunFullSync runs all sync operations. Carriers come first so options
// can reference them.
func (s *SyncService) RunFullSync(ctx context.Context) (SyncResult, error) {
	var res SyncResult

	carrierIDs, err := s.syncCarriers(ctx)
	res.Carriers = len(carrierIDs)
	if err != nil {
		return res, err
	}
	if res.Options, err = s.syncOptions(ctx, carrierIDs); err != nil {
		return res, err
	}
	if res.Params, err = s.syncParams(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// searchAll pages through search_read until a short page is returned
func searchAll[T any](s *SyncService, model string, domain []interface{}, fields []string) ([]T, error) {
	var all []T
	for offset := 0; ; offset += pageSize {
		var page []T
		if err := s.source.SearchRead(model, domain, fields, pageSize, offset, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// syncCarriers returns the local id of every stored carrier by Odoo id
func (s *SyncService) syncCarriers(ctx context.Context) (map[int64]int64, error) {
	s.log.Info("🚚 Odoo: Syncing Carriers...")

	domain := []interface{}{
		[]interface{}{"active", "in", []interface{}{true, false}},
	}
	records, err := searchAll[carrierRecord](s, "delivery.carrier", domain, []string{"name", "type", "code", "active"})
	if err != nil {
		return nil, err
	}

	localIDs := make(map[int64]int64, len(records))
	for _, r := range records {
		odooID := r.ID
		carrier := models.DeliveryCarrier{OdooID: &odooID, Name: r.Name, Type: r.Type, Code: r.Code, Active: r.Active}
		if err := s.store.UpsertCarrier(ctx, &carrier); err != nil {
			s.log.Warnf("Failed to save carrier %d: %v", r.ID, err)
			continue
		}
		localIDs[r.ID] = carrier.ID
	}
	return localIDs, nil
}

func (s *SyncService) syncOptions(ctx context.Context, carrierIDs map[int64]int64) (int, error) {
	s.log.Info("🧩 Odoo: Syncing Carrier Options...")

	records, err := searchAll[optionRecord](s, "delivery.carrier.option", []interface{}{}, []string{"name", "code", "state", "carrier_id"})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range records {
		if r.CarrierID.ID == 0 {
			continue
		}
		state := r.State.String()
		if state == "" {
			state = models.OptionStateOptional
		}
		carrierID, ok := carrierIDs[r.CarrierID.ID]
		if !ok {
			s.log.Warnf("Skipping option %d: carrier %d was not synced", r.ID, r.CarrierID.ID)
			continue
		}
		odooID := r.ID
		opt := models.DeliveryCarrierOption{OdooID: &odooID, CarrierID: carrierID, Name: r.Name, Code: r.Code, State: state}
		if err := s.store.UpsertCarrierOption(ctx, &opt); err != nil {
			s.log.Warnf("Failed to save option %d: %v", r.ID, err)
			continue
		}
		count++
	}
	return count, nil
}

func (s *SyncService) syncParams(ctx context.Context) (int, error) {
	s.log.Info("🔑 Odoo: Syncing Carrier Parameters...")

	domain := []interface{}{
		[]interface{}{"key", "=like", settings.ParamPrefix + "%"},
	}
	records, err := searchAll[paramRecord](s, "ir.config_parameter", domain, []string{"key", "value"})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range records {
		if !strings.HasPrefix(r.Key, settings.ParamPrefix) {
			continue
		}
		if err := s.store.SetParam(ctx, r.Key, r.Value.String()); err != nil {
			s.log.Warnf("Failed to save parameter %s: %v", r.Key, err)
			continue
		}
		count++
	}
	return count, nil
}
