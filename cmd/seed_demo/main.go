package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xelth-com/eckshipgo/internal/config"
	"github.com/xelth-com/eckshipgo/internal/database"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/repository"
	"github.com/xelth-com/eckshipgo/internal/services/picking"
	"github.com/xelth-com/eckshipgo/internal/utils"
)

func main() {
	fmt.Println("🌱 eckShip Demo Data Seeder")
	fmt.Println()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	appLog, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		log.Fatalf("❌ Failed to init logger: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database, appLog)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	ctx := context.Background()
	repo := repository.New(db)

	var carrierCount int64
	db.Model(&models.DeliveryCarrier{}).Count(&carrierCount)
	if carrierCount > 0 {
		fmt.Printf("⚠️  Database already has %d carriers, nothing to do.\n", carrierCount)
		return
	}

	// 1. Company and partner
	fmt.Println("🏢 Creating company and partners...")
	company := models.ResCompany{Name: cfg.Warehouse.Name, GLSInterContactID: "2760000001", GLSFrContactID: "2500000001", GLSTest: true}
	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("❌ Failed to create company: %v", err)
	}
	partners := []models.ResPartner{
		{Name: "Müller GmbH", Street: "Friedrichstraße 10", Zip: "10117", City: "Berlin", CountryCode: "DE"},
		{Name: "Dupont SARL", Street: "12 rue de Rivoli", Zip: "75004", City: "Paris", CountryCode: "FR"},
	}
	if err := db.Create(&partners).Error; err != nil {
		log.Fatalf("❌ Failed to create partners: %v", err)
	}

	// 2. System parameters read by the GLS settings
	fmt.Println("🔑 Creating system parameters...")
	for key, value := range map[string]string{
		"carrier_gls_customer_code": "2760179437",
		"carrier_gls_warehouse":     "FR0031",
	} {
		if err := repo.SetParam(ctx, key, value); err != nil {
			log.Fatalf("❌ Failed to set %s: %v", key, err)
		}
	}

	// 3. Carriers with options
	fmt.Println("🚚 Creating carriers...")
	carriers := []models.DeliveryCarrier{
		{
			Name: "GLS Business Parcel", Type: models.CarrierTypeGLS, Code: "BP", Active: true,
			AvailableOptions: []models.DeliveryCarrierOption{
				{Name: "Signature", Code: "SIG", State: models.OptionStateMandatory},
				{Name: "Saturday delivery", Code: "SAT", State: models.OptionStateDefault},
				{Name: "Insurance", Code: "INS", State: models.OptionStateOptional},
			},
		},
		{Name: "Customer pickup", Type: models.CarrierTypeManual, Code: "PICKUP", Active: true},
	}
	for i := range carriers {
		if err := repo.CreateCarrier(ctx, &carriers[i]); err != nil {
			log.Fatalf("❌ Failed to create carrier: %v", err)
		}
		fmt.Printf("   ✓ Created carrier: %s (%d options)\n", carriers[i].Name, len(carriers[i].AvailableOptions))
	}

	// 4. Pickings through the service so carrier defaults apply
	fmt.Println("📋 Creating pickings...")
	svc := picking.NewService(repo, nil, nil, appLog)
	for i, partner := range partners {
		p, err := svc.Create(ctx, picking.CreateInput{
			Name:          fmt.Sprintf("WH/OUT/%04d", i+1),
			Type:          models.PickingTypeOut,
			State:         models.PickingStateAssigned,
			PartnerID:     &partners[i].ID,
			CompanyID:     &company.ID,
			ScheduledDate: time.Now().Add(24 * time.Hour),
			CarrierID:     &carriers[0].ID,
		})
		if err != nil {
			log.Fatalf("❌ Failed to create picking: %v", err)
		}

		pack := models.StockQuantPackage{
			Name:           fmt.Sprintf("PACK%05d", p.ID),
			PickingID:      &p.ID,
			ShippingWeight: decimal.NewFromFloat(2.5 + float64(i)),
			PackDate:       time.Now(),
		}
		if err := db.Create(&pack).Error; err != nil {
			log.Fatalf("❌ Failed to create package: %v", err)
		}
		fmt.Printf("   ✓ Created picking: %s for %s, options %v\n", p.Name, partner.Name, p.OptionIDs())
	}

	// 5. Admin user
	fmt.Println("👤 Creating admin user...")
	hash, err := utils.HashPassword("admin")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	admin := models.UserAuth{Username: "admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin, CompanyID: &company.ID, IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}

	fmt.Println()
	fmt.Println("✅ Demo data created. Login: admin@example.com / admin")
}
