package main

import (
	"log"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	commissiondomain "github.com/muscleuplabs/muscleup/internal/commission/domain"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	customerdomain "github.com/muscleuplabs/muscleup/internal/customer/domain"
	"github.com/muscleuplabs/muscleup/internal/db"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	plandomain "github.com/muscleuplabs/muscleup/internal/plan/domain"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres dbname=muscleup port=5432 sslmode=disable"
	}

	var dialector gorm.Dialector
	if os.Getenv("DATABASE_DRIVER") == "sqlite" {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to create snowflake node: %v", err)
	}

	now := time.Now()

	plans := []plandomain.Plan{
		{
			Name:             "Basico",
			Description:      "Acceso general al area de pesas y cardio.",
			InscriptionPrice: decimal.NewFromInt(300),
			VisitPrice:       decimal.NewFromInt(80),
			WeeklyPrice:      decimal.NewFromInt(250),
			BiweeklyPrice:    decimal.NewFromInt(450),
			MonthlyPrice:     decimal.NewFromInt(800),
			BimonthlyPrice:   decimal.NewFromInt(1500),
			QuarterlyPrice:   decimal.NewFromInt(2100),
			SemesterPrice:    decimal.NewFromInt(3900),
			AnnualPrice:      decimal.NewFromInt(7200),
			IsActive:         true,
		},
		{
			Name:             "Premium",
			Description:      "Incluye clases grupales y acceso a regaderas.",
			InscriptionPrice: decimal.NewFromInt(500),
			VisitPrice:       decimal.NewFromInt(120),
			WeeklyPrice:      decimal.NewFromInt(380),
			BiweeklyPrice:    decimal.NewFromInt(700),
			MonthlyPrice:     decimal.NewFromInt(1200),
			BimonthlyPrice:   decimal.NewFromInt(2250),
			QuarterlyPrice:   decimal.NewFromInt(3200),
			SemesterPrice:    decimal.NewFromInt(5900),
			AnnualPrice:      decimal.NewFromInt(10800),
			IsActive:         true,
		},
	}

	for i := range plans {
		p := &plans[i]
		p.ID = node.Generate()
		p.CreatedAt = now
		p.UpdatedAt = now

		var existing plandomain.Plan
		err := gdb.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			log.Printf("Plan already seeded: %s (ID: %d)", existing.Name, existing.ID)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check plan %s: %v", p.Name, err)
		}
		if err := gdb.Create(p).Error; err != nil {
			log.Fatalf("Failed to create plan %s: %v", p.Name, err)
		}
		log.Printf("Created plan: %s (ID: %d)", p.Name, p.ID)
	}

	rules := []commissiondomain.Rule{
		{
			PaymentMethod: paymentdomain.MethodDebit,
			RuleType:      commissiondomain.RuleTypePercentage,
			Value:         decimal.NewFromFloat(2.5),
			IsActive:      true,
		},
		{
			PaymentMethod: paymentdomain.MethodCredit,
			RuleType:      commissiondomain.RuleTypePercentage,
			Value:         decimal.NewFromFloat(3.5),
			IsActive:      true,
		},
	}

	for i := range rules {
		r := &rules[i]
		r.ID = node.Generate()
		r.CreatedAt = now
		r.UpdatedAt = now

		var existing commissiondomain.Rule
		err := gdb.Where("payment_method = ?", r.PaymentMethod).First(&existing).Error
		if err == nil {
			log.Printf("Commission rule already seeded: %s", existing.PaymentMethod)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check commission rule %s: %v", r.PaymentMethod, err)
		}
		if err := gdb.Create(r).Error; err != nil {
			log.Fatalf("Failed to create commission rule %s: %v", r.PaymentMethod, err)
		}
		log.Printf("Created commission rule: %s %s %s", r.PaymentMethod, r.RuleType, r.Value)
	}

	coupon := coupondomain.Coupon{
		ID:            node.Generate(),
		Code:          "BIENVENIDA10",
		Description:   "10% de descuento de bienvenida",
		DiscountType:  coupondomain.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		MaxUses:       100,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var existingCoupon coupondomain.Coupon
	err = gdb.Where("code = ?", coupon.Code).First(&existingCoupon).Error
	switch {
	case err == nil:
		log.Printf("Coupon already seeded: %s", existingCoupon.Code)
	case err == gorm.ErrRecordNotFound:
		if err := gdb.Create(&coupon).Error; err != nil {
			log.Fatalf("Failed to create coupon %s: %v", coupon.Code, err)
		}
		log.Printf("Created coupon: %s (ID: %d)", coupon.Code, coupon.ID)
	default:
		log.Fatalf("Failed to check coupon %s: %v", coupon.Code, err)
	}

	customer := customerdomain.Customer{
		ID:        node.Generate(),
		FirstName: "Demo",
		LastName:  "Cliente",
		Email:     "demo@example.com",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existingCustomer customerdomain.Customer
	err = gdb.Where("email = ?", customer.Email).First(&existingCustomer).Error
	switch {
	case err == nil:
		log.Printf("Customer already seeded: %s", existingCustomer.Email)
	case err == gorm.ErrRecordNotFound:
		if err := gdb.Create(&customer).Error; err != nil {
			log.Fatalf("Failed to create customer: %v", err)
		}
		log.Printf("Created customer: %s %s (ID: %d)", customer.FirstName, customer.LastName, customer.ID)
	default:
		log.Fatalf("Failed to check customer: %v", err)
	}

	log.Println("Seed data ready")
}
