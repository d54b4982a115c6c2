package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/joho/godotenv"

	"leadcrm/internal/config"
	"leadcrm/internal/database"
	"leadcrm/internal/domain/lead"
	"leadcrm/internal/modules/auth"
	"leadcrm/internal/pkg/jwt"
)

var firstNames = []string{"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry", "Iris", "Jack"}
var lastNames = []string{"Anderson", "Brown", "Clark", "Davis", "Evans", "Foster", "Garcia", "Hughes", "Irwin", "Jones"}
var companies = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Stark Industries", ""}
var sources = []string{"website", "referral", "conference", "cold call", ""}
var statuses = []lead.Status{
	lead.StatusNew, lead.StatusContacted, lead.StatusQualified,
	lead.StatusConverted, lead.StatusClosed,
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := lead.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := auth.AutoMigrateUsers(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Demo account via the same login-or-register path the API uses.
	ctx := context.Background()
	j := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	provider := auth.NewLocalProvider(db, j)
	manager := auth.NewSessionManager(auth.NewService(provider), auth.NewFileSessionCache(cfg.SessionCachePath))
	manager.Restore(ctx)

	if !manager.IsAuthenticated() {
		if !manager.Login(ctx, "demo@leadcrm.local", "demo-password") {
			log.Fatal("failed to create demo account")
		}
	}
	log.Println("Demo account ready:", manager.CurrentUser().Email)

	log.Println("Cleaning old leads...")
	db.Exec("DELETE FROM leads")

	leads := make([]*lead.Lead, 0, 30)
	for i := 0; i < 30; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		leads = append(leads, &lead.Lead{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			Phone:     fmt.Sprintf("+1-555-01%02d", i),
			Company:   companies[rand.Intn(len(companies))],
			Source:    sources[rand.Intn(len(sources))],
			Status:    statuses[rand.Intn(len(statuses))],
		})
	}

	repo := lead.NewRepository(db)
	if err := repo.BulkInsert(ctx, leads); err != nil {
		log.Fatal("seed insert failed:", err)
	}

	log.Printf("Seeded %d leads", len(leads))
}
