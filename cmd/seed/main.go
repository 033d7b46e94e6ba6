// Seeds the plan catalog and a couple of demo users for local development.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"internship-marketplace/internal/config"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
	pg "internship-marketplace/internal/infra/db/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	planRepo := pg.NewPostgresPlanRepo(pool)
	userRepo := pg.NewUserRepo(pool)

	plans := []struct {
		tier  string
		price int64
		desc  string
	}{
		{"basic", 500, "Post up to 3 internships"},
		{"standard", 1500, "Post up to 10 internships"},
		{"premium", 5000, "Unlimited internships and featured listings"},
	}
	for _, p := range plans {
		plan, err := model.NewPlan(uuid.NewString(), p.tier, p.price, p.desc)
		if err != nil {
			log.Fatalf("plan %s: %v", p.tier, err)
		}
		if err := planRepo.Save(ctx, plan); err != nil {
			log.Fatalf("save plan %s: %v", p.tier, err)
		}
		log.Printf("seeded plan %s id=%s price=%d", plan.Tier, plan.ID, plan.Price)
	}

	users := []struct {
		name, email, phone string
		role               model.UserRole
	}{
		{"Demo Student", "student@example.com", "+251900000001", model.RoleStudent},
		{"Demo Manager", "manager@example.com", "+251900000002", model.RoleCompany},
		{"Demo Admin", "admin@example.com", "+251900000003", model.RoleAdmin},
	}
	for _, u := range users {
		user, err := model.NewUser("", u.name, u.email, u.phone, u.role)
		if err != nil {
			log.Fatalf("user %s: %v", u.email, err)
		}
		if err := userRepo.Save(ctx, repository.NoTX, user); err != nil {
			log.Fatalf("save user %s: %v", u.email, err)
		}
		log.Printf("seeded user %s id=%s role=%s", user.Email, user.ID, user.Role)
	}
}
