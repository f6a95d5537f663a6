package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/amorpet/amorpet-backend/config"
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/amorpet/amorpet-backend/pkg/util"
	"gorm.io/gorm"
)

// Seeds the super admin account and the starter reference data. Safe to run
// more than once: existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := seedSuperAdmin(); err != nil {
		log.Fatal("Failed to seed super admin:", err)
	}
	if err := seedCategories(); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}
	if err := seedColors(); err != nil {
		log.Fatal("Failed to seed colors:", err)
	}

	fmt.Println("Seed completed successfully!")
}

func seedSuperAdmin() error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping super admin")
		return nil
	}

	userRepo := repository.NewUserRepository(db.GetDB())

	if _, err := userRepo.FindByEmail(email); err == nil {
		fmt.Printf("Super admin %s already exists, skipping\n", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Super Admin",
		Role:         model.RoleSuperAdmin,
	}
	if err := userRepo.Create(user); err != nil {
		return err
	}

	fmt.Printf("Super admin created: %s\n", email)
	return nil
}

func seedCategories() error {
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	categories := []model.Category{
		{Name: "Camas", Description: "Camas e almofadas para pets", Icon: "bed"},
		{Name: "Roupas", Description: "Roupas e acessórios de vestir", Icon: "shirt"},
		{Name: "Brinquedos", Description: "Brinquedos e enriquecimento", Icon: "toy"},
		{Name: "Coleiras", Description: "Coleiras, guias e peitorais", Icon: "leash"},
	}

	created := 0
	for _, category := range categories {
		if _, err := categoryRepo.FindByName(category.Name); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		c := category
		if err := categoryRepo.Create(&c); err != nil {
			return err
		}
		created++
	}

	fmt.Printf("Categories seeded: %d new\n", created)
	return nil
}

func seedColors() error {
	colorRepo := repository.NewColorRepository(db.GetDB())

	existing, err := colorRepo.FindAll()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, color := range existing {
		seen[color.Name] = true
	}

	colors := []model.Color{
		{Name: "Azul", HexCode: "#1E6FBA"},
		{Name: "Rosa", HexCode: "#E91E8C"},
		{Name: "Cinza", HexCode: "#8A8A8A"},
		{Name: "Caramelo", HexCode: "#B5651D"},
		{Name: "Preto", HexCode: "#1A1A1A"},
	}

	created := 0
	for _, color := range colors {
		if seen[color.Name] {
			continue
		}
		c := color
		if err := colorRepo.Create(&c); err != nil {
			return err
		}
		created++
	}

	fmt.Printf("Colors seeded: %d new\n", created)
	return nil
}
