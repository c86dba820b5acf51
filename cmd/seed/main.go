// Seeds the construction catalog: phases, categories and their
// sub-categories. Safe to run repeatedly; it exits early when data exists.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brickbybrick/models"
	"brickbybrick/store"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("connect postgres: ", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		log.Fatal("migrate: ", err)
	}

	var cnt int64
	db.Model(&models.Category{}).Count(&cnt)
	if cnt > 0 {
		fmt.Println("Data already exists.")
		return
	}

	fmt.Println("Seeding data...")

	phases := []models.ConstructionPhase{
		{Title: "Planning", Description: "Blueprints, permits, land survey"},
		{Title: "Foundation", Description: "Excavation, concrete, waterproofing"},
		{Title: "Structure", Description: "Framing, roofing, windows"},
		{Title: "Utilities", Description: "Electrical, plumbing, HVAC"},
		{Title: "Finishing", Description: "Drywall, flooring, painting"},
		{Title: "Landscaping", Description: "Garden, driveway, fencing"},
	}
	for i := range phases {
		if err := db.Create(&phases[i]).Error; err != nil {
			log.Fatal("create phase: ", err)
		}
		fmt.Printf("Created phase: %s\n", phases[i].Title)
	}

	catalog := []struct {
		title string
		subs  []string
	}{
		{"Structure", []string{"Concrete", "Steel", "Bricks", "Lumber", "Roofing Materials"}},
		{"Interior", []string{"Furniture", "Appliances", "Lighting", "Decor"}},
		{"Utilities", []string{"Electrical Wiring", "Plumbing Pipes", "HVAC Unit", "Water Heater"}},
		{"Landscaping", []string{"Plants", "Soil", "Fencing", "Paving Stones"}},
		{"Permits & Fees", []string{"Building Permit", "Architect Fee", "Inspection Fee"}},
	}
	for _, entry := range catalog {
		cat := models.Category{
			Title:       entry.title,
			Description: fmt.Sprintf("Expenses related to %s", entry.title),
		}
		if err := db.Create(&cat).Error; err != nil {
			log.Fatal("create category: ", err)
		}
		fmt.Printf("Created category: %s\n", cat.Title)
		for _, sub := range entry.subs {
			sc := models.SubCategory{
				Title:       sub,
				Description: fmt.Sprintf("%s for %s", sub, entry.title),
				CategoryID:  cat.ID,
			}
			if err := db.Create(&sc).Error; err != nil {
				log.Fatal("create sub-category: ", err)
			}
			fmt.Printf("  - Created sub-category: %s\n", sub)
		}
	}
}
