package migration

import (
	"Cucina-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientPrice{}); err != nil {
		log.Fatalf("Error migrating ingredient price database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientAllergen{}); err != nil {
		log.Fatalf("Error migrating ingredient allergen database: %v", err)
		return err
	}

	// Name is the natural key, unique regardless of case and padding.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients (LOWER(TRIM(name)));")

	fmt.Println("Database migration complete")
	return nil
}
