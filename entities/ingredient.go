package entities

import (
	"time"

	"github.com/google/uuid"
)

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Unit     string    `json:"unit"`     // "G", "KG", "ML", "L", "PC"
	Category string    `json:"category"` // see domain.IngredientCategories

	// Nutrition facts per 100 reference units, all optional.
	EnergyKcal    *float64 `json:"energy_kcal,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	SaturatedFat  *float64 `json:"saturated_fat,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Sugars        *float64 `json:"sugars,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Salt          *float64 `json:"salt,omitempty"`

	Prices    []*IngredientPrice    `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"prices,omitempty"`
	Allergens []*IngredientAllergen `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"allergens,omitempty"`
	Timestamp
}

// IngredientPrice rows are append-only: a price change inserts a new row
// with a later ValidFrom, existing rows are never updated or deleted.
type IngredientPrice struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"index" json:"ingredient_id"`
	Price        float64   `json:"price"`
	ValidFrom    time.Time `json:"valid_from"`
	Timestamp
}

type IngredientAllergen struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"index:idx_ingredient_allergen_code,unique" json:"ingredient_id"`
	Code         string    `gorm:"index:idx_ingredient_allergen_code,unique" json:"code"`
	Timestamp
}
