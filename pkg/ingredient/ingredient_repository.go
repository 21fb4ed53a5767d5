package ingredient

import (
	"Cucina-Backend/entities"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, page, limit int) ([]*entities.Ingredient, int64, error)
		GetAllIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id string) error

		AppendPrice(ctx context.Context, price *entities.IngredientPrice) error
		GetPrices(ctx context.Context, ingredientID string) ([]*entities.IngredientPrice, error)
		GetCurrentPrice(ctx context.Context, ingredientID string) (*entities.IngredientPrice, error)

		ReplaceAllergens(ctx context.Context, ingredientID uuid.UUID, codes []string) error
		GetAllergens(ctx context.Context, ingredientID string) ([]*entities.IngredientAllergen, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	normalized := strings.ToLower(strings.TrimSpace(name))
	if err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = ?", normalized).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, page, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).Limit(limit).
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}

	return ingredients, count, nil
}

// GetAllIngredients returns the full catalog ordered by id so fuzzy-match
// tie-breaking stays reproducible across calls.
func (r *ingredientRepository) GetAllIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&entities.IngredientPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ingredient_id = ?", id).Delete(&entities.IngredientAllergen{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Ingredient{}).Error
	})
}

func (r *ingredientRepository) AppendPrice(ctx context.Context, price *entities.IngredientPrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *ingredientRepository) GetPrices(ctx context.Context, ingredientID string) ([]*entities.IngredientPrice, error) {
	var prices []*entities.IngredientPrice
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("valid_from desc").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *ingredientRepository) GetCurrentPrice(ctx context.Context, ingredientID string) (*entities.IngredientPrice, error) {
	var price entities.IngredientPrice
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("valid_from desc").
		First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// ReplaceAllergens swaps the full allergen set in one transaction: delete
// everything for the ingredient, then insert the new codes. No diffing.
func (r *ingredientRepository) ReplaceAllergens(ctx context.Context, ingredientID uuid.UUID, codes []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", ingredientID).
			Delete(&entities.IngredientAllergen{}).Error; err != nil {
			return err
		}
		for _, code := range codes {
			allergen := &entities.IngredientAllergen{
				ID:           uuid.New(),
				IngredientID: ingredientID,
				Code:         code,
			}
			if err := tx.Create(allergen).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ingredientRepository) GetAllergens(ctx context.Context, ingredientID string) ([]*entities.IngredientAllergen, error) {
	var allergens []*entities.IngredientAllergen
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("code asc").
		Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}
