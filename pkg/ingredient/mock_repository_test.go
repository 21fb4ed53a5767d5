package ingredient

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/entities"
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type mockIngredientRepository struct {
	ingredients []*entities.Ingredient // insertion order stands in for id order
	prices      map[string][]*entities.IngredientPrice
	allergens   map[string][]string
	createErr   error
}

func newMockIngredientRepository() *mockIngredientRepository {
	return &mockIngredientRepository{
		prices:    make(map[string][]*entities.IngredientPrice),
		allergens: make(map[string][]string),
	}
}

func (m *mockIngredientRepository) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	if m.createErr != nil {
		return m.createErr
	}
	normalized := strings.ToLower(strings.TrimSpace(ingredient.Name))
	for _, existing := range m.ingredients {
		if strings.ToLower(strings.TrimSpace(existing.Name)) == normalized {
			return domain.ErrDuplicateIngredientName
		}
	}
	m.ingredients = append(m.ingredients, ingredient)
	return nil
}

func (m *mockIngredientRepository) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	for _, ingredient := range m.ingredients {
		if ingredient.ID.String() == id {
			return ingredient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIngredientRepository) GetIngredientByName(_ context.Context, name string) (*entities.Ingredient, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, ingredient := range m.ingredients {
		if strings.ToLower(strings.TrimSpace(ingredient.Name)) == normalized {
			return ingredient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIngredientRepository) GetIngredients(_ context.Context, page, limit int) ([]*entities.Ingredient, int64, error) {
	start := (page - 1) * limit
	if start >= len(m.ingredients) {
		return nil, int64(len(m.ingredients)), nil
	}
	end := start + limit
	if end > len(m.ingredients) {
		end = len(m.ingredients)
	}
	return m.ingredients[start:end], int64(len(m.ingredients)), nil
}

func (m *mockIngredientRepository) GetAllIngredients(_ context.Context) ([]*entities.Ingredient, error) {
	return append([]*entities.Ingredient(nil), m.ingredients...), nil
}

func (m *mockIngredientRepository) UpdateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	for i, existing := range m.ingredients {
		if existing.ID == ingredient.ID {
			m.ingredients[i] = ingredient
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockIngredientRepository) DeleteIngredient(_ context.Context, id string) error {
	for i, ingredient := range m.ingredients {
		if ingredient.ID.String() == id {
			m.ingredients = append(m.ingredients[:i], m.ingredients[i+1:]...)
			delete(m.prices, id)
			delete(m.allergens, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockIngredientRepository) AppendPrice(_ context.Context, price *entities.IngredientPrice) error {
	key := price.IngredientID.String()
	m.prices[key] = append(m.prices[key], price)
	return nil
}

func (m *mockIngredientRepository) GetPrices(_ context.Context, ingredientID string) ([]*entities.IngredientPrice, error) {
	prices := append([]*entities.IngredientPrice(nil), m.prices[ingredientID]...)
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].ValidFrom.After(prices[j].ValidFrom)
	})
	return prices, nil
}

func (m *mockIngredientRepository) GetCurrentPrice(ctx context.Context, ingredientID string) (*entities.IngredientPrice, error) {
	prices, _ := m.GetPrices(ctx, ingredientID)
	if len(prices) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return prices[0], nil
}

func (m *mockIngredientRepository) ReplaceAllergens(_ context.Context, ingredientID uuid.UUID, codes []string) error {
	m.allergens[ingredientID.String()] = append([]string(nil), codes...)
	return nil
}

func (m *mockIngredientRepository) GetAllergens(_ context.Context, ingredientID string) ([]*entities.IngredientAllergen, error) {
	codes := append([]string(nil), m.allergens[ingredientID]...)
	sort.Strings(codes)
	allergens := make([]*entities.IngredientAllergen, 0, len(codes))
	for _, code := range codes {
		allergens = append(allergens, &entities.IngredientAllergen{
			ID:           uuid.New(),
			IngredientID: uuid.MustParse(ingredientID),
			Code:         code,
		})
	}
	return allergens, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (m *mockIngredientRepository) addEntry(name string) *entities.Ingredient {
	ingredient := &entities.Ingredient{
		ID:       uuid.New(),
		Name:     name,
		Unit:     domain.DefaultUnit,
		Category: domain.CategoryOther,
	}
	m.ingredients = append(m.ingredients, ingredient)
	return ingredient
}

func (m *mockIngredientRepository) findByName(name string) *entities.Ingredient {
	ingredient, err := m.GetIngredientByName(context.Background(), name)
	if err != nil {
		return nil
	}
	return ingredient
}
