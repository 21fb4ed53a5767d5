package ingredient

import (
	"Cucina-Backend/domain"
	"context"
	"errors"
	"testing"
)

func TestAddIngredientDefaultsAndNormalization(t *testing.T) {
	repo := newMockIngredientRepository()
	service := NewIngredientService(repo)

	res, err := service.AddIngredient(context.Background(), domain.AddIngredientRequest{
		Name:      "Pomodoro",
		Unit:      "gr",
		Category:  "vegetable",
		Price:     floatPtr(1.50),
		Allergens: []string{"gluten"},
	})
	if err != nil {
		t.Fatalf("AddIngredient returned error: %v", err)
	}

	if res.Unit != domain.UnitGram {
		t.Errorf("unit = %q, want %q", res.Unit, domain.UnitGram)
	}
	if res.Category != "VEGETABLES" {
		t.Errorf("category = %q, want VEGETABLES", res.Category)
	}
	if len(res.Allergens) != 1 || res.Allergens[0] != "CEREALS" {
		t.Errorf("allergens = %v, want [CEREALS]", res.Allergens)
	}
	if res.CurrentPrice == nil || *res.CurrentPrice != 1.50 {
		t.Errorf("current price = %v, want 1.50", res.CurrentPrice)
	}
}

func TestAddIngredientRejectsDuplicateName(t *testing.T) {
	repo := newMockIngredientRepository()
	repo.addEntry("Pomodoro")
	service := NewIngredientService(repo)

	_, err := service.AddIngredient(context.Background(), domain.AddIngredientRequest{Name: " pomodoro "})
	if !errors.Is(err, domain.ErrDuplicateIngredientName) {
		t.Errorf("AddIngredient error = %v, want ErrDuplicateIngredientName", err)
	}
}

func TestAddIngredientRejectsUnknownEnums(t *testing.T) {
	service := NewIngredientService(newMockIngredientRepository())
	ctx := context.Background()

	if _, err := service.AddIngredient(ctx, domain.AddIngredientRequest{Name: "Sale", Unit: "barrel"}); !errors.Is(err, domain.ErrInvalidUnit) {
		t.Errorf("unknown unit error = %v, want ErrInvalidUnit", err)
	}
	if _, err := service.AddIngredient(ctx, domain.AddIngredientRequest{Name: "Sale", Category: "weird"}); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("unknown category error = %v, want ErrInvalidCategory", err)
	}
	if _, err := service.AddIngredient(ctx, domain.AddIngredientRequest{Name: "Sale", Allergens: []string{"KRYPTONITE"}}); !errors.Is(err, domain.ErrInvalidAllergenCode) {
		t.Errorf("unknown allergen error = %v, want ErrInvalidAllergenCode", err)
	}
}

func TestUpdateIngredientAppendsPrice(t *testing.T) {
	repo := newMockIngredientRepository()
	entry := repo.addEntry("Pomodoro")
	service := NewIngredientService(repo)
	ctx := context.Background()

	if err := service.UpdateIngredient(ctx, entry.ID.String(), domain.UpdateIngredientRequest{Price: floatPtr(1.00)}); err != nil {
		t.Fatalf("first update returned error: %v", err)
	}
	if err := service.UpdateIngredient(ctx, entry.ID.String(), domain.UpdateIngredientRequest{Price: floatPtr(1.20)}); err != nil {
		t.Fatalf("second update returned error: %v", err)
	}

	prices, err := service.GetPriceHistory(ctx, entry.ID.String())
	if err != nil {
		t.Fatalf("GetPriceHistory returned error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("price history has %d rows, want 2", len(prices))
	}
	if prices[0].Price != 1.20 {
		t.Errorf("latest price = %v, want 1.20", prices[0].Price)
	}
}

func TestUpdateIngredientReplacesAllergensIdempotently(t *testing.T) {
	repo := newMockIngredientRepository()
	entry := repo.addEntry("Farina")
	service := NewIngredientService(repo)
	ctx := context.Background()

	set := []string{"GLUTEN", "CEREALS", "MILK"}
	for i := 0; i < 2; i++ {
		if err := service.UpdateIngredient(ctx, entry.ID.String(), domain.UpdateIngredientRequest{Allergens: set}); err != nil {
			t.Fatalf("update %d returned error: %v", i, err)
		}
	}

	codes := repo.allergens[entry.ID.String()]
	if len(codes) != 2 || codes[0] != "CEREALS" || codes[1] != "MILK" {
		t.Errorf("allergens after repeated replace = %v, want [CEREALS MILK]", codes)
	}
}

func TestUpdateIngredientNotFound(t *testing.T) {
	service := NewIngredientService(newMockIngredientRepository())

	err := service.UpdateIngredient(context.Background(), "7b9ad7a0-33cf-4a2e-9d2b-000000000000", domain.UpdateIngredientRequest{Name: "X"})
	if !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Errorf("UpdateIngredient error = %v, want ErrIngredientNotFound", err)
	}
}

func TestDeleteIngredientRemovesPriceHistory(t *testing.T) {
	repo := newMockIngredientRepository()
	entry := repo.addEntry("Pomodoro")
	service := NewIngredientService(repo)
	ctx := context.Background()

	if err := service.UpdateIngredient(ctx, entry.ID.String(), domain.UpdateIngredientRequest{Price: floatPtr(1.00)}); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if err := service.DeleteIngredient(ctx, entry.ID.String()); err != nil {
		t.Fatalf("DeleteIngredient returned error: %v", err)
	}

	if len(repo.prices[entry.ID.String()]) != 0 {
		t.Error("price records survived the ingredient delete")
	}
}
