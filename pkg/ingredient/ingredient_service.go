package ingredient

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		AddIngredient(ctx context.Context, req domain.AddIngredientRequest) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) error
		DeleteIngredient(ctx context.Context, id string) error
		GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error)
		GetIngredientByID(ctx context.Context, id string) (domain.IngredientDetailResponse, error)
		GetPriceHistory(ctx context.Context, id string) ([]domain.PriceResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
	}
}

func (s *ingredientService) AddIngredient(ctx context.Context, req domain.AddIngredientRequest) (domain.IngredientResponse, error) {
	if normalizeName(req.Name) == "" {
		return domain.IngredientResponse{}, domain.ErrMissingIngredientName
	}

	unit := domain.DefaultUnit
	if req.Unit != "" {
		normalized, ok := domain.NormalizeUnit(req.Unit)
		if !ok {
			return domain.IngredientResponse{}, domain.ErrInvalidUnit
		}
		unit = normalized
	}

	category := domain.CategoryOther
	if req.Category != "" {
		normalized, ok := domain.NormalizeCategory(req.Category)
		if !ok {
			return domain.IngredientResponse{}, domain.ErrInvalidCategory
		}
		category = normalized
	}

	codes := make([]string, 0, len(req.Allergens))
	seen := map[string]bool{}
	for _, raw := range req.Allergens {
		code, ok := domain.NormalizeAllergenCode(raw)
		if !ok {
			return domain.IngredientResponse{}, domain.ErrInvalidAllergenCode
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	if _, err := s.ingredientRepository.GetIngredientByName(ctx, req.Name); err == nil {
		return domain.IngredientResponse{}, domain.ErrDuplicateIngredientName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		ID:            uuid.New(),
		Name:          req.Name,
		Unit:          unit,
		Category:      category,
		EnergyKcal:    req.EnergyKcal,
		Fat:           req.Fat,
		SaturatedFat:  req.SaturatedFat,
		Carbohydrates: req.Carbohydrates,
		Sugars:        req.Sugars,
		Fiber:         req.Fiber,
		Protein:       req.Protein,
		Salt:          req.Salt,
	}

	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	if req.Price != nil {
		price := &entities.IngredientPrice{
			ID:           uuid.New(),
			IngredientID: ingredient.ID,
			Price:        *req.Price,
			ValidFrom:    time.Now(),
		}
		if err := s.ingredientRepository.AppendPrice(ctx, price); err != nil {
			return domain.IngredientResponse{}, err
		}
	}

	if len(codes) > 0 {
		if err := s.ingredientRepository.ReplaceAllergens(ctx, ingredient.ID, codes); err != nil {
			return domain.IngredientResponse{}, err
		}
	}

	return domain.IngredientResponse{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		Unit:         ingredient.Unit,
		Category:     ingredient.Category,
		CurrentPrice: req.Price,
		Allergens:    codes,
		CreatedAt:    ingredient.CreatedAt,
	}, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if req.Name != "" && normalizeName(req.Name) != normalizeName(ingredient.Name) {
		if existing, err := s.ingredientRepository.GetIngredientByName(ctx, req.Name); err == nil && existing.ID != ingredient.ID {
			return domain.ErrDuplicateIngredientName
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		ingredient.Name = req.Name
	}

	if req.Unit != "" {
		unit, ok := domain.NormalizeUnit(req.Unit)
		if !ok {
			return domain.ErrInvalidUnit
		}
		ingredient.Unit = unit
	}

	if req.Category != "" {
		category, ok := domain.NormalizeCategory(req.Category)
		if !ok {
			return domain.ErrInvalidCategory
		}
		ingredient.Category = category
	}

	if req.EnergyKcal != nil {
		ingredient.EnergyKcal = req.EnergyKcal
	}
	if req.Fat != nil {
		ingredient.Fat = req.Fat
	}
	if req.SaturatedFat != nil {
		ingredient.SaturatedFat = req.SaturatedFat
	}
	if req.Carbohydrates != nil {
		ingredient.Carbohydrates = req.Carbohydrates
	}
	if req.Sugars != nil {
		ingredient.Sugars = req.Sugars
	}
	if req.Fiber != nil {
		ingredient.Fiber = req.Fiber
	}
	if req.Protein != nil {
		ingredient.Protein = req.Protein
	}
	if req.Salt != nil {
		ingredient.Salt = req.Salt
	}

	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return err
	}

	if req.Price != nil {
		price := &entities.IngredientPrice{
			ID:           uuid.New(),
			IngredientID: ingredient.ID,
			Price:        *req.Price,
			ValidFrom:    time.Now(),
		}
		if err := s.ingredientRepository.AppendPrice(ctx, price); err != nil {
			return err
		}
	}

	if req.Allergens != nil {
		codes := make([]string, 0, len(req.Allergens))
		seen := map[string]bool{}
		for _, raw := range req.Allergens {
			code, ok := domain.NormalizeAllergenCode(raw)
			if !ok {
				return domain.ErrInvalidAllergenCode
			}
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
		if err := s.ingredientRepository.ReplaceAllergens(ctx, ingredient.ID, codes); err != nil {
			return err
		}
	}

	return nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string) error {
	if _, err := s.ingredientRepository.GetIngredientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return s.ingredientRepository.DeleteIngredient(ctx, id)
}

func (s *ingredientService) GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.ingredientRepository.GetIngredients(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, item := range ingredients {
		entry, err := s.toResponse(ctx, item)
		if err != nil {
			return nil, 0, err
		}
		response = append(response, entry)
	}

	return response, count, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string) (domain.IngredientDetailResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientDetailResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientDetailResponse{}, err
	}

	entry, err := s.toResponse(ctx, ingredient)
	if err != nil {
		return domain.IngredientDetailResponse{}, err
	}

	prices, err := s.GetPriceHistory(ctx, id)
	if err != nil {
		return domain.IngredientDetailResponse{}, err
	}

	return domain.IngredientDetailResponse{
		IngredientResponse: entry,
		Nutrition: domain.NutritionRequest{
			EnergyKcal:    ingredient.EnergyKcal,
			Fat:           ingredient.Fat,
			SaturatedFat:  ingredient.SaturatedFat,
			Carbohydrates: ingredient.Carbohydrates,
			Sugars:        ingredient.Sugars,
			Fiber:         ingredient.Fiber,
			Protein:       ingredient.Protein,
			Salt:          ingredient.Salt,
		},
		Prices: prices,
	}, nil
}

func (s *ingredientService) GetPriceHistory(ctx context.Context, id string) ([]domain.PriceResponse, error) {
	prices, err := s.ingredientRepository.GetPrices(ctx, id)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PriceResponse, 0, len(prices))
	for _, price := range prices {
		response = append(response, domain.PriceResponse{
			ID:        price.ID.String(),
			Price:     price.Price,
			ValidFrom: price.ValidFrom,
		})
	}
	return response, nil
}

func (s *ingredientService) toResponse(ctx context.Context, ingredient *entities.Ingredient) (domain.IngredientResponse, error) {
	var currentPrice *float64
	price, err := s.ingredientRepository.GetCurrentPrice(ctx, ingredient.ID.String())
	if err == nil {
		currentPrice = &price.Price
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	allergens, err := s.ingredientRepository.GetAllergens(ctx, ingredient.ID.String())
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	codes := make([]string, 0, len(allergens))
	for _, allergen := range allergens {
		codes = append(codes, allergen.Code)
	}

	return domain.IngredientResponse{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		Unit:         ingredient.Unit,
		Category:     ingredient.Category,
		CurrentPrice: currentPrice,
		Allergens:    codes,
		CreatedAt:    ingredient.CreatedAt,
	}, nil
}
