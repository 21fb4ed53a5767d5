package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	MessageSuccessAddIngredient     = "ingredient added successfully"
	MessageSuccessUpdateIngredient  = "ingredient updated successfully"
	MessageSuccessDeleteIngredient  = "ingredient deleted successfully"
	MessageSuccessGetIngredients    = "ingredients retrieved successfully"
	MessageSuccessGetPriceHistory   = "price history retrieved successfully"
	MessageSuccessPreviewImport     = "import preview built successfully"
	MessageSuccessResolveImportItem = "import item resolved successfully"
	MessageSuccessCommitImport      = "import committed"

	MessageFailedAddIngredient     = "failed to add ingredient"
	MessageFailedUpdateIngredient  = "failed to update ingredient"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"
	MessageFailedGetIngredients    = "failed to retrieve ingredients"
	MessageFailedGetPriceHistory   = "failed to retrieve price history"
	MessageFailedPreviewImport     = "failed to build import preview"
	MessageFailedResolveImportItem = "failed to resolve import item"
	MessageFailedCommitImport      = "failed to commit import"

	ErrIngredientNotFound       = errors.New("ingredient not found")
	ErrMissingIngredientName    = errors.New("ingredient name is required")
	ErrDuplicateIngredientName  = errors.New("an ingredient with this name already exists")
	ErrInvalidUnit              = errors.New("invalid unit of measure")
	ErrInvalidCategory          = errors.New("invalid ingredient category")
	ErrInvalidAllergenCode      = errors.New("invalid allergen code")
	ErrNegativePrice            = errors.New("price must not be negative")
	ErrInvalidImportPayload     = errors.New("import payload must be a JSON array of records, or an object wrapping one")
	ErrEmptyImportBatch         = errors.New("import batch contains no records")
	ErrImportRecordMissingName  = errors.New("import record is missing the required name field")
	ErrImportBatchNotFound      = errors.New("import batch not found")
	ErrImportItemNotFound       = errors.New("import item index out of range")
	ErrImportItemNotAmbiguous   = errors.New("only similar items require resolution")
	ErrInvalidResolution        = errors.New("resolution must be 'create' or 'merge'")
	ErrUnresolvedImportItems    = errors.New("import batch has unresolved similar items")
)

// Units of measure. KG is the default when an import record omits the unit.
const (
	UnitGram       = "G"
	UnitKilogram   = "KG"
	UnitMilliliter = "ML"
	UnitLiter      = "L"
	UnitPiece      = "PC"

	DefaultUnit = UnitKilogram
)

var IngredientUnits = map[string]bool{
	UnitGram:       true,
	UnitKilogram:   true,
	UnitMilliliter: true,
	UnitLiter:      true,
	UnitPiece:      true,
}

var unitSynonyms = map[string]string{
	"GR":    UnitGram,
	"GRAM":  UnitGram,
	"KILO":  UnitKilogram,
	"LT":    UnitLiter,
	"PIECE": UnitPiece,
	"PZ":    UnitPiece,
	"UNIT":  UnitPiece,
}

// NormalizeUnit maps a raw unit string to its canonical code.
func NormalizeUnit(raw string) (string, bool) {
	unit := strings.ToUpper(strings.TrimSpace(raw))
	if IngredientUnits[unit] {
		return unit, true
	}
	if canonical, ok := unitSynonyms[unit]; ok {
		return canonical, true
	}
	return "", false
}

const CategoryOther = "OTHER"

var IngredientCategories = map[string]bool{
	"VEGETABLES":        true,
	"FRUIT":             true,
	"MEAT":              true,
	"FISH":              true,
	"DAIRY":             true,
	"CHEESE":            true,
	"EGGS":              true,
	"BREAD_BAKERY":      true,
	"PASTA_RICE":        true,
	"FLOUR_GRAINS":      true,
	"LEGUMES":           true,
	"OILS_FATS":         true,
	"HERBS_SPICES":      true,
	"SAUCES_CONDIMENTS": true,
	"BEVERAGES":         true,
	"SWEETS":            true,
	"FROZEN":            true,
	CategoryOther:       true,
}

var categorySynonyms = map[string]string{
	"VEGETABLE": "VEGETABLES",
	"FRUITS":    "FRUIT",
	"SEAFOOD":   "FISH",
	"SPICES":    "HERBS_SPICES",
	"HERBS":     "HERBS_SPICES",
	"BAKERY":    "BREAD_BAKERY",
	"BREAD":     "BREAD_BAKERY",
	"PASTA":     "PASTA_RICE",
	"RICE":      "PASTA_RICE",
	"OILS":      "OILS_FATS",
	"SAUCES":    "SAUCES_CONDIMENTS",
	"DRINKS":    "BEVERAGES",
}

// NormalizeCategory maps a raw category string to its canonical code. The
// second return value reports whether the input was recognized; callers on
// the import path fall back to OTHER instead of failing.
func NormalizeCategory(raw string) (string, bool) {
	category := strings.ToUpper(strings.TrimSpace(raw))
	if IngredientCategories[category] {
		return category, true
	}
	if canonical, ok := categorySynonyms[category]; ok {
		return canonical, true
	}
	return CategoryOther, false
}

// The 14 allergen categories mandated by EU Regulation 1169/2011.
var AllergenCodes = map[string]bool{
	"CEREALS":     true, // cereals containing gluten
	"CRUSTACEANS": true,
	"EGGS":        true,
	"FISH":        true,
	"PEANUTS":     true,
	"SOYBEANS":    true,
	"MILK":        true,
	"NUTS":        true, // tree nuts
	"CELERY":      true,
	"MUSTARD":     true,
	"SESAME":      true,
	"SULPHITES":   true,
	"LUPIN":       true,
	"MOLLUSCS":    true,
}

var allergenSynonyms = map[string]string{
	"GLUTEN":    "CEREALS",
	"WHEAT":     "CEREALS",
	"SHELLFISH": "CRUSTACEANS",
	"EGG":       "EGGS",
	"PEANUT":    "PEANUTS",
	"SOY":       "SOYBEANS",
	"SOYA":      "SOYBEANS",
	"LACTOSE":   "MILK",
	"DAIRY":     "MILK",
	"TREENUTS":  "NUTS",
	"TREE_NUTS": "NUTS",
	"SULFITES":  "SULPHITES",
	"MOLLUSKS":  "MOLLUSCS",
}

// NormalizeAllergenCode maps a raw allergen string to its canonical code.
func NormalizeAllergenCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if AllergenCodes[code] {
		return code, true
	}
	if canonical, ok := allergenSynonyms[code]; ok {
		return canonical, true
	}
	return "", false
}

// Classification of one import record against the catalog snapshot.
const (
	MatchNew     = "new"
	MatchUpdate  = "update"
	MatchSimilar = "similar"
)

// Resolution choices for a similar item.
const (
	ResolutionCreate = "create"
	ResolutionMerge  = "merge"
)

type (
	NutritionRequest struct {
		EnergyKcal    *float64 `json:"energy_kcal" validate:"omitempty,min=0"`
		Fat           *float64 `json:"fat" validate:"omitempty,min=0"`
		SaturatedFat  *float64 `json:"saturated_fat" validate:"omitempty,min=0"`
		Carbohydrates *float64 `json:"carbohydrates" validate:"omitempty,min=0"`
		Sugars        *float64 `json:"sugars" validate:"omitempty,min=0"`
		Fiber         *float64 `json:"fiber" validate:"omitempty,min=0"`
		Protein       *float64 `json:"protein" validate:"omitempty,min=0"`
		Salt          *float64 `json:"salt" validate:"omitempty,min=0"`
	}

	AddIngredientRequest struct {
		Name      string   `json:"name" validate:"required"`
		Unit      string   `json:"unit" validate:"omitempty"`
		Category  string   `json:"category" validate:"omitempty"`
		Price     *float64 `json:"price" validate:"omitempty,min=0"`
		Allergens []string `json:"allergens" validate:"omitempty"`
		NutritionRequest
	}

	UpdateIngredientRequest struct {
		Name      string   `json:"name" validate:"omitempty"`
		Unit      string   `json:"unit" validate:"omitempty"`
		Category  string   `json:"category" validate:"omitempty"`
		Price     *float64 `json:"price" validate:"omitempty,min=0"`
		Allergens []string `json:"allergens" validate:"omitempty"`
		NutritionRequest
	}

	IngredientResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Unit         string    `json:"unit"`
		Category     string    `json:"category"`
		CurrentPrice *float64  `json:"current_price,omitempty"`
		Allergens    []string  `json:"allergens"`
		CreatedAt    time.Time `json:"created_at"`
	}

	IngredientDetailResponse struct {
		IngredientResponse
		Nutrition NutritionRequest `json:"nutrition"`
		Prices    []PriceResponse  `json:"prices"`
	}

	PriceResponse struct {
		ID        string    `json:"id"`
		Price     float64   `json:"price"`
		ValidFrom time.Time `json:"valid_from"`
	}

	// ImportRecord is one row of an uploaded batch. It exists only for the
	// duration of one import operation and is never persisted.
	ImportRecord struct {
		Name      string   `json:"name"`
		Unit      string   `json:"unit,omitempty"`
		Category  string   `json:"category,omitempty"`
		Price     *float64 `json:"price,omitempty"`
		Allergens []string `json:"allergens,omitempty"`
		NutritionRequest
	}

	// ImportPreviewItem wraps one ImportRecord with its classification and
	// the human's pending resolution.
	ImportPreviewItem struct {
		Index        int          `json:"index"`
		Record       ImportRecord `json:"record"`
		Match        string       `json:"match"`
		MatchID      string       `json:"match_id,omitempty"`
		MatchName    string       `json:"match_name,omitempty"`
		Resolution   string       `json:"resolution"`
		Acknowledged bool         `json:"acknowledged"`
	}

	ImportPreviewResponse struct {
		BatchID      string              `json:"batch_id"`
		Items        []ImportPreviewItem `json:"items"`
		NewCount     int                 `json:"new_count"`
		UpdateCount  int                 `json:"update_count"`
		SimilarCount int                 `json:"similar_count"`
	}

	ResolveImportItemRequest struct {
		Index      *int   `json:"index" validate:"required"`
		Resolution string `json:"resolution" validate:"required,oneof=create merge"`
	}

	ImportCommitResponse struct {
		Created int      `json:"created"`
		Updated int      `json:"updated"`
		Errors  []string `json:"errors"`
	}
)
