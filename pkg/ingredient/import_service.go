package ingredient

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/entities"
	"Cucina-Backend/internal/utils/storage"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type (
	// ImportService drives the two-phase catalog import: preview classifies
	// an uploaded batch against the current catalog, a human resolves the
	// ambiguous items, and commit applies the batch item by item.
	ImportService interface {
		PreviewImport(ctx context.Context, payload []byte) (domain.ImportPreviewResponse, error)
		GetImportPreview(batchID string) (domain.ImportPreviewResponse, error)
		ResolveImportItem(batchID string, req domain.ResolveImportItemRequest) (domain.ImportPreviewItem, error)
		CommitImport(ctx context.Context, batchID string) (domain.ImportCommitResponse, error)
	}

	// importBatch is the resolution store for one in-flight preview. It
	// lives only between preview and commit; a restart drops pending
	// batches and the upload has to be previewed again.
	importBatch struct {
		id        uuid.UUID
		items     []domain.ImportPreviewItem
		createdAt time.Time
	}

	importService struct {
		ingredientRepository IngredientRepository
		s3                   storage.AwsS3

		mu      sync.Mutex
		batches map[string]*importBatch
	}
)

func NewImportService(ingredientRepository IngredientRepository, s3 storage.AwsS3) ImportService {
	return &importService{
		ingredientRepository: ingredientRepository,
		s3:                   s3,
		batches:              make(map[string]*importBatch),
	}
}

// parseImportPayload accepts a bare JSON array of records, or an object
// wrapping the array under "items" or "ingredients".
func parseImportPayload(payload []byte) ([]domain.ImportRecord, error) {
	var records []domain.ImportRecord
	if err := json.Unmarshal(payload, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Items       []domain.ImportRecord `json:"items"`
		Ingredients []domain.ImportRecord `json:"ingredients"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil, domain.ErrInvalidImportPayload
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	if wrapped.Ingredients != nil {
		return wrapped.Ingredients, nil
	}
	return nil, domain.ErrInvalidImportPayload
}

func (s *importService) PreviewImport(ctx context.Context, payload []byte) (domain.ImportPreviewResponse, error) {
	records, err := parseImportPayload(payload)
	if err != nil {
		return domain.ImportPreviewResponse{}, err
	}
	if len(records) == 0 {
		return domain.ImportPreviewResponse{}, domain.ErrEmptyImportBatch
	}
	for i, record := range records {
		if normalizeName(record.Name) == "" {
			return domain.ImportPreviewResponse{}, fmt.Errorf("record %d: %w", i, domain.ErrImportRecordMissingName)
		}
	}

	// One snapshot for the whole batch: items never match each other, only
	// the catalog as it stood before the import.
	catalog, err := s.ingredientRepository.GetAllIngredients(ctx)
	if err != nil {
		return domain.ImportPreviewResponse{}, err
	}

	batch := &importBatch{
		id:        uuid.New(),
		items:     make([]domain.ImportPreviewItem, 0, len(records)),
		createdAt: time.Now(),
	}

	for i, record := range records {
		result := classifyName(record.Name, catalog)
		item := domain.ImportPreviewItem{
			Index:  i,
			Record: record,
			Match:  result.kind,
		}
		switch result.kind {
		case domain.MatchNew:
			item.Resolution = domain.ResolutionCreate
			item.Acknowledged = true
		case domain.MatchUpdate:
			item.Resolution = domain.ResolutionMerge
			item.Acknowledged = true
			item.MatchID = result.entry.ID.String()
			item.MatchName = result.entry.Name
		case domain.MatchSimilar:
			item.Resolution = domain.ResolutionCreate
			item.Acknowledged = false
			item.MatchID = result.entry.ID.String()
			item.MatchName = result.entry.Name
		}
		batch.items = append(batch.items, item)
	}

	s.mu.Lock()
	s.batches[batch.id.String()] = batch
	s.mu.Unlock()

	s.archivePayload(ctx, batch.id.String(), payload)

	return s.previewResponse(batch), nil
}

// archivePayload keeps a copy of the raw upload for audit. Failure only
// logs; the preview itself is unaffected.
func (s *importService) archivePayload(ctx context.Context, batchID string, payload []byte) {
	if s.s3 == nil {
		return
	}
	objectKey := fmt.Sprintf("imports/%s.json", batchID)
	if _, err := s.s3.UploadBytes(ctx, objectKey, payload, "application/json"); err != nil {
		log.Printf("failed to archive import payload %s: %v", batchID, err)
	}
}

func (s *importService) GetImportPreview(batchID string) (domain.ImportPreviewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return domain.ImportPreviewResponse{}, domain.ErrImportBatchNotFound
	}
	return s.previewResponse(batch), nil
}

// ResolveImportItem records the human's choice for a similar item. Calling
// it again before commit overwrites the previous choice.
func (s *importService) ResolveImportItem(batchID string, req domain.ResolveImportItemRequest) (domain.ImportPreviewItem, error) {
	if req.Resolution != domain.ResolutionCreate && req.Resolution != domain.ResolutionMerge {
		return domain.ImportPreviewItem{}, domain.ErrInvalidResolution
	}
	if req.Index == nil {
		return domain.ImportPreviewItem{}, domain.ErrImportItemNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return domain.ImportPreviewItem{}, domain.ErrImportBatchNotFound
	}
	if *req.Index < 0 || *req.Index >= len(batch.items) {
		return domain.ImportPreviewItem{}, domain.ErrImportItemNotFound
	}

	item := &batch.items[*req.Index]
	if item.Match != domain.MatchSimilar {
		return domain.ImportPreviewItem{}, domain.ErrImportItemNotAmbiguous
	}

	item.Resolution = req.Resolution
	item.Acknowledged = true
	return *item, nil
}

// CommitImport applies the resolved batch sequentially. It re-verifies the
// acknowledgment invariant even though the handler checks it too: a batch
// with an unresolved near-duplicate must never silently create a duplicate
// catalog entry. Item failures are collected, not raised; partial success
// is the normal outcome.
func (s *importService) CommitImport(ctx context.Context, batchID string) (domain.ImportCommitResponse, error) {
	s.mu.Lock()
	batch, ok := s.batches[batchID]
	if !ok {
		s.mu.Unlock()
		return domain.ImportCommitResponse{}, domain.ErrImportBatchNotFound
	}
	for _, item := range batch.items {
		if !item.Acknowledged {
			s.mu.Unlock()
			return domain.ImportCommitResponse{}, domain.ErrUnresolvedImportItems
		}
	}
	delete(s.batches, batchID)
	s.mu.Unlock()

	summary := domain.ImportCommitResponse{Errors: []string{}}
	for _, item := range batch.items {
		s.applyImportItem(ctx, item, &summary)
	}
	return summary, nil
}

func (s *importService) applyImportItem(ctx context.Context, item domain.ImportPreviewItem, summary *domain.ImportCommitResponse) {
	record := item.Record

	merge := item.Match == domain.MatchUpdate ||
		(item.Match == domain.MatchSimilar && item.Resolution == domain.ResolutionMerge)

	if merge {
		s.applyMerge(ctx, item, summary)
		return
	}

	ingredient := &entities.Ingredient{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(record.Name),
		Unit:          s.resolveUnit(record, item.Index, summary),
		Category:      s.resolveCategory(record.Category, item.Index, summary),
		EnergyKcal:    record.EnergyKcal,
		Fat:           record.Fat,
		SaturatedFat:  record.SaturatedFat,
		Carbohydrates: record.Carbohydrates,
		Sugars:        record.Sugars,
		Fiber:         record.Fiber,
		Protein:       record.Protein,
		Salt:          record.Salt,
	}

	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): create failed: %v", item.Index, record.Name, err))
		return
	}
	summary.Created++

	s.applyPrice(ctx, ingredient.ID, record, item.Index, summary)
	s.applyAllergens(ctx, ingredient.ID, record, item.Index, summary)
}

// applyMerge writes into the matched catalog entry. For a similar item
// resolved as merge, the candidate's existing name stays: the merge means
// "this upload row is that entry", the incoming name variant is discarded.
func (s *importService) applyMerge(ctx context.Context, item domain.ImportPreviewItem, summary *domain.ImportCommitResponse) {
	record := item.Record

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, item.MatchID)
	if err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): matched entry %s no longer exists: %v", item.Index, record.Name, item.MatchID, err))
		return
	}

	if record.Unit != "" {
		unit, ok := domain.NormalizeUnit(record.Unit)
		if !ok {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("item %d (%s): unknown unit %q kept existing %q", item.Index, record.Name, record.Unit, ingredient.Unit))
		} else {
			ingredient.Unit = unit
		}
	}
	if record.Category != "" {
		ingredient.Category = s.resolveCategory(record.Category, item.Index, summary)
	}

	// Nutrition is overwritten wholesale: absent fields clear the stored
	// value, matching the upload being the new source of truth.
	ingredient.EnergyKcal = record.EnergyKcal
	ingredient.Fat = record.Fat
	ingredient.SaturatedFat = record.SaturatedFat
	ingredient.Carbohydrates = record.Carbohydrates
	ingredient.Sugars = record.Sugars
	ingredient.Fiber = record.Fiber
	ingredient.Protein = record.Protein
	ingredient.Salt = record.Salt

	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): update failed: %v", item.Index, record.Name, err))
		return
	}
	summary.Updated++

	s.applyPrice(ctx, ingredient.ID, record, item.Index, summary)
	s.applyAllergens(ctx, ingredient.ID, record, item.Index, summary)
}

func (s *importService) applyPrice(ctx context.Context, ingredientID uuid.UUID, record domain.ImportRecord, index int, summary *domain.ImportCommitResponse) {
	if record.Price == nil {
		return
	}
	if *record.Price < 0 {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): %v", index, record.Name, domain.ErrNegativePrice))
		return
	}
	price := &entities.IngredientPrice{
		ID:           uuid.New(),
		IngredientID: ingredientID,
		Price:        *record.Price,
		ValidFrom:    time.Now(),
	}
	if err := s.ingredientRepository.AppendPrice(ctx, price); err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): price append failed: %v", index, record.Name, err))
	}
}

func (s *importService) applyAllergens(ctx context.Context, ingredientID uuid.UUID, record domain.ImportRecord, index int, summary *domain.ImportCommitResponse) {
	if record.Allergens == nil {
		return
	}
	codes := make([]string, 0, len(record.Allergens))
	seen := map[string]bool{}
	for _, raw := range record.Allergens {
		code, ok := domain.NormalizeAllergenCode(raw)
		if !ok {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("item %d (%s): dropped unknown allergen code %q", index, record.Name, raw))
			continue
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if err := s.ingredientRepository.ReplaceAllergens(ctx, ingredientID, codes); err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): allergen replace failed: %v", index, record.Name, err))
	}
}

func (s *importService) resolveUnit(record domain.ImportRecord, index int, summary *domain.ImportCommitResponse) string {
	if record.Unit == "" {
		return domain.DefaultUnit
	}
	unit, ok := domain.NormalizeUnit(record.Unit)
	if !ok {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d (%s): unknown unit %q defaulted to %s", index, record.Name, record.Unit, domain.DefaultUnit))
		return domain.DefaultUnit
	}
	return unit
}

func (s *importService) resolveCategory(raw string, index int, summary *domain.ImportCommitResponse) string {
	if raw == "" {
		return domain.CategoryOther
	}
	category, known := domain.NormalizeCategory(raw)
	if !known {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("item %d: unknown category %q defaulted to %s", index, raw, domain.CategoryOther))
	}
	return category
}

func (s *importService) previewResponse(batch *importBatch) domain.ImportPreviewResponse {
	response := domain.ImportPreviewResponse{
		BatchID: batch.id.String(),
		Items:   append([]domain.ImportPreviewItem(nil), batch.items...),
	}
	for _, item := range batch.items {
		switch item.Match {
		case domain.MatchNew:
			response.NewCount++
		case domain.MatchUpdate:
			response.UpdateCount++
		case domain.MatchSimilar:
			response.SimilarCount++
		}
	}
	return response
}
