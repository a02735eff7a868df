package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go-isitvegan-api/internal/apperror"
	"go-isitvegan-api/internal/barcode"
	"go-isitvegan-api/internal/imageref"
	"go-isitvegan-api/internal/model"
	"go-isitvegan-api/internal/recognition"
	"go-isitvegan-api/internal/repository"
	"go-isitvegan-api/internal/ws"
	"go-isitvegan-api/pkg/validator"

	"gorm.io/gorm"
)

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	ID    string
	Email string
	Name  string
}

// Uploader stores product photos in object storage.
type Uploader interface {
	Upload(path string, data []byte, contentType string) error
	PublicURL(path string) string
}

// Classifier answers with product name, brand, and confidence for a photo.
type Classifier interface {
	ClassifyProductPhoto(image []byte) (*recognition.Result, error)
}

type UpdateImageRequest struct {
	UPC      string `json:"upc" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

type CreateFromPhotoRequest struct {
	UPC       string `json:"upc" validate:"required"`
	PhotoData string `json:"photoData" validate:"required"` // base64-encoded JPEG
}

type PhotoResult struct {
	Product     *model.Product      `json:"product"`
	Recognition *recognition.Result `json:"recognition"`
}

type CatalogStats struct {
	TotalProducts    int64                            `json:"total_products"`
	TotalIngredients int64                            `json:"total_ingredients"`
	Classifications  []repository.ClassificationCount `json:"classifications"`
	RecentlyUpdated  []model.Product                  `json:"recently_updated"`
}

type CatalogService interface {
	UpdateProductImage(req *UpdateImageRequest, actor Actor) (*model.Product, error)
	CreateProductFromPhoto(req *CreateFromPhotoRequest, actor Actor) (*PhotoResult, error)
	LookupProduct(code string) (*model.Product, error)
	LookupIngredient(title string) (*model.Ingredient, error)
	GetCatalogStats() (*CatalogStats, error)
}

type catalogService struct {
	products       repository.ProductRepository
	ingredients    repository.IngredientRepository
	actions        repository.ActionLogRepository
	storage        Uploader
	classifier     Classifier
	hub            *ws.Hub
	supabaseURL    string
	supabaseBucket string
}

func NewCatalogService(
	products repository.ProductRepository,
	ingredients repository.IngredientRepository,
	actions repository.ActionLogRepository,
	storage Uploader,
	classifier Classifier,
	hub *ws.Hub,
	supabaseURL, supabaseBucket string,
) CatalogService {
	return &catalogService{
		products:       products,
		ingredients:    ingredients,
		actions:        actions,
		storage:        storage,
		classifier:     classifier,
		hub:            hub,
		supabaseURL:    supabaseURL,
		supabaseBucket: supabaseBucket,
	}
}

// UpdateProductImage resolves a product by any barcode variant and persists a
// new image reference plus timestamp. The action-log append afterwards is
// best-effort and never fails the request.
func (s *catalogService) UpdateProductImage(req *UpdateImageRequest, actor Actor) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.MissingFields(failedFields(errs))
	}

	norm := barcode.Normalize(req.UPC)

	product, err := s.products.FindByCode(req.UPC, norm.UPC, norm.EAN13)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ProductNotFound(req.UPC)
		}
		return nil, apperror.QueryFailed(err)
	}

	// Platform-hosted URLs collapse to the marker; external URLs persist as-is.
	stored := imageref.Abstract(req.ImageURL, s.supabaseURL)
	now := time.Now().UTC().Format(time.RFC3339)

	updated, err := s.products.UpdateImage(product.EAN13, stored, now)
	if err != nil {
		return nil, apperror.UpdateFailed(err)
	}

	// The mutation already succeeded; a failed append must not change that.
	s.logAction(actor, model.ActionUpdateProductImage, req.UPC, "success", map[string]interface{}{
		"ean13":    updated.EAN13,
		"imageurl": stored,
	})
	s.publish("product_image_updated", updated, actor)

	return updated, nil
}

// CreateProductFromPhoto classifies the photo with the external recognition
// API, uploads it to platform storage, and creates the product (or refreshes
// its image if a record already exists). Internally-hosted images are stored
// as the opaque marker, never the live URL.
func (s *catalogService) CreateProductFromPhoto(req *CreateFromPhotoRequest, actor Actor) (*PhotoResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.MissingFields(failedFields(errs))
	}

	photo, err := base64.StdEncoding.DecodeString(req.PhotoData)
	if err != nil {
		return nil, apperror.ValidationFailed("photoData must be base64-encoded image data")
	}

	result, err := s.classifier.ClassifyProductPhoto(photo)
	if err != nil {
		return nil, apperror.Unknown("Image recognition failed", err)
	}

	norm := barcode.Normalize(req.UPC)
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.storage.Upload(norm.EAN13+".jpg", photo, "image/jpeg"); err != nil {
		return nil, apperror.Unknown("Failed to upload product image", err)
	}

	product, err := s.products.FindByCode(req.UPC, norm.UPC, norm.EAN13)
	switch {
	case err == nil:
		product, err = s.products.UpdateImage(product.EAN13, imageref.Marker, now)
		if err != nil {
			return nil, apperror.UpdateFailed(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		product = &model.Product{
			ProductName: result.ProductName,
			Brand:       result.Brand,
			UPC:         req.UPC,
			EAN13:       norm.EAN13,
			ImageURL:    imageref.Marker,
			Created:     now,
			LastUpdated: now,
		}
		if err := s.products.Create(product); err != nil {
			return nil, apperror.UpdateFailed(err)
		}
	default:
		return nil, apperror.QueryFailed(err)
	}

	s.logAction(actor, model.ActionCreateProductFromPhoto, req.UPC, "success", map[string]interface{}{
		"ean13":       product.EAN13,
		"productName": result.ProductName,
		"brand":       result.Brand,
		"confidence":  result.Confidence,
	})
	s.publish("product_created", product, actor)

	return &PhotoResult{Product: product, Recognition: result}, nil
}

// LookupProduct resolves a product by any barcode variant. Marker image
// references are expanded to the current public storage URL for the client.
func (s *catalogService) LookupProduct(code string) (*model.Product, error) {
	norm := barcode.Normalize(code)

	product, err := s.products.FindByCode(code, norm.UPC, norm.EAN13)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ProductNotFound(code)
		}
		return nil, apperror.QueryFailed(err)
	}

	product.ImageURL = imageref.Resolve(product.ImageURL, s.supabaseURL, s.supabaseBucket, product.EAN13)
	return product, nil
}

func (s *catalogService) LookupIngredient(title string) (*model.Ingredient, error) {
	ingredient, err := s.ingredients.FindByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.IngredientNotFound(title)
		}
		return nil, apperror.QueryFailed(err)
	}
	return ingredient, nil
}

func (s *catalogService) GetCatalogStats() (*CatalogStats, error) {
	stats := &CatalogStats{}

	var err error
	if stats.TotalProducts, err = s.products.CountAll(); err != nil {
		return nil, apperror.QueryFailed(err)
	}
	if stats.TotalIngredients, err = s.ingredients.CountAll(); err != nil {
		return nil, apperror.QueryFailed(err)
	}
	if stats.Classifications, err = s.products.CountByClassification(); err != nil {
		return nil, apperror.QueryFailed(err)
	}
	if stats.RecentlyUpdated, err = s.products.FindRecentlyUpdated(10); err != nil {
		return nil, apperror.QueryFailed(err)
	}
	return stats, nil
}

// logAction appends to the action log. Best-effort: failures are logged as a
// diagnostic only and deliberately discarded.
func (s *catalogService) logAction(actor Actor, actionType, input, result string, metadata map[string]interface{}) {
	meta, _ := json.Marshal(metadata)
	entry := &model.ActionLog{
		UserID:   actor.ID,
		Type:     actionType,
		Input:    input,
		Result:   result,
		Metadata: string(meta),
	}
	if err := s.actions.Append(entry); err != nil {
		log.Printf("Warning: failed to append action log for %s: %v", actionType, err)
	}
}

func (s *catalogService) publish(action string, product *model.Product, actor Actor) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(action, map[string]interface{}{
		"product": map[string]interface{}{
			"ean13":        product.EAN13,
			"upc":          product.UPC,
			"product_name": product.ProductName,
			"imageurl":     product.ImageURL,
		},
		"user": map[string]interface{}{
			"id":    actor.ID,
			"name":  actor.Name,
			"email": actor.Email,
		},
	})
}

func failedFields(errs []*validator.ErrorResponse) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.FailedField
	}
	return fields
}
