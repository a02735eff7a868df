package repository

import (
	"go-isitvegan-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByCode(raw, normalized, ean13 string) (*model.Product, error)
	FindByEAN13(ean13 string) (*model.Product, error)
	UpdateImage(ean13, imageURL, lastUpdated string) (*model.Product, error)
	CountAll() (int64, error)
	CountByClassification() ([]ClassificationCount, error)
	FindRecentlyUpdated(limit int) ([]model.Product, error)
}

// ClassificationCount for catalog stats
type ClassificationCount struct {
	Classification string `json:"classification"`
	Count          int64  `json:"count"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

// FindByCode matches a product against every barcode variant: the raw scanned
// code or its normalized form against the upc column, or the derived value
// against the ean13 column. Duplicates are not enforced away; the first match
// ordered by ean13 wins.
func (r *productRepo) FindByCode(raw, normalized, ean13 string) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Where("upc IN ? OR ean13 = ?", []string{raw, normalized}, ean13).
		Order("ean13").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByEAN13(ean13 string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "ean13 = ?", ean13).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateImage persists the image reference and lastupdated timestamp keyed by
// the canonical code, then reloads the record so callers get the stored row.
func (r *productRepo) UpdateImage(ean13, imageURL, lastUpdated string) (*model.Product, error) {
	err := r.db.Model(&model.Product{}).
		Where("ean13 = ?", ean13).
		Updates(map[string]interface{}{
			"imageurl":    imageURL,
			"lastupdated": lastUpdated,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEAN13(ean13)
}

func (r *productRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountByClassification() ([]ClassificationCount, error) {
	var results []ClassificationCount
	err := r.db.Model(&model.Product{}).
		Select("classification, COUNT(*) as count").
		Group("classification").
		Order("count DESC").
		Scan(&results).Error
	return results, err
}

func (r *productRepo) FindRecentlyUpdated(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("lastupdated DESC").Limit(limit).Find(&products).Error
	return products, err
}
