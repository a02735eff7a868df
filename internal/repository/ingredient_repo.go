package repository

import (
	"go-isitvegan-api/internal/model"

	"gorm.io/gorm"
)

type IngredientRepository interface {
	FindByTitle(title string) (*model.Ingredient, error)
	CountAll() (int64, error)
}

type ingredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db}
}

// FindByTitle matches case-insensitively; ingredient titles come from
// free-text product labels.
func (r *ingredientRepo) FindByTitle(title string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, "LOWER(title) = LOWER(?)", title).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Ingredient{}).Count(&count).Error
	return count, err
}
