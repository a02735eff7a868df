package repository

import (
	"go-isitvegan-api/internal/model"

	"gorm.io/gorm"
)

type ActionLogRepository interface {
	Append(entry *model.ActionLog) error
	FindByUser(userID string, limit int) ([]model.ActionLog, error)
	FindRecent(limit int) ([]model.ActionLog, error)
}

type actionLogRepo struct {
	db *gorm.DB
}

func NewActionLogRepo(db *gorm.DB) ActionLogRepository {
	return &actionLogRepo{db}
}

func (r *actionLogRepo) Append(entry *model.ActionLog) error {
	return r.db.Create(entry).Error
}

func (r *actionLogRepo) FindByUser(userID string, limit int) ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.db.Where("userid = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *actionLogRepo) FindRecent(limit int) ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
