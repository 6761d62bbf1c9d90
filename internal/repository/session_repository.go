package repository

import (
	"github.com/minhanle/eqpractice/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	Update(session *model.Session) error
	// UpdateFields writes only the given columns, so an evaluation can
	// persist exactly the fields it produced.
	UpdateFields(id string, fields map[string]interface{}) error
	FindByID(id string) (*model.Session, error)
	FindByIDWithScenario(id string) (*model.Session, error)
	FindAllByUser(userID string, offset, limit int) ([]model.Session, error)
	CountByUser(userID string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.Session) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.Session{}).Where("id = ?", id).Updates(fields).Error
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *sessionRepository) FindByIDWithScenario(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.Preload("Scenario").First(&session, "id = ?", id).Error
	return &session, err
}

func (r *sessionRepository) FindAllByUser(userID string, offset, limit int) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.Preload("Scenario").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Session{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
