package repository

import (
	"github.com/minhanle/eqpractice/internal/model"
	"gorm.io/gorm"
)

type ScenarioRepository interface {
	Create(scenario *model.Scenario) error
	FindByID(id string) (*model.Scenario, error)
	IncrementPlayCount(id string) error
}

type scenarioRepository struct {
	db *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (r *scenarioRepository) Create(scenario *model.Scenario) error {
	return r.db.Create(scenario).Error
}

func (r *scenarioRepository) FindByID(id string) (*model.Scenario, error) {
	var scenario model.Scenario
	err := r.db.First(&scenario, "id = ?", id).Error
	return &scenario, err
}

func (r *scenarioRepository) IncrementPlayCount(id string) error {
	return r.db.Model(&model.Scenario{}).
		Where("id = ?", id).
		UpdateColumn("play_count", gorm.Expr("play_count + 1")).Error
}
