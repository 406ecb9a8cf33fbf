package repository

import (
	"time"

	"resolvo/internal/db"
	"resolvo/internal/model"
)

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Save(conflictID int64, workspace, path string, resolution model.Resolution, outcome model.Outcome, resErr error) error {
	errMsg := ""
	if resErr != nil {
		errMsg = resErr.Error()
	}

	record := model.ResolutionRecord{
		ConflictID: conflictID,
		Workspace:  workspace,
		Path:       path,
		Resolution: resolution,
		Outcome:    outcome,
		ErrMsg:     errMsg,
		ResolvedAt: time.Now(),
	}

	return db.DB.Create(&record).Error
}

type Stats struct {
	Total    int64
	Resolved int64
	Failed   int64
	Skipped  int64
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.ResolutionRecord{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.ResolutionRecord{}).
		Where("outcome = ?", model.OutcomeResolved).
		Count(&stats.Resolved).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.ResolutionRecord{}).
		Where("outcome = ?", model.OutcomeSkipped).
		Count(&stats.Skipped).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Resolved - stats.Skipped
	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.ResolutionRecord, error) {
	var records []model.ResolutionRecord
	result := db.DB.
		Order("resolved_at desc").
		Limit(limit).
		Find(&records)

	return records, result.Error
}
