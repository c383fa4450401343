package repository

import (
	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type TelemetryRepository struct {
	DB *gorm.DB
}

func NewTelemetryRepository(db *gorm.DB) *TelemetryRepository {
	return &TelemetryRepository{DB: db}
}

// Create appends one event. Telemetry rows are never updated or deleted.
func (r *TelemetryRepository) Create(e *model.TelemetryEvent) error {
	return r.DB.Create(e).Error
}

// CountBucket is one row of a grouped count.
type CountBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

func (r *TelemetryRepository) Total() (int64, error) {
	var total int64
	err := r.DB.Model(&model.TelemetryEvent{}).Count(&total).Error
	return total, err
}

// CountsBy groups event counts by one of the indexed columns
// (event_type, stage, level).
func (r *TelemetryRepository) CountsBy(column string) ([]CountBucket, error) {
	var buckets []CountBucket
	err := r.DB.Model(&model.TelemetryEvent{}).
		Select(column + " as `key`, count(*) as count").
		Where(column + " <> ''").
		Group(column).
		Order("count desc, `key` asc").
		Scan(&buckets).Error
	return buckets, err
}

func (r *TelemetryRepository) TopEventTypes(n int) ([]CountBucket, error) {
	var buckets []CountBucket
	err := r.DB.Model(&model.TelemetryEvent{}).
		Select("event_type as `key`, count(*) as count").
		Group("event_type").
		Order("count desc, `key` asc").
		Limit(n).
		Scan(&buckets).Error
	return buckets, err
}

func (r *TelemetryRepository) CountForType(eventType string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TelemetryEvent{}).
		Where("event_type = ?", eventType).Count(&count).Error
	return count, err
}
