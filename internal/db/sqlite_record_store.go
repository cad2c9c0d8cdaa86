package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habitTrackerAPI/internal/record"
)

type wakeupRecordRow struct {
	Date             string    `gorm:"column:date;primaryKey"`
	Checked          bool      `gorm:"column:checked"`
	ImageURL         *string   `gorm:"column:image_url"`
	ImagePublicID    *string   `gorm:"column:image_public_id"`
	Note             *string   `gorm:"column:note"`
	UTCOffsetMinutes *int      `gorm:"column:utc_offset_minutes"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (wakeupRecordRow) TableName() string {
	return "wakeup_records"
}

func (row wakeupRecordRow) toRecord() record.WakeupRecord {
	return record.WakeupRecord{
		Date:             row.Date,
		Checked:          row.Checked,
		ImageURL:         row.ImageURL,
		ImagePublicID:    row.ImagePublicID,
		Note:             row.Note,
		UTCOffsetMinutes: row.UTCOffsetMinutes,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

type SQLiteRecordStore struct {
	database *gorm.DB
	now      func() time.Time
}

func NewSQLiteRecordStore(database *gorm.DB) *SQLiteRecordStore {
	return &SQLiteRecordStore{database: database, now: time.Now}
}

func (s *SQLiteRecordStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SQLiteRecordStore) FetchOne(ctx context.Context, date string) (*record.WakeupRecord, error) {
	var row wakeupRecordRow
	result := s.database.WithContext(ctx).Where("date = ?", date).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch record %s: %w", date, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	r := row.toRecord()
	return &r, nil
}

func (s *SQLiteRecordStore) FetchRange(ctx context.Context, from, to string) ([]record.WakeupRecord, error) {
	var rows []wakeupRecordRow
	err := s.database.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	records := make([]record.WakeupRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (s *SQLiteRecordStore) Upsert(ctx context.Context, in record.UpsertInput) error {
	now := s.now().UTC()
	row := wakeupRecordRow{
		Date:             in.Date,
		Checked:          in.Checked,
		ImageURL:         in.ImageURL,
		ImagePublicID:    in.ImagePublicID,
		Note:             in.Note,
		UTCOffsetMinutes: in.UTCOffsetMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	columns := []string{"checked", "image_url", "image_public_id", "note", "updated_at"}
	if !in.KeepUTCOffset {
		columns = append(columns, "utc_offset_minutes")
	}

	err := s.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", in.Date, err)
	}
	return nil
}

func (s *SQLiteRecordStore) Patch(ctx context.Context, date string, p record.Patch) error {
	now := s.now().UTC()

	return s.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := wakeupRecordRow{Date: date, CreatedAt: now, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to ensure record %s: %w", date, err)
		}

		updates := map[string]interface{}{"updated_at": now}
		if p.Checked != nil {
			updates["checked"] = *p.Checked
		}
		if p.ImageURL.Set {
			updates["image_url"] = p.ImageURL.Value
		}
		if p.ImagePublicID.Set {
			updates["image_public_id"] = p.ImagePublicID.Value
		}
		if p.Note.Set {
			updates["note"] = p.Note.Value
		}

		if err := tx.Model(&wakeupRecordRow{}).Where("date = ?", date).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to patch record %s: %w", date, err)
		}
		return nil
	})
}

func (s *SQLiteRecordStore) Delete(ctx context.Context, date string) (bool, error) {
	result := s.database.WithContext(ctx).Where("date = ?", date).Delete(&wakeupRecordRow{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete record %s: %w", date, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *SQLiteRecordStore) BackfillUTCOffset(ctx context.Context, minutes int) (int64, error) {
	result := s.database.WithContext(ctx).
		Model(&wakeupRecordRow{}).
		Where("utc_offset_minutes IS NULL").
		Update("utc_offset_minutes", minutes)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to backfill utc offset: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *SQLiteRecordStore) Ping(ctx context.Context) error {
	sqlDB, err := s.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteRecordStore) Close() {
	if sqlDB, err := s.database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
