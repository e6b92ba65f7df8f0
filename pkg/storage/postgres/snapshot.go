package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"
)

func (p *PostgresClient) InsertSnapshot(ctx context.Context, record *SnapshotRecord) error {
	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "bond"},
			{Name: "captured_at"},
		},
		DoNothing: true,
	}).Create(record)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf(
			"duplicate snapshot skipped: bond=%s captured_at=%s",
			record.Bond,
			record.CapturedAt.Format(time.RFC3339),
		)
	}

	return nil
}

func (p *PostgresClient) GetSnapshot(ctx context.Context, bond string, capturedAt time.Time) (*SnapshotRecord, error) {
	var record SnapshotRecord
	err := p.DB.WithContext(ctx).
		Where("bond = ? AND captured_at = ?", bond, capturedAt).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetSnapshotsBetween returns a bond's archived snapshots inside
// [start, end], oldest first.
func (p *PostgresClient) GetSnapshotsBetween(ctx context.Context, bond string, start, end time.Time) ([]SnapshotRecord, error) {
	var records []SnapshotRecord
	err := p.DB.WithContext(ctx).
		Where("bond = ? AND captured_at BETWEEN ? AND ?", bond, start, end).
		Order("captured_at ASC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *PostgresClient) DeleteOldSnapshots(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("captured_at < ?", before).
		Delete(&SnapshotRecord{}).Error
}
