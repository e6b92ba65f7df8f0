package postgres

import "time"

// SnapshotRecord is one bond's unit count at one scrape, archived
// append-only alongside the spreadsheet column.
type SnapshotRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Bond       string    `gorm:"type:text;not null;index:idx_snapshot_bond;index:idx_bond_captured,unique"`
	CapturedAt time.Time `gorm:"not null;index:idx_bond_captured,unique"`

	URL   string `gorm:"type:text;not null"`
	Units int    `gorm:"not null"`

	// Found is false when the scrape could not locate a unit count;
	// Units is 0 in that case and the sheet cell stays blank.
	Found bool `gorm:"not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (SnapshotRecord) TableName() string {
	return "snapshot_record"
}
