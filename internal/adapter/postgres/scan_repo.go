package postgres

import (
	"context"

	"knowyourplant/internal/domain"
)

// AddScan records a completed identification.
func (d *DB) AddScan(ctx context.Context, rec domain.ScanRecord) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO scans (id, user_id, plant_name, confidence, capture_type, scanned_at) VALUES ($1, $2, $3, $4, $5, $6)",
		rec.ID, rec.UserID, rec.PlantName, rec.Confidence, string(rec.CaptureType), rec.ScannedAt,
	)
	return err
}

// ListScans lists the user's most recent scans, newest first.
func (d *DB) ListScans(ctx context.Context, userID int64, limit int) ([]domain.ScanRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, plant_name, confidence, capture_type, scanned_at FROM scans WHERE user_id = $1 ORDER BY scanned_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []domain.ScanRecord
	for rows.Next() {
		var rec domain.ScanRecord
		var capture string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PlantName, &rec.Confidence, &capture, &rec.ScannedAt); err != nil {
			return nil, err
		}
		rec.CaptureType = domain.CaptureType(capture)
		scans = append(scans, rec)
	}
	return scans, rows.Err()
}
