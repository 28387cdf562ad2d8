package models

import "time"

// CollectedWaste records a collector completing and verifying a report. At
// most one active record exists per report.
type CollectedWaste struct {
	Model
	ReportID           uint      `json:"report_id" gorm:"not null;uniqueIndex"`
	CollectorID        uint      `json:"collector_id" gorm:"not null;index"`
	CollectionDate     time.Time `json:"collection_date"`
	Status             string    `json:"status" gorm:"type:varchar(20);default:'collected'"`
	VerificationResult string    `json:"verification_result,omitempty" gorm:"type:varchar(1000)"`
	Notes              string    `json:"notes,omitempty" gorm:"type:varchar(500)"`
}
