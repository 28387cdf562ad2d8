package models

// Report lifecycle statuses. A report starts pending, moves to in_progress
// when a collector claims it, and ends completed or verified. Cancellation is
// allowed from any non-terminal state.
const (
	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in_progress"
	ReportStatusCompleted  = "completed"
	ReportStatusVerified   = "verified"
	ReportStatusCancelled  = "cancelled"
)

// Report is a user-submitted sighting of waste needing collection.
type Report struct {
	Model
	UserID             uint   `json:"user_id" gorm:"not null;index"`
	Location           string `json:"location" gorm:"type:varchar(255);not null"`
	WasteType          string `json:"waste_type" gorm:"type:varchar(100);not null"`
	Amount             string `json:"amount" gorm:"type:varchar(100);not null"`
	ImageURL           string `json:"image_url,omitempty"`
	VerificationResult string `json:"verification_result,omitempty" gorm:"type:varchar(1000)"`
	Status             string `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CollectorID        *uint  `json:"collector_id,omitempty" gorm:"index"`
}

// ValidReportStatus reports whether s names a known lifecycle status.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusCompleted,
		ReportStatusVerified, ReportStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a report may move from one status to another.
func CanTransition(from, to string) bool {
	if to == ReportStatusCancelled {
		return from != ReportStatusCancelled && from != ReportStatusVerified
	}
	switch from {
	case ReportStatusPending:
		return to == ReportStatusInProgress
	case ReportStatusInProgress:
		return to == ReportStatusCompleted || to == ReportStatusVerified
	case ReportStatusCompleted:
		return to == ReportStatusVerified
	}
	return false
}

// CollectionTask is the flat view of a report handed to collectors, with the
// creation date normalized to a calendar-date string.
type CollectionTask struct {
	ID          uint   `json:"id"`
	Location    string `json:"location"`
	WasteType   string `json:"waste_type"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	CollectorID *uint  `json:"collector_id,omitempty"`
}
