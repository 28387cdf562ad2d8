package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/pkg/logger"
)

// SubmitReportInput carries a new waste sighting.
type SubmitReportInput struct {
	Location           string `json:"location" binding:"required"`
	WasteType          string `json:"waste_type" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
	ImageURL           string `json:"image_url"`
	VerificationResult string `json:"verification_result"`
}

// ReportService manages the report lifecycle from submission through
// collection and verification, issuing rewards on defined transitions.
type ReportService interface {
	SubmitReport(userID uint, input SubmitReportInput) (*models.Report, error)
	ListTasks(limit int) ([]models.CollectionTask, error)
	UpdateTaskStatus(reportID uint, newStatus string, collectorID *uint) (*models.Report, error)
	RecordCollection(reportID, collectorID uint, verificationResult, notes string) (*models.CollectedWaste, error)
	ListPendingReports() ([]models.Report, error)
	ListReportsByUser(userID uint) ([]models.Report, error)
	ListCollectionsByCollector(collectorID uint) ([]models.CollectedWaste, error)
}

type reportService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
}

// NewReportService instantiates a ReportService.
func NewReportService(reportRepo db.ReportRepository, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		reportRepo: reportRepo,
	}
}

// SubmitReport persists the report with status pending and grants the
// submitter the configured report points. The report row, ledger entry,
// balance increment and notification commit or roll back together.
func (s *reportService) SubmitReport(userID uint, input SubmitReportInput) (*models.Report, error) {
	if strings.TrimSpace(input.Location) == "" ||
		strings.TrimSpace(input.WasteType) == "" ||
		strings.TrimSpace(input.Amount) == "" {
		return nil, errs.ValidationError("location, waste_type and amount are required")
	}

	report := &models.Report{
		UserID:             userID,
		Location:           strings.TrimSpace(input.Location),
		WasteType:          strings.TrimSpace(input.WasteType),
		Amount:             strings.TrimSpace(input.Amount),
		ImageURL:           input.ImageURL,
		VerificationResult: input.VerificationResult,
		Status:             models.ReportStatusPending,
	}

	points := s.Config.ReportPoints
	message := fmt.Sprintf("You've earned %d points for reporting waste!", points)
	err := s.reportRepo.CreateReportWithGrant(report, points,
		"Points earned for reporting waste", message, "reward")
	if err != nil {
		logger.WithFields(logrus.Fields{"user_id": userID}).Error("report submission failed: ", err)
		return nil, errs.ErrPersistence
	}

	logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"user_id":   userID,
		"location":  report.Location,
	}).Info("report submitted")
	return report, nil
}

// ListTasks returns up to limit reports as collection tasks, newest first,
// with dates normalized to calendar-date strings.
func (s *reportService) ListTasks(limit int) ([]models.CollectionTask, error) {
	if limit <= 0 {
		limit = 20
	}
	reports, err := s.reportRepo.ListReports(limit)
	if err != nil {
		return nil, errs.ErrPersistence
	}

	tasks := make([]models.CollectionTask, 0, len(reports))
	for i := range reports {
		tasks = append(tasks, models.CollectionTask{
			ID:          reports[i].ID,
			Location:    reports[i].Location,
			WasteType:   reports[i].WasteType,
			Amount:      reports[i].Amount,
			Status:      reports[i].Status,
			Date:        reports[i].CreatedAt.Format("2006-01-02"),
			CollectorID: reports[i].CollectorID,
		})
	}
	return tasks, nil
}

// UpdateTaskStatus moves a report through the lifecycle, claiming it for the
// collector when one is given. Illegal transitions are rejected.
func (s *reportService) UpdateTaskStatus(reportID uint, newStatus string, collectorID *uint) (*models.Report, error) {
	if !models.ValidReportStatus(newStatus) {
		return nil, errs.ValidationError(fmt.Sprintf("unknown status %q", newStatus))
	}

	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errs.Status(err) == 404 {
			return nil, errs.NotFoundError("report not found")
		}
		return nil, errs.ErrPersistence
	}
	if !models.CanTransition(report.Status, newStatus) {
		return nil, errs.ValidationError(
			fmt.Sprintf("cannot move report from %s to %s", report.Status, newStatus))
	}

	updated, err := s.reportRepo.UpdateReportStatus(reportID, newStatus, collectorID)
	if err != nil {
		if errs.Status(err) == 404 {
			return nil, errs.NotFoundError("report not found")
		}
		return nil, errs.ErrPersistence
	}

	logger.WithFields(logrus.Fields{
		"report_id": reportID,
		"status":    newStatus,
	}).Info("report status updated")
	return updated, nil
}

// RecordCollection inserts the verified collection record for a report. It
// does not grant points; the caller sequences the collector's grant through
// the ledger service.
func (s *reportService) RecordCollection(reportID, collectorID uint, verificationResult, notes string) (*models.CollectedWaste, error) {
	if _, err := s.reportRepo.GetReportByID(reportID); err != nil {
		if errs.Status(err) == 404 {
			return nil, errs.NotFoundError("report not found")
		}
		return nil, errs.ErrPersistence
	}

	collected := &models.CollectedWaste{
		ReportID:           reportID,
		CollectorID:        collectorID,
		CollectionDate:     time.Now(),
		Status:             models.ReportStatusVerified,
		VerificationResult: verificationResult,
		Notes:              notes,
	}
	if err := s.reportRepo.CreateCollectedWaste(collected); err != nil {
		logger.WithFields(logrus.Fields{"report_id": reportID}).Error("recording collection failed: ", err)
		return nil, errs.ErrPersistence
	}
	return collected, nil
}

func (s *reportService) ListPendingReports() ([]models.Report, error) {
	reports, err := s.reportRepo.ListPendingReports()
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return reports, nil
}

func (s *reportService) ListReportsByUser(userID uint) ([]models.Report, error) {
	reports, err := s.reportRepo.ListReportsByUser(userID)
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return reports, nil
}

func (s *reportService) ListCollectionsByCollector(collectorID uint) ([]models.CollectedWaste, error) {
	collections, err := s.reportRepo.ListCollectionsByCollector(collectorID)
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return collections, nil
}
