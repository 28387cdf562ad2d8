package db

import (
	"github.com/pkg/errors"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReportWithGrant(report *models.Report, amount int, description, message, notifType string) error
	GetReportByID(reportID uint) (*models.Report, error)
	ListReports(limit int) ([]models.Report, error)
	ListPendingReports() ([]models.Report, error)
	ListReportsByUser(userID uint) ([]models.Report, error)
	UpdateReportStatus(reportID uint, status string, collectorID *uint) (*models.Report, error)
	CreateCollectedWaste(collected *models.CollectedWaste) error
	ListCollectionsByCollector(collectorID uint) ([]models.CollectedWaste, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

// CreateReportWithGrant persists the report and the submitter's point grant as
// one unit of work. If the grant fails the report row is rolled back with it.
func (r *reportRepo) CreateReportWithGrant(report *models.Report, amount int, description, message, notifType string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return errors.Wrap(err, "creating report")
		}
		_, err := grantPointsTx(tx, report.UserID, amount, models.TransactionEarnedReport, description, message, notifType)
		return err
	})
}

func (r *reportRepo) GetReportByID(reportID uint) (*models.Report, error) {
	var report models.Report
	if err := r.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "fetching report")
	}
	return &report, nil
}

func (r *reportRepo) ListReports(limit int) ([]models.Report, error) {
	var reports []models.Report
	query := r.DB.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reports).Error; err != nil {
		return nil, errors.Wrap(err, "listing reports")
	}
	return reports, nil
}

func (r *reportRepo) ListPendingReports() ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.Where("status = ?", models.ReportStatusPending).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing pending reports")
	}
	return reports, nil
}

func (r *reportRepo) ListReportsByUser(userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.Where("user_id = ?", userID).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing user reports")
	}
	return reports, nil
}

func (r *reportRepo) UpdateReportStatus(reportID uint, status string, collectorID *uint) (*models.Report, error) {
	updates := map[string]interface{}{"status": status}
	if collectorID != nil {
		updates["collector_id"] = *collectorID
	}

	result := r.DB.Model(&models.Report{}).Where("id = ?", reportID).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "updating report status")
	}
	if result.RowsAffected == 0 {
		return nil, errs.ErrNotFound
	}

	return r.GetReportByID(reportID)
}

func (r *reportRepo) CreateCollectedWaste(collected *models.CollectedWaste) error {
	if err := r.DB.Create(collected).Error; err != nil {
		return errors.Wrap(err, "creating collected waste record")
	}
	return nil
}

func (r *reportRepo) ListCollectionsByCollector(collectorID uint) ([]models.CollectedWaste, error) {
	var collections []models.CollectedWaste
	err := r.DB.Where("collector_id = ?", collectorID).Find(&collections).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing collections")
	}
	return collections, nil
}
