package db

import (
	"github.com/pkg/errors"

	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	ListByUser(userID uint, limit int) ([]models.Transaction, error)
	SumByUser(userID uint) (int, error)
}

type transactionRepo struct {
	DB *gorm.DB
}

func NewTransactionRepo(db *GormDB) TransactionRepository {
	return &transactionRepo{db.DB}
}

func (r *transactionRepo) ListByUser(userID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	query := r.DB.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&transactions).Error; err != nil {
		return nil, errors.Wrap(err, "listing transactions")
	}
	return transactions, nil
}

// SumByUser reduces the user's entire ledger: earned entries add, redeemed
// entries subtract. The caller clamps the result.
func (r *transactionRepo) SumByUser(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(CASE WHEN type LIKE 'earned%' THEN amount ELSE -amount END), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "summing ledger")
	}
	return total, nil
}
