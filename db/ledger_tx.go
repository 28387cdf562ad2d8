package db

import (
	"time"

	"github.com/pkg/errors"

	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// grantPointsTx performs one ledger mutation inside the caller's transaction:
// append the ledger row, increment the locked reward cache, enqueue the
// notification. Callers compose it with other writes that must share its fate.
func grantPointsTx(tx *gorm.DB, userID uint, amount int, txType, description, message, notifType string) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        time.Now(),
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, errors.Wrap(err, "creating ledger entry")
	}

	reward, err := getOrCreateRewardTx(tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(reward).Update("points", gorm.Expr("points + ?", amount)).Error; err != nil {
		return nil, errors.Wrap(err, "incrementing reward points")
	}

	if message != "" {
		notification := &models.Notification{
			UserID:  userID,
			Message: message,
			Type:    notifType,
		}
		if err := tx.Create(notification).Error; err != nil {
			return nil, errors.Wrap(err, "creating notification")
		}
	}

	return transaction, nil
}

// lockForUpdate applies SELECT ... FOR UPDATE on dialects that support it.
// SQLite, used by the test suite, has database-level locking instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// getOrCreateRewardTx loads the user's balance row under a row lock, creating
// the default row on first touch. The lock serializes concurrent ledger
// mutations for the same user.
func getOrCreateRewardTx(tx *gorm.DB, userID uint) (*models.Reward, error) {
	var reward models.Reward
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).First(&reward).Error
	if err == nil {
		return &reward, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "loading reward row")
	}

	reward = models.Reward{
		UserID:         userID,
		Name:           "Default Reward",
		Points:         0,
		Level:          1,
		IsAvailable:    true,
		CollectionInfo: "Default Collection Info",
	}
	if err := tx.Create(&reward).Error; err != nil {
		return nil, errors.Wrap(err, "creating reward row")
	}
	return &reward, nil
}
