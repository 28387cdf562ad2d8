package db

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
)

type RewardRepository interface {
	GetRewardByUserID(userID uint) (*models.Reward, error)
	GetOrCreateReward(userID uint) (*models.Reward, error)
	GetCatalogReward(rewardID uint) (*models.Reward, error)
	ListCatalogRewards() ([]models.Reward, error)
	Leaderboard() ([]models.LeaderboardEntry, error)
	GrantPoints(userID uint, amount int, txType, description, message, notifType string) (*models.Transaction, error)
	RedeemAllPoints(userID uint) (*models.Reward, error)
	RedeemCatalogReward(userID uint, rewardID uint) (*models.Reward, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

func (r *rewardRepo) GetRewardByUserID(userID uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.DB.Where("user_id = ?", userID).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching reward for user %d: %w", userID, err)
	}
	return &reward, nil
}

func (r *rewardRepo) GetOrCreateReward(userID uint) (*models.Reward, error) {
	var reward *models.Reward
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		reward, txErr = getOrCreateRewardTx(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepo) GetCatalogReward(rewardID uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.DB.Where("id = ? AND user_id = 0", rewardID).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "fetching catalog reward")
	}
	return &reward, nil
}

func (r *rewardRepo) ListCatalogRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.DB.Where("user_id = 0 AND is_available = ?", true).Find(&rewards).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing catalog rewards")
	}
	return rewards, nil
}

func (r *rewardRepo) Leaderboard() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.DB.Model(&models.Reward{}).
		Select("rewards.user_id, users.fullname AS user_name, rewards.points, rewards.level").
		Joins("LEFT JOIN users ON users.id = rewards.user_id").
		Where("rewards.user_id <> 0").
		Order("rewards.points DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "building leaderboard")
	}
	return entries, nil
}

// GrantPoints appends a ledger entry, increments the user's cached balance
// and enqueues the notification, all in one transaction.
func (r *rewardRepo) GrantPoints(userID uint, amount int, txType, description, message, notifType string) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		transaction, txErr = grantPointsTx(tx, userID, amount, txType, description, message, notifType)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// RedeemAllPoints zeroes the user's cached balance and records one redeemed
// ledger entry equal to the prior total. Redeeming an empty balance is a
// no-op that records nothing.
func (r *rewardRepo) RedeemAllPoints(userID uint) (*models.Reward, error) {
	var updated *models.Reward
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		reward, txErr := getOrCreateRewardTx(tx, userID)
		if txErr != nil {
			return txErr
		}

		prior := reward.Points
		if prior <= 0 {
			updated = reward
			return nil
		}

		if txErr := tx.Model(reward).Update("points", 0).Error; txErr != nil {
			return errors.Wrap(txErr, "zeroing reward points")
		}
		transaction := models.Transaction{
			UserID:      userID,
			Type:        models.TransactionRedeemed,
			Amount:      prior,
			Description: fmt.Sprintf("Redeemed all points: %d", prior),
			Date:        time.Now(),
		}
		if txErr := tx.Create(&transaction).Error; txErr != nil {
			return errors.Wrap(txErr, "creating redemption entry")
		}

		reward.Points = 0
		updated = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RedeemCatalogReward spends the catalog item's cost from the user's balance.
// The balance check happens under the row lock so concurrent redemptions
// cannot overspend.
func (r *rewardRepo) RedeemCatalogReward(userID uint, rewardID uint) (*models.Reward, error) {
	var updated *models.Reward
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var catalog models.Reward
		txErr := lockForUpdate(tx).
			Where("id = ? AND user_id = 0 AND is_available = ?", rewardID, true).
			First(&catalog).Error
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return errors.Wrap(txErr, "fetching catalog reward")
		}

		reward, txErr := getOrCreateRewardTx(tx, userID)
		if txErr != nil {
			return txErr
		}
		if reward.Points < catalog.Points {
			return errs.ErrInsufficientPoints
		}

		if txErr := tx.Model(reward).
			Update("points", gorm.Expr("points - ?", catalog.Points)).Error; txErr != nil {
			return errors.Wrap(txErr, "decrementing reward points")
		}
		transaction := models.Transaction{
			UserID:      userID,
			Type:        models.TransactionRedeemed,
			Amount:      catalog.Points,
			Description: fmt.Sprintf("Redeemed: %s", catalog.Name),
			Date:        time.Now(),
		}
		if txErr := tx.Create(&transaction).Error; txErr != nil {
			return errors.Wrap(txErr, "creating redemption entry")
		}

		reward.Points -= catalog.Points
		updated = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
