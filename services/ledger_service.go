package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/pkg/logger"
)

// recentTransactionLimit caps the "recent activity" listing shown to users.
// Balances are always computed over the full ledger, not this window.
const recentTransactionLimit = 10

// LedgerService is the authority for point accounting and redemption. Every
// point-earning mutation goes through GrantPoints, which writes the ledger
// entry, the cached balance and the notification as one unit.
type LedgerService interface {
	GrantPoints(userID uint, amount int, txType, description string) (*models.Transaction, error)
	GetBalance(userID uint) (int, error)
	RecentTransactions(userID uint) ([]models.TransactionView, error)
	ListAvailableRewards(userID uint) ([]models.RewardOffer, error)
	RedeemReward(userID uint, rewardID uint) (*models.Reward, error)
	GetOrCreateReward(userID uint) (*models.Reward, error)
	Leaderboard() ([]models.LeaderboardEntry, error)
	UnreadNotifications(userID uint) ([]models.Notification, error)
	MarkNotificationRead(notificationID uint) error
}

type ledgerService struct {
	Config           *config.Config
	rewardRepo       db.RewardRepository
	transactionRepo  db.TransactionRepository
	notificationRepo db.NotificationRepository
}

// NewLedgerService instantiates a LedgerService.
func NewLedgerService(rewardRepo db.RewardRepository, transactionRepo db.TransactionRepository, notificationRepo db.NotificationRepository, conf *config.Config) LedgerService {
	return &ledgerService{
		Config:           conf,
		rewardRepo:       rewardRepo,
		transactionRepo:  transactionRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *ledgerService) GrantPoints(userID uint, amount int, txType, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errs.ValidationError("point amount must be positive")
	}
	if !models.ValidTransactionType(txType) {
		return nil, errs.ValidationError(fmt.Sprintf("unknown transaction type %q", txType))
	}

	message := fmt.Sprintf("You've earned %d points! %s", amount, description)
	transaction, err := s.rewardRepo.GrantPoints(userID, amount, txType, description, message, "reward")
	if err != nil {
		logger.WithFields(logrus.Fields{"user_id": userID, "type": txType}).Error("grant failed: ", err)
		return nil, errs.ErrPersistence
	}

	logger.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    txType,
	}).Info("points granted")
	return transaction, nil
}

// GetBalance sums the user's entire ledger and clamps the result at zero.
func (s *ledgerService) GetBalance(userID uint) (int, error) {
	total, err := s.transactionRepo.SumByUser(userID)
	if err != nil {
		return 0, errs.ErrPersistence
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

func (s *ledgerService) RecentTransactions(userID uint) ([]models.TransactionView, error) {
	transactions, err := s.transactionRepo.ListByUser(userID, recentTransactionLimit)
	if err != nil {
		return nil, errs.ErrPersistence
	}

	views := make([]models.TransactionView, 0, len(transactions))
	for i := range transactions {
		views = append(views, transactions[i].ToView())
	}
	return views, nil
}

// ListAvailableRewards returns the synthetic "Your Points" offer first, costed
// at the live balance, followed by the catalog in storage order.
func (s *ledgerService) ListAvailableRewards(userID uint) ([]models.RewardOffer, error) {
	balance, err := s.GetBalance(userID)
	if err != nil {
		return nil, err
	}

	offers := []models.RewardOffer{
		{
			ID:             0,
			Name:           "Your Points",
			Cost:           balance,
			Description:    "Redeem your earned points",
			CollectionInfo: "Points earned for collecting and reporting waste",
		},
	}

	catalog, err := s.rewardRepo.ListCatalogRewards()
	if err != nil {
		return nil, errs.ErrPersistence
	}
	for i := range catalog {
		offers = append(offers, models.RewardOffer{
			ID:             catalog[i].ID,
			Name:           catalog[i].Name,
			Cost:           catalog[i].Points,
			Description:    catalog[i].Description,
			CollectionInfo: catalog[i].CollectionInfo,
		})
	}
	return offers, nil
}

// RedeemReward processes a redemption. Reward id zero is the sentinel for
// "redeem everything": the balance drops to zero and one redeemed entry is
// recorded for the prior total.
func (s *ledgerService) RedeemReward(userID uint, rewardID uint) (*models.Reward, error) {
	var (
		updated *models.Reward
		err     error
	)
	if rewardID == 0 {
		updated, err = s.rewardRepo.RedeemAllPoints(userID)
	} else {
		updated, err = s.rewardRepo.RedeemCatalogReward(userID, rewardID)
	}
	if err != nil {
		switch {
		case errs.Status(err) == 404:
			return nil, errs.NotFoundError("reward not found")
		case err == errs.ErrInsufficientPoints:
			return nil, errs.ErrInsufficientPoints
		default:
			logger.WithFields(logrus.Fields{"user_id": userID, "reward_id": rewardID}).Error("redemption failed: ", err)
			return nil, errs.ErrPersistence
		}
	}

	logger.WithFields(logrus.Fields{"user_id": userID, "reward_id": rewardID}).Info("reward redeemed")
	return updated, nil
}

func (s *ledgerService) GetOrCreateReward(userID uint) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetOrCreateReward(userID)
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return reward, nil
}

func (s *ledgerService) Leaderboard() ([]models.LeaderboardEntry, error) {
	entries, err := s.rewardRepo.Leaderboard()
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return entries, nil
}

func (s *ledgerService) UnreadNotifications(userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.UnreadByUser(userID)
	if err != nil {
		return nil, errs.ErrPersistence
	}
	return notifications, nil
}

func (s *ledgerService) MarkNotificationRead(notificationID uint) error {
	err := s.notificationRepo.MarkRead(notificationID)
	if err == errs.ErrNotFound {
		return errs.NotFoundError("notification not found")
	}
	return err
}
