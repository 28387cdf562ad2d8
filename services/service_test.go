package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	"github.com/greencycle/wastetrack/models"
)

type testEnv struct {
	gormDB *gorm.DB
	ledger LedgerService
	report ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	conf := &config.Config{ReportPoints: 10, CollectPoints: 20}
	store := &db.GormDB{DB: gormDB}

	ledger := NewLedgerService(
		db.NewRewardRepo(store),
		db.NewTransactionRepo(store),
		db.NewNotificationRepo(store),
		conf,
	)
	report := NewReportService(db.NewReportRepo(store), conf)

	return &testEnv{gormDB: gormDB, ledger: ledger, report: report}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname:       "Test User",
		Username:       "tester",
		Email:          email,
		HashedPassword: "irrelevant",
	}
	require.NoError(t, e.gormDB.Create(user).Error)
	return user
}

func (e *testEnv) createCatalogReward(t *testing.T, name string, cost int) *models.Reward {
	t.Helper()
	reward := &models.Reward{
		Name:        name,
		Points:      cost,
		IsAvailable: true,
	}
	require.NoError(t, e.gormDB.Create(reward).Error)
	return reward
}

func (e *testEnv) clearCatalog(t *testing.T) {
	t.Helper()
	require.NoError(t, e.gormDB.Where("user_id = 0").Delete(&models.Reward{}).Error)
}
