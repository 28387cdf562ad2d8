package db

import (
	"fmt"
	"log"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := Migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// Migrate runs schema migrations and seeds the reward catalog.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Report{},
		&models.CollectedWaste{},
		&models.Reward{},
		&models.Transaction{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedCatalogRewards(db); err != nil {
		return fmt.Errorf("seeding catalog rewards error: %v", err)
	}

	return nil
}

// SeedCatalogRewards inserts the globally redeemable catalog items. Catalog
// rows carry UserID zero to distinguish them from per-user balance rows.
func SeedCatalogRewards(db *gorm.DB) error {
	rewards := []models.Reward{
		{
			Name:           "Reusable Water Bottle",
			Points:         50,
			IsAvailable:    true,
			CollectionInfo: "Pick up at any partner collection center",
			Description:    "Stainless steel bottle for ditching single-use plastic",
		},
		{
			Name:           "Tree Planted In Your Name",
			Points:         100,
			IsAvailable:    true,
			CollectionInfo: "Certificate emailed after planting",
			Description:    "We plant a native tree and send you the coordinates",
		},
		{
			Name:           "Community Cleanup Kit",
			Points:         200,
			IsAvailable:    true,
			CollectionInfo: "Shipped to your registered address",
			Description:    "Gloves, grabbers and bags for organizing your own cleanup",
		},
	}

	for _, reward := range rewards {
		if err := db.Where(models.Reward{UserID: 0, Name: reward.Name}).
			FirstOrCreate(&reward).Error; err != nil {
			return err
		}
	}

	return nil
}
