package main

import (
	"log"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	"github.com/greencycle/wastetrack/mailingservices"
	"github.com/greencycle/wastetrack/pkg/logger"
	"github.com/greencycle/wastetrack/server"
	"github.com/greencycle/wastetrack/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger.Init(conf.LogLevel, conf.LogFormat)

	mailgunClient := mailingservices.NewMailgun(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)
	transactionRepo := db.NewTransactionRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	ledgerService := services.NewLedgerService(rewardRepo, transactionRepo, notificationRepo, conf)
	reportService := services.NewReportService(reportRepo, conf)

	s := &server.Server{
		Config:                 conf,
		AuthRepository:         authRepo,
		AuthService:            authService,
		LedgerService:          ledgerService,
		ReportService:          reportService,
		NotificationRepository: notificationRepo,
	}

	s.Start()
}
