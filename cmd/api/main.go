package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "coop-ledger-backend/internal/adapter/http"
	idemp "coop-ledger-backend/internal/adapter/middleware"
	"coop-ledger-backend/internal/adapter/repository/mysql"
	"coop-ledger-backend/internal/config"
	"coop-ledger-backend/internal/domain/account"
	"coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/infrastructure/cache"
	"coop-ledger-backend/internal/infrastructure/db"
	txnuc "coop-ledger-backend/internal/usecase/loantxn"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&account.Account{}, &loantxn.LoanTransaction{}, &loantxn.Entry{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	txnRepo := mysql.NewLoanTransactionRepository(gdb)
	acctRepo := mysql.NewAccountRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	usecase := txnuc.NewUsecase(txnRepo, acctRepo, uow, txnuc.NewLogNotifier())

	h := httpadp.NewHandler()
	th := httpadp.NewLoanTransactionHandler(usecase)
	eh := httpadp.NewEntryHandler(usecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	api := e.Group("", idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	api.POST("/loan-transactions", th.CreateLoanTransaction)
	api.GET("/loan-transactions/:transaction_id", th.GetLoanTransaction)
	api.PUT("/loan-transactions/:transaction_id", th.UpdateLoanTransaction)
	api.POST("/loan-transactions/:transaction_id/loan-type", th.ChangeLoanType)
	api.POST("/loan-transactions/:transaction_id/cash-account", th.ChangeCashAccount)
	api.POST("/loan-transactions/:transaction_id/print", th.PrintLoanTransaction)
	api.POST("/loan-transactions/:transaction_id/approve", th.ApproveLoanTransaction)
	api.POST("/loan-transactions/:transaction_id/release", th.ReleaseLoanTransaction)
	api.POST("/loan-transactions/:transaction_id/entries", eh.AddEntry)
	api.PUT("/entries/:entry_id", eh.UpdateEntry)
	api.DELETE("/entries/:entry_id", eh.RemoveEntry)
	api.POST("/entries/:entry_id/restore", eh.RestoreEntry)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
