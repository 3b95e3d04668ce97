package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zolovio/Classy-backend/internal/cache"
	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/domain/model"
	"github.com/zolovio/Classy-backend/internal/handler"
	"github.com/zolovio/Classy-backend/internal/infra/db"
	infraRepo "github.com/zolovio/Classy-backend/internal/infra/repository"
	"github.com/zolovio/Classy-backend/internal/server"
	"github.com/zolovio/Classy-backend/internal/usecase"
	"github.com/zolovio/Classy-backend/internal/worker"
)

func main() {
	// .envは無くてもよい（本番は環境変数直）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.Sku{},
		&model.SkuImage{},
		&model.SkuStock{},
		&model.Prize{},
		&model.Campaign{},
		&model.Draw{},
		&model.Coupon{},
		&model.ShoppingCart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderSku{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	locationRepo := infraRepo.NewLocationGormRepository(gormDB)
	skuRepo := infraRepo.NewSkuGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	prizeRepo := infraRepo.NewPrizeGormRepository(gormDB)
	campaignRepo := infraRepo.NewCampaignGormRepository(gormDB)
	drawRepo := infraRepo.NewDrawGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderSkuRepo := infraRepo.NewOrderSkuGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//redisは任意。未設定ならキャッシュなしで動く。
	var closingCache usecase.ClosingCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		closingCache = cache.NewCampaignCache(rdb, logger)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	userUC := usecase.NewUserUsecase(userRepo, locationRepo)
	skuUC := usecase.NewSkuUsecase(txManager, skuRepo, inventoryRepo, auditRepo)
	prizeUC := usecase.NewPrizeUsecase(prizeRepo)
	campaignUC := usecase.NewCampaignUsecase(txManager, campaignRepo, skuRepo, prizeRepo, drawRepo, closingCache)
	cartUC := usecase.NewCartUsecase(txManager, cartRepo, cartItemRepo, campaignRepo, skuRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderSkuRepo, couponRepo, locationRepo, auditRepo)
	drawUC := usecase.NewDrawUsecase(txManager, drawRepo, campaignRepo, couponRepo, prizeRepo, userRepo, logger)

	//キャンペーン再計算と抽選確定のワーカー
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := worker.NewScheduler(campaignUC, drawUC, cfg.WorkerInterval, logger)
	go sched.Run(ctx)

	//Server起動
	e := server.New(cfg, server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		User:     handler.NewUserHandler(userUC),
		Sku:      handler.NewSkuHandler(skuUC),
		Campaign: handler.NewCampaignHandler(campaignUC),
		Shopping: handler.NewShoppingHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Prize:    handler.NewPrizeHandler(prizeUC, drawUC),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.GoEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
