package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	"app/internal/infra/geo"
	"app/internal/infra/notify"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/metrics"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル用。無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部コラボレーター
	geoClient := geo.NewClient(cfg.RegionAPIURL, cfg.RegionAPIKey)
	regionCache := cache.NewMemoryRegionCache()
	regionResolver := usecase.NewRegionResolver(
		geoClient,
		regionCache,
		time.Duration(cfg.RegionCacheTTLHours)*time.Hour,
		log,
	)
	paymentClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentServerKey)

	var notifier usecase.Notifier
	if cfg.KafkaBrokers != "" {
		notifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	m := metrics.NewCheckoutMetrics("api")

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	validator := usecase.NewCartValidator(productRepo)
	shippingUC := usecase.NewShippingUsecase(addressRepo, cartUC, regionCache, usecase.ShippingConfig{
		OriginLat:     cfg.WarehouseLat,
		OriginLng:     cfg.WarehouseLng,
		RatePerKM:     cfg.ShippingRatePerKM,
		MarkupPercent: cfg.ShippingMarkupPercent,
		MinFee:        cfg.ShippingMinFee,
		MaxDistanceKM: cfg.ShippingMaxDistanceKM,
		MaxWeightKG:   cfg.ShippingMaxWeightKG,
	})
	paymentUC := usecase.NewPaymentUsecase(userRepo, paymentClient)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartUC, validator, addressRepo, paymentUC)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, notifier, log)
	addressUC := usecase.NewAddressUsecase(txManager, addressRepo, geoClient, regionResolver, log)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(checkoutUC, orderUC, m)
	shippingH := handler.NewShippingHandler(shippingUC, m)
	addressH := handler.NewAddressHandler(addressUC)
	adminOrderH := handler.NewAdminOrderHandler(orderUC)

	//Server起動
	addr := ":" + cfg.Port
	log.Info("starting server", "addr", addr)
	if err := server.Start(addr, cfg, cartH, orderH, shippingH, addressH, adminOrderH); err != nil {
		panic(err)
	}
}
