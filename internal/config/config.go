package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // Postgres DSN（DATABASE_URL優先、無ければPOSTGRES_*から組む）

	JWTSecret string // JWT署名シークレット
	GoEnv     string // dev/prod
	LogLevel  string // debug/info/warn/error

	PaymentAPIURL    string // 決済ゲートウェイのtransaction作成URL
	PaymentServerKey string // ゲートウェイのserver key

	RegionAPIURL        string // 地域名→ID検索APIのベースURL
	RegionAPIKey        string
	RegionCacheTTLHours int // 地域IDキャッシュのTTL（時間）

	KafkaBrokers string // カンマ区切り。空ならログ通知にフォールバック
	KafkaTopic   string

	// 配送料計算の定数
	WarehouseLat          float64 // 発送元（倉庫）の緯度
	WarehouseLng          float64 // 発送元（倉庫）の経度
	ShippingRatePerKM     int64
	ShippingMarkupPercent int64
	ShippingMinFee        int64
	ShippingMaxDistanceKM float64
	ShippingMaxWeightKG   float64
}

// Loadは環境変数
func Load() (Config, error) {
	lat, err := mustFloat("WAREHOUSE_LAT")
	if err != nil {
		return Config{}, err
	}
	lng, err := mustFloat("WAREHOUSE_LNG")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		DatabaseURL: databaseURL(),

		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
		LogLevel:  getenv("LOG_LEVEL", "info"),

		PaymentAPIURL:    os.Getenv("PAYMENT_API_URL"),
		PaymentServerKey: os.Getenv("PAYMENT_SERVER_KEY"),

		RegionAPIURL:        os.Getenv("REGION_API_URL"),
		RegionAPIKey:        os.Getenv("REGION_API_KEY"),
		RegionCacheTTLHours: atoiDefault("REGION_CACHE_TTL_HOURS", 72),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getenv("KAFKA_TOPIC", "order-status"),

		WarehouseLat:          lat,
		WarehouseLng:          lng,
		ShippingRatePerKM:     int64(atoiDefault("SHIPPING_RATE_PER_KM", 2500)),
		ShippingMarkupPercent: int64(atoiDefault("SHIPPING_MARKUP_PERCENT", 10)),
		ShippingMinFee:        int64(atoiDefault("SHIPPING_MIN_FEE", 10000)),
		ShippingMaxDistanceKM: floatDefault("SHIPPING_MAX_DISTANCE_KM", 30),
		ShippingMaxWeightKG:   floatDefault("SHIPPING_MAX_WEIGHT_KG", 30),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.PaymentAPIURL == "" {
		return Config{}, fmt.Errorf("PAYMENT_API_URL is required")
	}
	if cfg.PaymentServerKey == "" {
		return Config{}, fmt.Errorf("PAYMENT_SERVER_KEY is required")
	}
	if cfg.RegionAPIURL == "" {
		return Config{}, fmt.Errorf("REGION_API_URL is required")
	}
	if cfg.RegionAPIKey == "" {
		return Config{}, fmt.Errorf("REGION_API_KEY is required")
	}

	return cfg, nil
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("POSTGRES_HOST", "localhost"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DB", "storefront"),
		getenv("POSTGRES_SSLMODE", "disable"),
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func mustFloat(key string) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}

func atoiDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func floatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
