package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect は設定で組み立てたDSNでPostgresに接続する。
// DSNの解決（DATABASE_URL優先、POSTGRES_*フォールバック）はconfig側。
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
