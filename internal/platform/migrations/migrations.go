package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the catalog and users contexts. Record types
// mirror the postgres adapters of each context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&supplierRecord{},
		&productRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

type categoryRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	Name        string `gorm:"column:name;not null"`
	Department  string `gorm:"column:department"`
	Description string `gorm:"column:description"`
}

func (categoryRecord) TableName() string { return "product_categories" }

type supplierRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
}

func (supplierRecord) TableName() string { return "suppliers" }

type productRecord struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	Name         string          `gorm:"column:name;not null"`
	Description  string          `gorm:"column:description"`
	DefaultPrice decimal.Decimal `gorm:"column:default_price;type:numeric(12,2);not null"`
	Currency     string          `gorm:"column:currency;type:char(3);not null"`
	CategoryID   int64           `gorm:"column:category_id;index"`
	SupplierID   int64           `gorm:"column:supplier_id;index"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:64"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
