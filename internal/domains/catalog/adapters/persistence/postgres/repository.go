package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persists products in PostgreSQL using GORM.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productRecord maps the product aggregate to a relational table.
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

// Save inserts or updates a product. A zero ID lets the database assign one.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":          record.Name,
				"description":   record.Description,
				"default_price": record.DefaultPrice,
				"currency":      record.Currency,
				"category_id":   record.CategoryID,
				"supplier_id":   record.SupplierID,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all products ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, nil)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return r.find(ctx, map[string]any{"category_id": categoryID})
}

func (r *ProductRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]*domain.Product, error) {
	return r.find(ctx, map[string]any{"supplier_id": supplierID})
}

// Delete removes a product by identifier.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) find(ctx context.Context, where map[string]any) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if len(where) > 0 {
		query = query.Where(where)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toProductRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DefaultPrice: p.DefaultPrice,
		Currency:     p.Currency,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		DefaultPrice: r.DefaultPrice,
		Currency:     r.Currency,
		CategoryID:   r.CategoryID,
		SupplierID:   r.SupplierID,
	}
}
