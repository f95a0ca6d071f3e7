package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var (
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.SupplierRepository = (*SupplierRepository)(nil)
)

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

// CategoryRepository persists product categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := categoryRecord{
		ID:          category.ID,
		Name:        category.Name,
		Department:  category.Department,
		Description: category.Description,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "department", "description"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{ID: r.ID, Name: r.Name, Department: r.Department, Description: r.Description}
}

// SupplierRepository persists suppliers.
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Save(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	record := supplierRecord{ID: supplier.ID, Name: supplier.Name, Description: supplier.Description}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	var record supplierRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	var records []supplierRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Supplier, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r supplierRecord) toDomain() *domain.Supplier {
	return &domain.Supplier{ID: r.ID, Name: r.Name, Description: r.Description}
}
