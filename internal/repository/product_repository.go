package repository

import (
	"errors"

	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 상품 데이터 접근 인터페이스
type ProductRepository interface {
	GetByBarcode(barcode string) (*models.Product, error)
	ListByBarcodes(barcodes []string) ([]models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(barcode string) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 구현체
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 상품 저장소 생성
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByBarcode 바코드로 상품 조회. 없으면 (nil, nil) 반환
func (r *GormProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Where("barcode = ?", barcode).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByBarcodes 바코드 목록으로 일괄 조회
func (r *GormProductRepository) ListByBarcodes(barcodes []string) ([]models.Product, error) {
	var products []models.Product
	if len(barcodes) == 0 {
		return products, nil
	}
	if err := r.db.Where("barcode IN ?", barcodes).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List 상품 목록 조회
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	query := r.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.OnSaleOnly {
		query = query.Where("sale_end_date <> ''")
	}
	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "barcode"})
		if argCount > 0 {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create 상품 생성
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 상품 전체 갱신
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 상품 소프트 삭제
func (r *GormProductRepository) Delete(barcode string) error {
	return r.db.Where("barcode = ?", barcode).Delete(&models.Product{}).Error
}
