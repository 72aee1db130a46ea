package repository

import (
	"errors"

	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository 거래처 데이터 접근 인터페이스
type SupplierRepository interface {
	GetByID(id uint) (*models.Supplier, error)
	GetByName(name string) (*models.Supplier, error)
	List(filter SupplierListFilter) ([]models.Supplier, int64, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id uint) error
}

// GormSupplierRepository GORM 구현체
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 거래처 저장소 생성
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// GetByID ID로 거래처 조회. 없으면 (nil, nil) 반환
func (r *GormSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// GetByName 이름으로 거래처 조회. 없으면 (nil, nil) 반환
func (r *GormSupplierRepository) GetByName(name string) (*models.Supplier, error) {
	if name == "" {
		return nil, nil
	}
	var supplier models.Supplier
	if err := r.db.Where("name = ?", name).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// List 거래처 목록 조회
func (r *GormSupplierRepository) List(filter SupplierListFilter) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	query := r.db.Model(&models.Supplier{})

	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "manager", "phone"})
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

	if err := query.Order("name asc").Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

// Create 거래처 생성
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// Update 거래처 갱신
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete 거래처 소프트 삭제
func (r *GormSupplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}
