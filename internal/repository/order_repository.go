package repository

import (
	"errors"

	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 발주 데이터 접근 인터페이스
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id int64) (*models.Order, error)
	ExistsByID(id int64) (bool, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	Update(order *models.Order) error
	ReplaceItems(orderID int64, items []models.OrderItem) error
	Delete(id int64) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 구현체
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 발주 저장소 생성
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc, id asc")
	})
}

// Create 발주와 품목을 함께 생성
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 발주 번호로 조회. 없으면 (nil, nil) 반환
func (r *GormOrderRepository) GetByID(id int64) (*models.Order, error) {
	var order models.Order
	query := r.withItems(r.db)
	if err := query.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ExistsByID 발주 번호 사용 여부. 소프트 삭제된 행도 점유한 것으로 본다
func (r *GormOrderRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 발주 목록 조회
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.Customer != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"customer"})
		if argCount > 0 {
			like := "%" + filter.Customer + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.DateFrom != "" {
		query = query.Where("order_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("order_date <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	query = r.withItems(query)
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Update 발주 헤더 갱신
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Omit("Items").Save(order).Error
}

// ReplaceItems 발주 품목 전체 교체. 기존 행을 지우고 새 품목을 기록한다
func (r *GormOrderRepository) ReplaceItems(orderID int64, items []models.OrderItem) error {
	if err := r.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete 발주 삭제. 품목은 즉시 지우고 헤더는 소프트 삭제한다
func (r *GormOrderRepository) Delete(id int64) error {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Order{}).Error
}
