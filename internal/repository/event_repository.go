package repository

import (
	"errors"

	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// EventRepository 행사 헤더 데이터 접근 인터페이스
type EventRepository interface {
	Create(event *models.EventItem) error
	GetByJunno(junno string) (*models.EventItem, error)
	GetHeaderByJunno(junno string) (*models.EventItem, error)
	ExistsByJunno(junno string) (bool, error)
	List(filter EventListFilter) ([]models.EventItem, int64, error)
	ListByStatuses(statuses []string) ([]models.EventItem, error)
	UpdateHeader(event *models.EventItem) error
	Delete(junno string) error
	WithTx(tx *gorm.DB) *GormEventRepository
}

// GormEventRepository GORM 구현체
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository 행사 저장소 생성
func NewEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormEventRepository) WithTx(tx *gorm.DB) *GormEventRepository {
	if tx == nil {
		return r
	}
	return &GormEventRepository{db: tx}
}

func (r *GormEventRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq asc, id asc")
	})
}

// Create 행사 헤더 생성. 품목은 별도로 기록한다
func (r *GormEventRepository) Create(event *models.EventItem) error {
	return r.db.Omit("Items").Create(event).Error
}

// GetByJunno 전표 번호로 행사 조회 (품목 포함). 없으면 (nil, nil) 반환
func (r *GormEventRepository) GetByJunno(junno string) (*models.EventItem, error) {
	var event models.EventItem
	query := r.withItems(r.db)
	if err := query.Where("junno = ?", junno).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// GetHeaderByJunno 전표 번호로 행사 헤더만 조회. 없으면 (nil, nil) 반환
func (r *GormEventRepository) GetHeaderByJunno(junno string) (*models.EventItem, error) {
	var event models.EventItem
	if err := r.db.Where("junno = ?", junno).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// ExistsByJunno 전표 번호 사용 여부
func (r *GormEventRepository) ExistsByJunno(junno string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.EventItem{}).Where("junno = ?", junno).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 행사 목록 조회
func (r *GormEventRepository) List(filter EventListFilter) ([]models.EventItem, int64, error) {
	var events []models.EventItem
	query := r.db.Model(&models.EventItem{})

	if filter.Status != "" {
		query = query.Where("is_appl = ?", filter.Status)
	}
	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"sale_name", "junno"})
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

	if err := query.Order("junno desc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByStatuses 상태 코드 목록으로 행사 헤더 조회
func (r *GormEventRepository) ListByStatuses(statuses []string) ([]models.EventItem, error) {
	var events []models.EventItem
	if len(statuses) == 0 {
		return events, nil
	}
	if err := r.db.Where("is_appl IN ?", statuses).Order("junno asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateHeader 행사 헤더 갱신. 품목 연관은 건드리지 않는다
func (r *GormEventRepository) UpdateHeader(event *models.EventItem) error {
	return r.db.Omit("Items").Save(event).Error
}

// Delete 행사 즉시 삭제 (품목 포함)
func (r *GormEventRepository) Delete(junno string) error {
	if err := r.db.Where("junno = ?", junno).Delete(&models.EventLineItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("junno = ?", junno).Delete(&models.EventItem{}).Error
}
