package repository

import (
	"errors"
	"math"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// EventLineRepository 행사 품목 데이터 접근 인터페이스
type EventLineRepository interface {
	GetByJunnoBarcode(junno, barcode string) (*models.EventLineItem, error)
	ListByJunno(junno string) ([]models.EventLineItem, error)
	ListActiveByJunno(junno string) ([]models.EventLineItem, error)
	Create(line *models.EventLineItem) error
	Update(line *models.EventLineItem) error
	Delete(junno, barcode string) error
	MaxSeq(junno string) (int, error)
	Aggregate(junno string) (int, int, error)
	FindLatestActiveForBarcode(barcode, excludeJunno string) (*models.EventLineItem, error)
	CountWindowOverlaps(barcode, startDay, endDay, excludeJunno string) (int64, error)
	WithTx(tx *gorm.DB) *GormEventLineRepository
}

// GormEventLineRepository GORM 구현체
type GormEventLineRepository struct {
	db *gorm.DB
}

// NewEventLineRepository 행사 품목 저장소 생성
func NewEventLineRepository(db *gorm.DB) *GormEventLineRepository {
	return &GormEventLineRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormEventLineRepository) WithTx(tx *gorm.DB) *GormEventLineRepository {
	if tx == nil {
		return r
	}
	return &GormEventLineRepository{db: tx}
}

// GetByJunnoBarcode 전표 번호와 바코드로 품목 조회. 없으면 (nil, nil) 반환
func (r *GormEventLineRepository) GetByJunnoBarcode(junno, barcode string) (*models.EventLineItem, error) {
	var line models.EventLineItem
	if err := r.db.Where("junno = ? AND barcode = ?", junno, barcode).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// ListByJunno 전표 번호의 전체 품목 조회 (제외 품목 포함)
func (r *GormEventLineRepository) ListByJunno(junno string) ([]models.EventLineItem, error) {
	var lines []models.EventLineItem
	if err := r.db.Where("junno = ?", junno).Order("seq asc, id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListActiveByJunno 전표 번호의 품목 조회 ('D' 제외)
func (r *GormEventLineRepository) ListActiveByJunno(junno string) ([]models.EventLineItem, error) {
	var lines []models.EventLineItem
	if err := r.db.Where("junno = ? AND is_appl <> ?", junno, constants.EventItemRemoved).
		Order("seq asc, id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Create 행사 품목 생성
func (r *GormEventLineRepository) Create(line *models.EventLineItem) error {
	return r.db.Create(line).Error
}

// Update 행사 품목 갱신
func (r *GormEventLineRepository) Update(line *models.EventLineItem) error {
	return r.db.Save(line).Error
}

// MaxSeq 전표 내 최대 순번. 품목이 없으면 0 반환
func (r *GormEventLineRepository) MaxSeq(junno string) (int, error) {
	var row struct {
		MaxSeq int
	}
	if err := r.db.Model(&models.EventLineItem{}).
		Select("COALESCE(MAX(seq), 0) AS max_seq").
		Where("junno = ?", junno).
		Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.MaxSeq, nil
}

// Aggregate 'D' 가 아닌 품목 수와 평균 마진율(floor)을 반환
func (r *GormEventLineRepository) Aggregate(junno string) (int, int, error) {
	var row struct {
		ItemCount int
		AvgRate   float64
	}
	if err := r.db.Model(&models.EventLineItem{}).
		Select("COUNT(*) AS item_count, COALESCE(AVG(sale_count), 0) AS avg_rate").
		Where("junno = ? AND is_appl <> ?", junno, constants.EventItemRemoved).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.ItemCount, int(math.Floor(row.AvgRate)), nil
}

// FindLatestActiveForBarcode 같은 바코드를 품고 있는 다른 적용중 행사의 품목을 찾는다.
// 헤더 시작일이 가장 최근인 쪽을 우선한다. 없으면 (nil, nil) 반환
func (r *GormEventLineRepository) FindLatestActiveForBarcode(barcode, excludeJunno string) (*models.EventLineItem, error) {
	var line models.EventLineItem
	query := r.db.Model(&models.EventLineItem{}).
		Joins("JOIN event_items ON event_items.junno = event_line_items.junno").
		Where("event_line_items.barcode = ?", barcode).
		Where("event_line_items.is_appl <> ?", constants.EventItemRemoved).
		Where("event_items.is_appl = ?", constants.EventStatusActive)
	if excludeJunno != "" {
		query = query.Where("event_line_items.junno <> ?", excludeJunno)
	}
	err := query.Select("event_line_items.*").
		Order("event_items.start_day desc, event_items.junno desc").
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// CountWindowOverlaps 같은 바코드가 겹치는 기간의 다른 행사(대기/적용중)에 등록된 수를 센다
func (r *GormEventLineRepository) CountWindowOverlaps(barcode, startDay, endDay, excludeJunno string) (int64, error) {
	if barcode == "" || startDay == "" || endDay == "" {
		return 0, nil
	}
	var count int64
	query := r.db.Model(&models.EventLineItem{}).
		Joins("JOIN event_items ON event_items.junno = event_line_items.junno").
		Where("event_line_items.barcode = ?", barcode).
		Where("event_line_items.is_appl <> ?", constants.EventItemRemoved).
		Where("event_items.is_appl IN ?", []string{constants.EventStatusWaiting, constants.EventStatusActive}).
		Where("event_items.start_day <= ? AND event_items.end_day >= ?", endDay, startDay)
	if excludeJunno != "" {
		query = query.Where("event_line_items.junno <> ?", excludeJunno)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
