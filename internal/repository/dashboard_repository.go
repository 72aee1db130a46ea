package repository

import (
	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 대시보드 집계 조회 인터페이스
// 통계 수치만 집계하며 업무 규칙은 담지 않는다.
type DashboardRepository interface {
	GetOverview(today string) (DashboardOverviewRow, error)
	GetOrderTrend(fromDate, toDate string) ([]DashboardOrderTrendRow, error)
	GetTopProducts(fromDate, toDate string, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 대시보드 총괄 통계 원시 결과
type DashboardOverviewRow struct {
	OrdersTotal    int64
	OrdersToday    int64
	AmountToday    float64
	ProductsTotal  int64
	OnSaleProducts int64
	ActiveEvents   int64
	WaitingEvents  int64
	SuppliersTotal int64
}

// DashboardOrderTrendRow 발주 추이 통계
type DashboardOrderTrendRow struct {
	Day    string
	Orders int64
	Amount float64
}

// DashboardProductRankingRow 상품 발주 순위 원시 행
type DashboardProductRankingRow struct {
	Barcode    string
	Name       string
	OrderCount int64
	Quantity   int64
	Amount     float64
}

// GormDashboardRepository GORM 집계 구현체
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 대시보드 저장소 생성
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 총괄 통계 조회
func (r *GormDashboardRepository) GetOverview(today string) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Order{}).Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("order_date = ?", today).
		Count(&result.OrdersToday).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("order_date = ?", today).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.AmountToday).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).Count(&result.ProductsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("(sale_start_date = '' OR sale_start_date <= ?) AND sale_end_date >= ?", today, today).
		Count(&result.OnSaleProducts).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.EventItem{}).
		Where("is_appl = ?", constants.EventStatusActive).
		Count(&result.ActiveEvents).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.EventItem{}).
		Where("is_appl = ?", constants.EventStatusWaiting).
		Count(&result.WaitingEvents).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Supplier{}).Count(&result.SuppliersTotal).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetOrderTrend 발주일 기준 일별 추이 조회
func (r *GormDashboardRepository) GetOrderTrend(fromDate, toDate string) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	if err := r.db.Model(&models.Order{}).
		Select("order_date as day, COUNT(*) as orders, COALESCE(SUM(total), 0) as amount").
		Where("order_date >= ? AND order_date <= ?", fromDate, toDate).
		Group("order_date").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts 기간 내 발주 수량 상위 상품 조회
func (r *GormDashboardRepository) GetTopProducts(fromDate, toDate string, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			order_items.barcode as barcode,
			order_items.name as name,
			COUNT(DISTINCT order_items.order_id) as order_count,
			COALESCE(SUM(order_items.quantity), 0) as quantity,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) as amount
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_date >= ? AND orders.order_date <= ? AND orders.deleted_at IS NULL", fromDate, toDate).
		Group("order_items.barcode, order_items.name").
		Order("quantity DESC, amount DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
