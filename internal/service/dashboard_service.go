package service

import (
	"context"
	"fmt"
	"time"

	"github.com/balju-mate/internal/cache"
	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL    = 45 * time.Second
	dashboardDefaultDays = 7
	dashboardMaxDays     = 90
	dashboardTopLimit    = 5
)

// DashboardService 매장 현황 대시보드 집계
type DashboardService struct {
	repo     repository.DashboardRepository
	location *time.Location
}

// NewDashboardService 대시보드 서비스 생성
func NewDashboardService(repo repository.DashboardRepository, location *time.Location) *DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardService{repo: repo, location: location}
}

// DashboardSummary 대시보드 응답
type DashboardSummary struct {
	Overview    DashboardOverview     `json:"overview"`
	Trend       []DashboardTrendPoint `json:"trend"`
	TopProducts []DashboardTopProduct `json:"top_products"`
	From        string                `json:"from"`
	To          string                `json:"to"`
	GeneratedAt string                `json:"generated_at"`
}

// DashboardOverview 총괄 수치
type DashboardOverview struct {
	OrdersToday    int64        `json:"orders_today"`
	AmountToday    models.Money `json:"amount_today"`
	OrdersTotal    int64        `json:"orders_total"`
	ProductsTotal  int64        `json:"products_total"`
	OnSaleProducts int64        `json:"on_sale_products"`
	ActiveEvents   int64        `json:"active_events"`
	WaitingEvents  int64        `json:"waiting_events"`
	SuppliersTotal int64        `json:"suppliers_total"`
}

// DashboardTrendPoint 일별 발주 추이 한 점
type DashboardTrendPoint struct {
	Day    string       `json:"day"`
	Orders int64        `json:"orders"`
	Amount models.Money `json:"amount"`
}

// DashboardTopProduct 발주 수량 상위 상품
type DashboardTopProduct struct {
	Barcode    string       `json:"barcode"`
	Name       string       `json:"name"`
	OrderCount int64        `json:"order_count"`
	Quantity   int64        `json:"quantity"`
	Amount     models.Money `json:"amount"`
}

// Summary 대시보드 통계 조회. days 는 추이 기간 (기본 7, 최대 90).
// 짧은 TTL 캐시를 깔아 메인 화면 폴링이 집계 질의를 때리지 않게 한다
func (s *DashboardService) Summary(ctx context.Context, days int) (*DashboardSummary, error) {
	if days <= 0 {
		days = dashboardDefaultDays
	}
	if days > dashboardMaxDays {
		days = dashboardMaxDays
	}

	cacheKey := fmt.Sprintf("dashboard:summary:%d", days)
	var cached DashboardSummary
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	now := time.Now().In(s.location)
	today := now.Format(constants.DateLayout)
	from := now.AddDate(0, 0, -(days - 1)).Format(constants.DateLayout)

	overviewRow, err := s.repo.GetOverview(today)
	if err != nil {
		logger.Errorw("dashboard_overview_failed", "error", err)
		return nil, err
	}
	trendRows, err := s.repo.GetOrderTrend(from, today)
	if err != nil {
		logger.Errorw("dashboard_trend_failed", "error", err)
		return nil, err
	}
	topRows, err := s.repo.GetTopProducts(from, today, dashboardTopLimit)
	if err != nil {
		logger.Errorw("dashboard_top_products_failed", "error", err)
		return nil, err
	}

	summary := &DashboardSummary{
		Overview: DashboardOverview{
			OrdersToday:    overviewRow.OrdersToday,
			AmountToday:    moneyFromFloat(overviewRow.AmountToday),
			OrdersTotal:    overviewRow.OrdersTotal,
			ProductsTotal:  overviewRow.ProductsTotal,
			OnSaleProducts: overviewRow.OnSaleProducts,
			ActiveEvents:   overviewRow.ActiveEvents,
			WaitingEvents:  overviewRow.WaitingEvents,
			SuppliersTotal: overviewRow.SuppliersTotal,
		},
		Trend:       fillTrendDays(trendRows, now, days),
		TopProducts: make([]DashboardTopProduct, 0, len(topRows)),
		From:        from,
		To:          today,
		GeneratedAt: now.Format(time.RFC3339),
	}
	for _, row := range topRows {
		summary.TopProducts = append(summary.TopProducts, DashboardTopProduct{
			Barcode:    row.Barcode,
			Name:       row.Name,
			OrderCount: row.OrderCount,
			Quantity:   row.Quantity,
			Amount:     moneyFromFloat(row.Amount),
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, summary, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_save_failed", "error", err)
	}
	return summary, nil
}

// fillTrendDays 발주가 없던 날짜를 0 으로 채워 연속된 추이를 만든다
func fillTrendDays(rows []repository.DashboardOrderTrendRow, now time.Time, days int) []DashboardTrendPoint {
	byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	points := make([]DashboardTrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(constants.DateLayout)
		point := DashboardTrendPoint{Day: day}
		if row, ok := byDay[day]; ok {
			point.Orders = row.Orders
			point.Amount = moneyFromFloat(row.Amount)
		}
		points = append(points, point)
	}
	return points
}

func moneyFromFloat(amount float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}
