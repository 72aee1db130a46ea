package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.EventItem{},
		&models.Supplier{},
	); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func TestDashboardOverviewCounts(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	today := "2026-08-24"

	products := []models.Product{
		{Barcode: "8801111111111", Name: "새우깡", Unit: "개"},
		{
			Barcode: "8802222222222", Name: "바나나우유", Unit: "개",
			SaleStartDate: "2026-08-01", SaleEndDate: "2026-08-31",
			EventCostPrice: models.NewMoneyFromInt(950), SalePrice: models.NewMoneyFromInt(1300),
		},
		{
			Barcode: "8803333333333", Name: "지난 행사 상품", Unit: "개",
			SaleStartDate: "2026-07-01", SaleEndDate: "2026-07-31",
			EventCostPrice: models.NewMoneyFromInt(700), SalePrice: models.NewMoneyFromInt(900),
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	orders := []models.Order{
		{ID: 1756000000100, Customer: "한성마트", Total: models.NewMoneyFromInt(12000), OrderDate: today},
		{ID: 1756000000101, Customer: "동네슈퍼", Total: models.NewMoneyFromInt(8000), OrderDate: today},
		{ID: 1756000000102, Customer: "한성마트", Total: models.NewMoneyFromInt(5000), OrderDate: "2026-08-20"},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	events := []models.EventItem{
		{Junno: "20260801100001", SaleName: "8월 행사", StartDay: "2026-08-01", EndDay: "2026-08-31", IsAppl: constants.EventStatusActive},
		{Junno: "20260901100001", SaleName: "9월 행사", StartDay: "2026-09-01", EndDay: "2026-09-30", IsAppl: constants.EventStatusWaiting},
		{Junno: "20260701100001", SaleName: "지난 행사", StartDay: "2026-07-01", EndDay: "2026-07-31", IsAppl: constants.EventStatusEnded},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			t.Fatalf("create event failed: %v", err)
		}
	}

	if err := db.Create(&models.Supplier{Name: "농심 대리점"}).Error; err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}

	got, err := repo.GetOverview(today)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if got.OrdersTotal != 3 {
		t.Fatalf("orders total want 3 got %d", got.OrdersTotal)
	}
	if got.OrdersToday != 2 {
		t.Fatalf("orders today want 2 got %d", got.OrdersToday)
	}
	if got.AmountToday != 20000 {
		t.Fatalf("amount today want 20000 got %.2f", got.AmountToday)
	}
	if got.ProductsTotal != 3 {
		t.Fatalf("products total want 3 got %d", got.ProductsTotal)
	}
	if got.OnSaleProducts != 1 {
		t.Fatalf("on-sale products want 1 got %d", got.OnSaleProducts)
	}
	if got.ActiveEvents != 1 {
		t.Fatalf("active events want 1 got %d", got.ActiveEvents)
	}
	if got.WaitingEvents != 1 {
		t.Fatalf("waiting events want 1 got %d", got.WaitingEvents)
	}
	if got.SuppliersTotal != 1 {
		t.Fatalf("suppliers total want 1 got %d", got.SuppliersTotal)
	}
}

func TestDashboardOrderTrendGroupsByOrderDate(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	orders := []models.Order{
		{ID: 1756000000110, Customer: "한성마트", Total: models.NewMoneyFromInt(1000), OrderDate: "2026-08-22"},
		{ID: 1756000000111, Customer: "한성마트", Total: models.NewMoneyFromInt(2000), OrderDate: "2026-08-23"},
		{ID: 1756000000112, Customer: "동네슈퍼", Total: models.NewMoneyFromInt(3000), OrderDate: "2026-08-23"},
		{ID: 1756000000113, Customer: "동네슈퍼", Total: models.NewMoneyFromInt(9000), OrderDate: "2026-08-30"},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	rows, err := repo.GetOrderTrend("2026-08-22", "2026-08-24")
	if err != nil {
		t.Fatalf("get order trend failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("trend rows want 2 got %d", len(rows))
	}
	if rows[0].Day != "2026-08-22" || rows[0].Orders != 1 || rows[0].Amount != 1000 {
		t.Fatalf("first row mismatch, got %+v", rows[0])
	}
	if rows[1].Day != "2026-08-23" || rows[1].Orders != 2 || rows[1].Amount != 5000 {
		t.Fatalf("second row mismatch, got %+v", rows[1])
	}
}

func TestDashboardTopProductsRanksByQuantity(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	order1 := models.Order{ID: 1756000000120, Customer: "한성마트", OrderDate: "2026-08-23"}
	order2 := models.Order{ID: 1756000000121, Customer: "동네슈퍼", OrderDate: "2026-08-24"}
	if err := db.Create(&order1).Error; err != nil {
		t.Fatalf("create order1 failed: %v", err)
	}
	if err := db.Create(&order2).Error; err != nil {
		t.Fatalf("create order2 failed: %v", err)
	}

	items := []models.OrderItem{
		{OrderID: order1.ID, Barcode: "8801111111111", Name: "새우깡", Price: models.NewMoneyFromInt(900), Quantity: 10, Unit: "개"},
		{OrderID: order1.ID, Barcode: "8802222222222", Name: "서울우유 1L", Price: models.NewMoneyFromInt(2100), Quantity: 2, Unit: "개"},
		{OrderID: order2.ID, Barcode: "8801111111111", Name: "새우깡", Price: models.NewMoneyFromInt(900), Quantity: 5, Unit: "개"},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create order item failed: %v", err)
		}
	}

	rows, err := repo.GetTopProducts("2026-08-20", "2026-08-26", 5)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("top products len want 2 got %d", len(rows))
	}
	if rows[0].Barcode != "8801111111111" {
		t.Fatalf("top product want 8801111111111 got %s", rows[0].Barcode)
	}
	if rows[0].Quantity != 15 {
		t.Fatalf("top product quantity want 15 got %d", rows[0].Quantity)
	}
	if rows[0].OrderCount != 2 {
		t.Fatalf("top product order count want 2 got %d", rows[0].OrderCount)
	}
	if rows[0].Amount != 13500 {
		t.Fatalf("top product amount want 13500 got %.2f", rows[0].Amount)
	}
}
