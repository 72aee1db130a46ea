package service

import (
	"testing"

	"github.com/balju-mate/internal/models"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func reconcileItem(barcode string, price int64) models.OrderItem {
	return models.OrderItem{
		Barcode:     barcode,
		Name:        "서울우유 1L",
		Price:       models.NewMoneyFromInt(price),
		MasterPrice: models.NewMoneyFromInt(price),
		Quantity:    2,
		Unit:        "개",
	}
}

func TestResolveWithRichCopyActiveEvent(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	item := reconcileItem("8801111", 2000)
	product := draftProductOnSale("8801111", "서울우유 1L", 2100, 1500, "2026-08-20", "2026-08-31")

	resolveWithRichCopy(&item, product, today)

	if item.Price.String() != "1500.00" {
		t.Fatalf("price want 1500.00 got %s", item.Price.String())
	}
	if item.MasterPrice.String() != "2100.00" {
		t.Fatalf("master price want 2100.00 got %s", item.MasterPrice.String())
	}
	if item.EventPrice.String() != "1500.00" || item.SaleName != "여름 특가" || item.SaleEndDate != "2026-08-31" {
		t.Fatalf("snapshot not recomputed: %+v", item)
	}
}

func TestResolveWithRichCopyExpiredEventResetsPrice(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	item := reconcileItem("8801111", 1500)
	item.EventPrice = models.NewMoneyFromInt(1500)
	item.SalePrice = models.NewMoneyFromInt(1900)
	item.SaleName = "지난 행사"
	item.SaleStartDate = "2026-07-01"
	item.SaleEndDate = "2026-07-31"

	product := draftProductOnSale("8801111", "서울우유 1L", 2100, 1500, "2026-07-01", "2026-07-31")
	resolveWithRichCopy(&item, product, today)

	if item.HasEventSnapshot() {
		t.Fatalf("expired overlay must clear the snapshot: %+v", item)
	}
	if item.SaleName != "" || item.SaleStartDate != "" {
		t.Fatalf("snapshot group must be cleared together: %+v", item)
	}
	if item.Price.String() != "2100.00" {
		t.Fatalf("price want 2100.00 got %s", item.Price.String())
	}
}

func TestResolveWithRichCopyKeepsManualPrice(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	item := reconcileItem("8801111", 999)
	item.IsModified = true

	product := draftProductOnSale("8801111", "서울우유 1L", 2100, 1500, "2026-08-20", "2026-08-31")
	resolveWithRichCopy(&item, product, today)

	// 수동 단가는 어떤 출처로도 덮지 않는다
	if item.Price.String() != "999.00" {
		t.Fatalf("manual price must survive, got %s", item.Price.String())
	}
	if item.MasterPrice.String() != "2100.00" || item.EventPrice.String() != "1500.00" {
		t.Fatalf("snapshot and master price must still refresh: %+v", item)
	}
}

func TestResolveWithRichCopyZeroEventCostFallsBack(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	item := reconcileItem("8801111", 1500)

	// 행사 기간은 유효하지만 행사 매입가가 0원이다
	product := draftProduct("8801111", "서울우유 1L", 2100)
	product.SaleName = "사은 행사"
	product.SaleStartDate = "2026-08-20"
	product.SaleEndDate = "2026-08-31"
	product.SalePrice = models.NewMoneyFromInt(1900)

	resolveWithRichCopy(&item, product, today)

	if item.Price.String() != "2100.00" {
		t.Fatalf("zero event cost must fall back to cost price, got %s", item.Price.String())
	}
	if item.SaleName != "사은 행사" || item.SalePrice.String() != "1900.00" {
		t.Fatalf("active window must still be snapshotted: %+v", item)
	}
}

func TestResolveWithLocalCopyPreservesSnapshot(t *testing.T) {
	// 담을 때 행사 매입가 700원이 잡혔고 이후 로컬 사본에는 행사 흔적이 없다
	item := reconcileItem("8801111", 1000)
	item.EventPrice = models.NewMoneyFromInt(700)
	item.SalePrice = models.NewMoneyFromInt(900)
	item.SaleName = "여름 특가"
	item.SaleStartDate = "2026-08-20"
	item.SaleEndDate = "2026-08-31"

	product := draftProduct("8801111", "서울우유 1L", 2100)
	resolveWithLocalCopy(&item, product)

	// 스냅샷은 필드 그대로 살아남는다
	if item.EventPrice.String() != "700.00" || item.SalePrice.String() != "900.00" {
		t.Fatalf("snapshot must survive a stale copy: %+v", item)
	}
	if item.SaleName != "여름 특가" || item.SaleStartDate != "2026-08-20" || item.SaleEndDate != "2026-08-31" {
		t.Fatalf("snapshot must survive field for field: %+v", item)
	}
	// 행사 품목이었으므로 동결된 단가도 유지한다
	if item.Price.String() != "1000.00" {
		t.Fatalf("frozen price must survive, got %s", item.Price.String())
	}
	if item.MasterPrice.String() != "2100.00" {
		t.Fatalf("master price want 2100.00 got %s", item.MasterPrice.String())
	}
}

func TestResolveWithLocalCopyNoEventResetsPrice(t *testing.T) {
	item := reconcileItem("8801111", 1500)

	product := draftProduct("8801111", "서울우유 1L", 2100)
	resolveWithLocalCopy(&item, product)

	if item.HasEventSnapshot() {
		t.Fatalf("plain item must stay without a snapshot: %+v", item)
	}
	if item.Price.String() != "2100.00" {
		t.Fatalf("price want 2100.00 got %s", item.Price.String())
	}
}

func TestResolveWithLocalCopyKeepsManualPrice(t *testing.T) {
	item := reconcileItem("8801111", 777)
	item.IsModified = true

	product := draftProduct("8801111", "서울우유 1L", 2100)
	resolveWithLocalCopy(&item, product)

	if item.Price.String() != "777.00" {
		t.Fatalf("manual price must survive, got %s", item.Price.String())
	}
	if item.MasterPrice.String() != "2100.00" {
		t.Fatalf("master price want 2100.00 got %s", item.MasterPrice.String())
	}
}
