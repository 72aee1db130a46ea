package service

import (
	"testing"

	"github.com/balju-mate/internal/models"
)

func draftProduct(barcode, name string, costPrice int64) *models.Product {
	return &models.Product{
		Barcode:      barcode,
		Name:         name,
		CostPrice:    models.NewMoneyFromInt(costPrice),
		SellingPrice: models.NewMoneyFromInt(costPrice * 2),
		Unit:         "개",
	}
}

func draftProductOnSale(barcode, name string, costPrice, eventCost int64, start, end string) *models.Product {
	product := draftProduct(barcode, name, costPrice)
	product.EventCostPrice = models.NewMoneyFromInt(eventCost)
	product.SalePrice = models.NewMoneyFromInt(eventCost * 2)
	product.SaleName = "여름 특가"
	product.SaleStartDate = start
	product.SaleEndDate = end
	return product
}

func TestDraftAddNewItemUsesCostPrice(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	product := draftProductOnSale("8801111", "서울우유 1L", 2000, 1500, "2026-08-20", "2026-08-31")
	if !draft.AddOrUpdateItem(product, DraftItemInput{Quantity: 3}, today) {
		t.Fatalf("add should report a change")
	}

	item := draft.FindItem("8801111")
	if item == nil {
		t.Fatalf("item not found after add")
	}
	// 행사 중이라도 담는 시점 단가는 기준 매입가다
	if item.Price.String() != "2000.00" {
		t.Fatalf("price want 2000.00 got %s", item.Price.String())
	}
	if item.MasterPrice.String() != "2000.00" {
		t.Fatalf("master price want 2000.00 got %s", item.MasterPrice.String())
	}
	if item.EventPrice.String() != "1500.00" || item.SaleName != "여름 특가" {
		t.Fatalf("event snapshot not captured: %+v", item)
	}
	if item.Quantity != 3 || item.Unit != "개" || item.SortOrder != 0 {
		t.Fatalf("unexpected item fields: %+v", item)
	}
}

func TestDraftAddWithoutPromotion(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	product := draftProduct("8801234567890", "새우깡 90g", 1000)
	draft.AddOrUpdateItem(product, DraftItemInput{Quantity: 3}, today)

	item := draft.FindItem("8801234567890")
	if item == nil {
		t.Fatalf("item not found after add")
	}
	if item.Price.String() != "1000.00" || item.Quantity != 3 {
		t.Fatalf("want price 1000.00 x3, got %s x%d", item.Price.String(), item.Quantity)
	}
	if item.HasEventSnapshot() {
		t.Fatalf("no promotion means no snapshot: %+v", item)
	}
	if got := draft.TotalAmount().String(); got != "3000.00" {
		t.Fatalf("total want 3000.00 got %s", got)
	}
}

func TestDraftAddExpiredOverlayLeavesSnapshotEmpty(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	product := draftProductOnSale("8802222", "포카칩", 1200, 900, "2026-07-01", "2026-07-31")
	draft.AddOrUpdateItem(product, DraftItemInput{Quantity: 1}, today)

	item := draft.FindItem("8802222")
	if item == nil {
		t.Fatalf("item not found after add")
	}
	if item.HasEventSnapshot() {
		t.Fatalf("expired overlay must not be snapshotted: %+v", item)
	}
	if item.Price.String() != "1200.00" {
		t.Fatalf("price want 1200.00 got %s", item.Price.String())
	}
}

func TestDraftAddMergesQuantityAndRefreshesSnapshot(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	product := draftProduct("8803333", "삼다수 2L", 800)
	draft.AddOrUpdateItem(product, DraftItemInput{Quantity: 2}, today)

	// 두 번째 담기 전에 행사가 새로 열렸다
	onSale := draftProductOnSale("8803333", "삼다수 2L", 800, 700, "2026-08-24", "2026-08-30")
	draft.AddOrUpdateItem(onSale, DraftItemInput{Quantity: 3}, today)

	if len(draft.Items) != 1 {
		t.Fatalf("merge must not create a second row, got %d", len(draft.Items))
	}
	item := draft.FindItem("8803333")
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", item.Quantity)
	}
	if item.EventPrice.String() != "700.00" || item.SaleEndDate != "2026-08-30" {
		t.Fatalf("snapshot not refreshed on merge: %+v", item)
	}
	// 병합은 단가를 건드리지 않는다
	if item.Price.String() != "800.00" {
		t.Fatalf("price want 800.00 got %s", item.Price.String())
	}
}

func TestDraftAddNegativeDeltaRemovesItem(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: 2}, today)
	draft.AddOrUpdateItem(draftProduct("8802222", "포카칩", 1200), DraftItemInput{Quantity: 1}, today)

	if !draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: -2}, today) {
		t.Fatalf("removal through zero quantity should report a change")
	}
	if draft.FindItem("8801111") != nil {
		t.Fatalf("item should be removed when quantity reaches zero")
	}
	if item := draft.FindItem("8802222"); item == nil || item.SortOrder != 0 {
		t.Fatalf("remaining item should be renumbered from zero: %+v", item)
	}
}

func TestDraftAddInitialNonPositiveIsNoop(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	if draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: 0}, today) {
		t.Fatalf("new item with zero quantity must be a no-op")
	}
	if draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: -1}, today) {
		t.Fatalf("new item with negative quantity must be a no-op")
	}
	if len(draft.Items) != 0 {
		t.Fatalf("draft should stay empty, got %d items", len(draft.Items))
	}
}

func TestDraftUnitFallsBackToProductThenDefault(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	boxed := draftProduct("8804444", "바나나맛우유 4입", 3200)
	boxed.Unit = "박스"
	draft.AddOrUpdateItem(boxed, DraftItemInput{Quantity: 1}, today)
	if item := draft.FindItem("8804444"); item.Unit != "박스" {
		t.Fatalf("unit want 박스 got %s", item.Unit)
	}

	bare := draftProduct("8805555", "요구르트", 500)
	bare.Unit = ""
	draft.AddOrUpdateItem(bare, DraftItemInput{Quantity: 1}, today)
	if item := draft.FindItem("8805555"); item.Unit != "개" {
		t.Fatalf("unit want 개 got %s", item.Unit)
	}

	draft.AddOrUpdateItem(draftProduct("8806666", "계란 30구", 7000), DraftItemInput{Quantity: 1, Unit: "판"}, today)
	if item := draft.FindItem("8806666"); item.Unit != "판" {
		t.Fatalf("unit want 판 got %s", item.Unit)
	}
}

func TestDraftUpdateItemPatchFields(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()
	draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: 2}, today)

	quantity := 7
	unit := "박스"
	memo := " 냉장 보관 "
	if !draft.UpdateItem("8801111", DraftItemPatch{Quantity: &quantity, Unit: &unit, Memo: &memo}) {
		t.Fatalf("update should report a change")
	}

	item := draft.FindItem("8801111")
	if item.Quantity != 7 || item.Unit != "박스" || item.Memo != "냉장 보관" {
		t.Fatalf("patch not applied: %+v", item)
	}
	if item.IsModified {
		t.Fatalf("non-price patch must not mark the item as modified")
	}

	price := models.NewMoneyFromInt(1800)
	draft.UpdateItem("8801111", DraftItemPatch{Price: &price})
	item = draft.FindItem("8801111")
	if item.Price.String() != "1800.00" || !item.IsModified {
		t.Fatalf("price patch should freeze a manual price: %+v", item)
	}

	if draft.UpdateItem("없는바코드", DraftItemPatch{Quantity: &quantity}) {
		t.Fatalf("update of a missing barcode should report no change")
	}
}

func TestDraftUpdateQuantityZeroRemoves(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()
	draft.AddOrUpdateItem(draftProduct("8801111", "서울우유 1L", 2000), DraftItemInput{Quantity: 2}, today)

	zero := 0
	if !draft.UpdateItem("8801111", DraftItemPatch{Quantity: &zero}) {
		t.Fatalf("zero quantity update should report a change")
	}
	if len(draft.Items) != 0 {
		t.Fatalf("zero quantity must remove the item")
	}
}

func TestDraftReorderMovesAndRenumbers(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()
	for i, name := range []string{"가", "나", "다", "라"} {
		draft.AddOrUpdateItem(draftProduct(string(rune('A'+i)), name, 1000), DraftItemInput{Quantity: 1}, today)
	}

	if !draft.Reorder(0, 2) {
		t.Fatalf("reorder should report a change")
	}
	got := make([]string, 0, len(draft.Items))
	for _, item := range draft.Items {
		got = append(got, item.Name)
	}
	want := []string{"나", "다", "가", "라"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order want %v got %v", want, got)
		}
		if draft.Items[i].SortOrder != i {
			t.Fatalf("sort order at %d want %d got %d", i, i, draft.Items[i].SortOrder)
		}
	}

	if draft.Reorder(0, 9) || draft.Reorder(-1, 0) || draft.Reorder(1, 1) {
		t.Fatalf("invalid reorder must report no change")
	}
}

func TestDraftTotalAmountFloorsSum(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	draft := NewOrderDraft()

	milk := draftProduct("8801111", "서울우유 1L", 0)
	milk.CostPrice = models.Money{Decimal: mustDecimal(t, "1000.50")}
	draft.AddOrUpdateItem(milk, DraftItemInput{Quantity: 3}, today)

	water := draftProduct("8803333", "삼다수 2L", 800)
	draft.AddOrUpdateItem(water, DraftItemInput{Quantity: 2}, today)

	// 1000.50*3 + 800*2 = 4601.50 → 버림 4601
	if got := draft.TotalAmount().String(); got != "4601.00" {
		t.Fatalf("total want 4601.00 got %s", got)
	}

	if empty := NewOrderDraft().TotalAmount(); empty.String() != "0.00" {
		t.Fatalf("empty draft total want 0.00 got %s", empty.String())
	}
}

func TestDraftRecordFetchedKeepsACopy(t *testing.T) {
	draft := NewOrderDraft()
	product := draftProduct("8801111", "서울우유 1L", 2000)
	draft.RecordFetched(product)

	product.Name = "바뀐 이름"
	fetched := draft.FetchedProduct("8801111")
	if fetched == nil || fetched.Name != "서울우유 1L" {
		t.Fatalf("fetched copy must be detached from the source: %+v", fetched)
	}
	if draft.FetchedProduct("없는바코드") != nil {
		t.Fatalf("unknown barcode should return nil")
	}
}

func TestDraftResetItemsRenumbers(t *testing.T) {
	draft := NewOrderDraft()
	draft.ResetItems([]models.OrderItem{
		{Barcode: "B", Name: "나", SortOrder: 9},
		{Barcode: "A", Name: "가", SortOrder: 3},
	})
	if len(draft.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(draft.Items))
	}
	if draft.Items[0].SortOrder != 0 || draft.Items[1].SortOrder != 1 {
		t.Fatalf("reset must renumber sort order: %+v", draft.Items)
	}
}
