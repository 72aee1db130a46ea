package service

import (
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"github.com/shopspring/decimal"
)

// OrderDraft 편집 중인 발주 한 건의 작업본.
//
// 레지스터 단위로 Redis 저널에 통째로 저장되며, 품목 목록과 함께 이번 편집
// 세션에서 새로 조회한 상품 사본(Fetched)을 기록한다. Fetched 에 있는
// 상품만이 확정 시 스냅샷 재계산의 신뢰 소스가 된다.
type OrderDraft struct {
	Customer       string                    `json:"customer"`
	EditingOrderID int64                     `json:"editing_order_id"`
	Items          []models.OrderItem        `json:"items"`
	Fetched        map[string]models.Product `json:"fetched,omitempty"`
	UpdatedAt      int64                     `json:"updated_at"`
}

// DraftItemInput 품목 추가 입력
type DraftItemInput struct {
	Quantity int
	Unit     string
	Memo     string
}

// DraftItemPatch 품목 부분 수정 입력. nil 필드는 건드리지 않는다
type DraftItemPatch struct {
	Quantity *int
	Unit     *string
	Memo     *string
	Price    *models.Money
}

// NewOrderDraft 빈 작업본 생성
func NewOrderDraft() *OrderDraft {
	return &OrderDraft{
		Items:   make([]models.OrderItem, 0),
		Fetched: make(map[string]models.Product),
	}
}

// FindItem 바코드로 품목을 찾는다. 없으면 nil
func (d *OrderDraft) FindItem(barcode string) *models.OrderItem {
	for i := range d.Items {
		if d.Items[i].Barcode == barcode {
			return &d.Items[i]
		}
	}
	return nil
}

// AddOrUpdateItem 상품을 작업본에 담는다.
//
// 같은 바코드 품목이 있으면 수량을 더하고(합이 0 이하면 제거) 스냅샷을
// 상품의 현재 오버레이로 새로 덮어쓴다. 새 품목의 단가는 행사 여부와
// 무관하게 기준 매입가다. 신규인데 수량이 0 이하면 아무것도 하지 않는다.
func (d *OrderDraft) AddOrUpdateItem(product *models.Product, input DraftItemInput, today time.Time) bool {
	if product == nil || strings.TrimSpace(product.Barcode) == "" {
		return false
	}

	if existing := d.FindItem(product.Barcode); existing != nil {
		existing.Quantity += input.Quantity
		if existing.Quantity <= 0 {
			return d.RemoveItem(product.Barcode)
		}
		applyProductSnapshot(existing, product, today)
		return true
	}

	if input.Quantity <= 0 {
		return false
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = product.Unit
	}
	if unit == "" {
		unit = constants.UnitPiece
	}

	item := models.OrderItem{
		Barcode:     product.Barcode,
		Name:        product.Name,
		Price:       product.CostPrice,
		MasterPrice: product.CostPrice,
		Quantity:    input.Quantity,
		Unit:        unit,
		Memo:        strings.TrimSpace(input.Memo),
		SortOrder:   len(d.Items),
	}
	applyProductSnapshot(&item, product, today)
	d.Items = append(d.Items, item)
	return true
}

// UpdateItem 품목 필드를 직접 수정한다.
// 수량 0 은 삭제를 뜻한다. 단가를 건드리면 수동 수정으로 표시한다.
func (d *OrderDraft) UpdateItem(barcode string, patch DraftItemPatch) bool {
	item := d.FindItem(barcode)
	if item == nil {
		return false
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return d.RemoveItem(barcode)
		}
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		unit := strings.TrimSpace(*patch.Unit)
		if unit != "" {
			item.Unit = unit
		}
	}
	if patch.Memo != nil {
		item.Memo = strings.TrimSpace(*patch.Memo)
	}
	if patch.Price != nil {
		item.Price = *patch.Price
		item.IsModified = true
	}
	return true
}

// RemoveItem 품목 제거
func (d *OrderDraft) RemoveItem(barcode string) bool {
	for i := range d.Items {
		if d.Items[i].Barcode == barcode {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.normalizeSortOrder()
			return true
		}
	}
	return false
}

// Reorder 품목 순서 이동. 잘못된 인덱스는 무시한다
func (d *OrderDraft) Reorder(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(d.Items) {
		return false
	}
	if toIndex < 0 || toIndex >= len(d.Items) {
		return false
	}
	if fromIndex == toIndex {
		return false
	}

	moved := d.Items[fromIndex]
	remaining := make([]models.OrderItem, 0, len(d.Items)-1)
	remaining = append(remaining, d.Items[:fromIndex]...)
	remaining = append(remaining, d.Items[fromIndex+1:]...)

	items := make([]models.OrderItem, 0, len(d.Items))
	items = append(items, remaining[:toIndex]...)
	items = append(items, moved)
	items = append(items, remaining[toIndex:]...)
	d.Items = items
	d.normalizeSortOrder()
	return true
}

// ResetItems 품목 전체 교체. 저장된 발주를 다시 열 때 쓴다
func (d *OrderDraft) ResetItems(items []models.OrderItem) {
	d.Items = make([]models.OrderItem, len(items))
	copy(d.Items, items)
	d.normalizeSortOrder()
}

// RecordFetched 이번 세션에 새로 조회한 상품 사본을 기록한다
func (d *OrderDraft) RecordFetched(product *models.Product) {
	if product == nil || strings.TrimSpace(product.Barcode) == "" {
		return
	}
	if d.Fetched == nil {
		d.Fetched = make(map[string]models.Product)
	}
	d.Fetched[product.Barcode] = *product
}

// FetchedProduct 이번 세션에 조회한 사본을 돌려준다. 없으면 nil
func (d *OrderDraft) FetchedProduct(barcode string) *models.Product {
	if d.Fetched == nil {
		return nil
	}
	product, ok := d.Fetched[barcode]
	if !ok {
		return nil
	}
	return &product
}

// TotalAmount 합계 금액. floor(Σ 단가×수량)
func (d *OrderDraft) TotalAmount() models.Money {
	sum := decimal.Zero
	for _, item := range d.Items {
		sum = sum.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(sum.Floor())
}

// normalizeSortOrder 표시 순서를 0부터 다시 매긴다
func (d *OrderDraft) normalizeSortOrder() {
	for i := range d.Items {
		d.Items[i].SortOrder = i
	}
}
