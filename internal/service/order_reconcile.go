package service

import (
	"time"

	"github.com/balju-mate/internal/models"
)

// snapshotSource 확정 대사에 사용한 상품 정보의 출처
type snapshotSource string

const (
	// snapshotSourceMiss 어디에서도 상품을 찾지 못함. 품목은 그대로 둔다
	snapshotSourceMiss snapshotSource = "miss"
	// snapshotSourceLocal 로컬 상품 마스터 사본. 기간 재평가 없이 베낀다
	snapshotSourceLocal snapshotSource = "local"
	// snapshotSourceRich 세션 조회분 또는 브릿지 실시간 조회. 전부 재계산한다
	snapshotSourceRich snapshotSource = "rich"
)

// applyProductSnapshot 상품의 현재 행사 오버레이를 품목 스냅샷 그룹에 옮긴다.
// 판매 기간이 오늘 유효하지 않으면 그룹 전체를 비운다. 부분 복사는 없다.
func applyProductSnapshot(item *models.OrderItem, product *models.Product, today time.Time) {
	if IsSaleActiveOn(product.SaleStartDate, product.SaleEndDate, today) {
		item.EventPrice = product.EventCostPrice
		item.SalePrice = product.SalePrice
		item.SaleName = product.SaleName
		item.SaleStartDate = product.SaleStartDate
		item.SaleEndDate = product.SaleEndDate
		return
	}
	item.ClearEventSnapshot()
}

// resolveWithRichCopy 실시간 사본으로 품목을 대사한다.
//
// 스냅샷은 오버레이와 판매 기간으로 다시 계산하고 기준 매입가를 갱신한다.
// 단가는 수동 수정 품목이면 지키고, 행사가 유효하고 행사 매입가가 양수면
// 행사 매입가로, 그 외에는 기준 매입가로 되돌린다.
func resolveWithRichCopy(item *models.OrderItem, product *models.Product, today time.Time) {
	applyProductSnapshot(item, product, today)
	item.MasterPrice = product.CostPrice

	if item.IsModified {
		return
	}
	if IsSaleActiveOn(product.SaleStartDate, product.SaleEndDate, today) && product.EventCostPrice.IsPositive() {
		item.Price = product.EventCostPrice
		return
	}
	item.Price = product.CostPrice
}

// resolveWithLocalCopy 로컬 마스터 사본으로 품목을 대사한다.
//
// 로컬 사본은 마지막 동기화 시점의 값이라 행사 정보를 믿을 수 없다.
// 담을 때 잡아 둔 품목 스냅샷은 필드 하나도 건드리지 않고 그대로 두고
// 기준 매입가만 갱신한다. 단가는 수동 수정 품목이면 지키고, 스냅샷에
// 행사 매입가가 남아 있으면 동결된 기존 단가를 유지하며, 행사 품목이
// 아니었을 때에만 갱신된 기준 매입가로 되돌린다.
func resolveWithLocalCopy(item *models.OrderItem, product *models.Product) {
	item.MasterPrice = product.CostPrice

	if item.IsModified {
		return
	}
	if item.EventPrice.IsPositive() {
		return
	}
	item.Price = product.CostPrice
}
