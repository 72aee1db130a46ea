package models

import (
	"time"
)

// OrderItem 발주 품목 테이블
//
// 한 발주 안에서 바코드는 유일하다. 같은 바코드를 다시 담으면 새 행이 아니라
// 기존 행의 수량이 증가한다. 행사 스냅샷 그룹(EventPrice/SalePrice/SaleName/
// SaleStartDate/SaleEndDate)은 전부 채워지거나 전부 비는 단위로만 다룬다.
type OrderItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                                       // 기본키
	OrderID       int64     `gorm:"uniqueIndex:idx_order_item_barcode;not null" json:"order_id"`                // 발주 번호
	Barcode       string    `gorm:"uniqueIndex:idx_order_item_barcode;type:varchar(30);not null" json:"barcode"` // 바코드
	Name          string    `gorm:"not null" json:"name"`                                                       // 상품명
	Price         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                         // 확정 단가 (동결)
	MasterPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"master_price"`                  // 마지막 대사 시점의 기준 매입가
	Quantity      int       `gorm:"not null" json:"quantity"`                                                   // 수량
	Unit          string    `gorm:"type:varchar(10);not null;default:'개'" json:"unit"`                          // 단위 (개/박스)
	Memo          string    `gorm:"type:varchar(500)" json:"memo"`                                              // 메모
	IsModified    bool      `gorm:"not null;default:false" json:"is_modified"`                                  // 단가 수동 수정 여부
	SortOrder     int       `gorm:"not null;default:0;index" json:"sort_order"`                                 // 표시 순서
	EventPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"event_price"`                   // 스냅샷: 행사 매입가
	SalePrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"sale_price"`                    // 스냅샷: 행사 판매가
	SaleName      string    `gorm:"type:varchar(100)" json:"sale_name"`                                         // 스냅샷: 행사명
	SaleStartDate string    `gorm:"type:varchar(10)" json:"sale_start_date"`                                    // 스냅샷: 행사 시작일
	SaleEndDate   string    `gorm:"type:varchar(10)" json:"sale_end_date"`                                      // 스냅샷: 행사 종료일
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                                    // 생성 시각
	UpdatedAt     time.Time `json:"updated_at"`                                                                 // 수정 시각
}

// TableName 테이블명 지정
func (OrderItem) TableName() string {
	return "order_items"
}

// HasEventSnapshot 행사 스냅샷 그룹 보유 여부
func (it *OrderItem) HasEventSnapshot() bool {
	return it.SaleEndDate != "" || it.EventPrice.IsPositive()
}

// ClearEventSnapshot 행사 스냅샷 그룹 전체 초기화
func (it *OrderItem) ClearEventSnapshot() {
	it.EventPrice = Money{}
	it.SalePrice = Money{}
	it.SaleName = ""
	it.SaleStartDate = ""
	it.SaleEndDate = ""
}
