package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 상품 마스터 테이블
//
// 행사 오버레이 필드(EventCostPrice/SalePrice/SaleName/SaleStartDate/SaleEndDate)는
// 행사 라이프사이클 상태 전이에 의해 외부에서 갱신되는 라이브 값이다.
// SaleStartDate <= 오늘 <= SaleEndDate 범위를 벗어나면 의미가 없으므로
// 반드시 판매 기간 평가를 거친 뒤에만 신뢰해야 한다.
type Product struct {
	Barcode        string         `gorm:"primarykey;type:varchar(30)" json:"barcode"`                   // 바코드 (기본키)
	Name           string         `gorm:"not null;index" json:"name"`                                   // 상품명
	Category       string         `gorm:"type:varchar(50);index" json:"category"`                       // 분류
	CostPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`      // 매입가 (기준가)
	SellingPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"selling_price"`   // 판매가 (현재 유효가)
	Unit           string         `gorm:"type:varchar(10);not null;default:'개'" json:"unit"`            // 기본 단위
	Supplier       string         `gorm:"type:varchar(100);index" json:"supplier"`                      // 거래처
	Memo           string         `gorm:"type:varchar(500)" json:"memo"`                                // 메모
	EventCostPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"event_cost_price"` // 행사 매입가 (오버레이)
	SalePrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"sale_price"`      // 행사 판매가 (오버레이)
	SaleName       string         `gorm:"type:varchar(100)" json:"sale_name"`                           // 행사명 (오버레이)
	SaleStartDate  string         `gorm:"type:varchar(10)" json:"sale_start_date"`                      // 행사 시작일 (오버레이)
	SaleEndDate    string         `gorm:"type:varchar(10);index" json:"sale_end_date"`                  // 행사 종료일 (오버레이)
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 생성 시각
	UpdatedAt      time.Time      `json:"updated_at"`                                                   // 수정 시각
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Product) TableName() string {
	return "products"
}

// HasOverlay 행사 오버레이 값이 채워져 있는지 반환 (기간 유효성 판단은 하지 않음)
func (p *Product) HasOverlay() bool {
	return p.SaleEndDate != "" || p.EventCostPrice.IsPositive() || p.SalePrice.IsPositive()
}

// ClearOverlay 행사 오버레이 전체 초기화
func (p *Product) ClearOverlay() {
	p.EventCostPrice = Money{}
	p.SalePrice = Money{}
	p.SaleName = ""
	p.SaleStartDate = ""
	p.SaleEndDate = ""
}
