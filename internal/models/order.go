package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 발주 테이블
//
// ID 는 생성 시각 기준 Unix 밀리초. 완료 처리(CompletionDetails 기록) 이후에는
// 품목이 불변이며, 완료 취소는 마커만 지울 뿐 품목 상태를 복원하지 않는다.
type Order struct {
	ID                int64          `gorm:"primarykey;autoIncrement:false" json:"id"`           // 발주 번호 (시각 기반)
	Customer          string         `gorm:"not null;index" json:"customer"`                     // 거래처
	Total             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 합계 (floor(Σ 단가×수량))
	ItemCount         int            `gorm:"not null;default:0" json:"item_count"`               // 품목 수
	OrderDate         string         `gorm:"type:varchar(10);index" json:"order_date"`           // 발주일 (YYYY-MM-DD)
	CompletionDetails JSON           `gorm:"type:json" json:"completion_details,omitempty"`      // 완료 처리 내역 (method/completed_at/message)
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                            // 생성 시각
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                            // 수정 시각
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                     // 소프트 삭제 시각

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 발주 품목
}

// TableName 테이블명 지정
func (Order) TableName() string {
	return "orders"
}

// IsCompleted 완료 처리 여부
func (o *Order) IsCompleted() bool {
	return len(o.CompletionDetails) > 0
}
