package models

import (
	"time"
)

// EventLineItem 행사 품목 테이블
//
// (junno, barcode) 가 유일. IsAppl 은 헤더와 독립적으로 품목 단위 토글이 가능하며
// 'D' 는 적용중인 행사에서 개별 제외된 최종 상태다.
type EventLineItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                                      // 기본키
	Junno      string    `gorm:"uniqueIndex:idx_event_line_barcode;type:varchar(20);not null" json:"junno"` // 행사 전표 번호
	Barcode    string    `gorm:"uniqueIndex:idx_event_line_barcode;type:varchar(30);not null;index" json:"barcode"` // 바코드
	Seq        int       `gorm:"not null;default:0" json:"seq"`                                             // 행사 내 품목 순번
	Name       string    `gorm:"not null" json:"name"`                                                      // 상품명
	SaleMoney0 Money     `gorm:"type:decimal(20,2);not null;default:0" json:"salemoney0"`                   // 행사 매입가
	SaleMoney1 Money     `gorm:"type:decimal(20,2);not null;default:0" json:"salemoney1"`                   // 행사 판매가
	OrgMoney1  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"orgmoney1"`                    // 종료 시 복원할 판매가
	SaleCount  int       `gorm:"not null;default:0" json:"salecount"`                                       // 품목 마진율 % (floor)
	IsAppl     string    `gorm:"type:varchar(1);not null;default:'0'" json:"isappl"`                        // 상태 코드 ('0'/'1'/'D')
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                   // 생성 시각
	UpdatedAt  time.Time `json:"updated_at"`                                                                // 수정 시각
}

// TableName 테이블명 지정
func (EventLineItem) TableName() string {
	return "event_line_items"
}
