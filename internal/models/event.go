package models

import (
	"time"
)

// EventItem 행사(프로모션) 헤더 테이블
//
// 상태 코드: '0' 대기, '1' 적용중, '2' 종료. 종료('2')된 행사는 다시 적용할 수 없다.
// ItemCount/AvgMgRate 는 'D' 가 아닌 라인아이템 기준 파생값이다.
type EventItem struct {
	Junno     string    `gorm:"primarykey;type:varchar(20)" json:"junno"`      // 행사 전표 번호 (날짜 접두 일련번호)
	SaleName  string    `gorm:"not null" json:"salename"`                      // 행사명
	StartDay  string    `gorm:"type:varchar(10);index" json:"startday"`        // 시작일 (YYYY-MM-DD)
	EndDay    string    `gorm:"type:varchar(10);index" json:"endday"`          // 종료일 (YYYY-MM-DD)
	IsAppl    string    `gorm:"type:varchar(1);not null;default:'0';index" json:"isappl"` // 상태 코드
	ItemCount int       `gorm:"not null;default:0" json:"itemcount"`           // 품목 수 (파생)
	AvgMgRate int       `gorm:"not null;default:0" json:"avgmgrate"`           // 평균 마진율 % (파생)
	CreatedAt time.Time `gorm:"index" json:"created_at"`                       // 생성 시각
	UpdatedAt time.Time `json:"updated_at"`                                    // 수정 시각

	Items []EventLineItem `gorm:"foreignKey:Junno;references:Junno" json:"items,omitempty"` // 행사 품목
}

// TableName 테이블명 지정
func (EventItem) TableName() string {
	return "event_items"
}
