package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier 거래처 테이블
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 기본키
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`        // 거래처명
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`           // 연락처
	Manager   string         `gorm:"type:varchar(50)" json:"manager"`         // 담당자
	Memo      string         `gorm:"type:varchar(500)" json:"memo"`           // 메모
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"`                              // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Supplier) TableName() string {
	return "suppliers"
}
