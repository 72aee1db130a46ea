package models

// Setting 매장 설정 테이블 (키-값 저장)
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`  // 설정 키
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 설정 값
}

// TableName 테이블명 지정
func (Setting) TableName() string {
	return "settings"
}
