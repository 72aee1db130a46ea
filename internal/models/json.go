package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 타입 정의, 구조가 자유로운 값 저장용
type JSON map[string]interface{}

// Value driver.Valuer 인터페이스 구현
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan sql.Scanner 인터페이스 구현
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}
