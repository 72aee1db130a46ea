package rowquery

import (
	"context"
	"errors"
)

var (
	ErrBridgeDisabled  = errors.New("rowquery bridge disabled")
	ErrRequestFailed   = errors.New("rowquery request failed")
	ErrResponseInvalid = errors.New("rowquery response invalid")
)

// Row 원격 조회 결과 한 행. 컬럼 별칭이 아직 정규화되지 않은 원시 키-값 묶음이다.
type Row map[string]interface{}

// Executor 본사 POS 조회 브리지 인터페이스.
// 이름 붙은 질의와 파라미터를 받아 행 목록을 돌려준다. 원격 저장소가
// SQL 인지 REST 인지는 호출자가 알 필요가 없다.
type Executor interface {
	Query(ctx context.Context, name string, params map[string]interface{}) ([]Row, error)
}

// disabledExecutor 브리지 비활성화 상태 구현. 모든 질의가 ErrBridgeDisabled 를 반환한다.
type disabledExecutor struct{}

func (disabledExecutor) Query(ctx context.Context, name string, params map[string]interface{}) ([]Row, error) {
	return nil, ErrBridgeDisabled
}

// NewDisabledExecutor 비활성화 구현 생성
func NewDisabledExecutor() Executor {
	return disabledExecutor{}
}
