package queue

import (
	"encoding/json"

	"github.com/balju-mate/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogSync 본사 카탈로그 동기화 작업
	TaskCatalogSync = constants.TaskCatalogSync
	// TaskOrderDispatch 발주 전송 작업
	TaskOrderDispatch = constants.TaskOrderDispatch
)

// CatalogSyncPayload 카탈로그 동기화 작업 페이로드
type CatalogSyncPayload struct {
	RequestedBy string `json:"requested_by"` // 요청한 레지스터
	PageSize    int    `json:"page_size"`
}

// OrderDispatchPayload 발주 전송 작업 페이로드
type OrderDispatchPayload struct {
	OrderID int64  `json:"order_id"`
	Method  string `json:"method"` // sms / sheet
}

// NewCatalogSyncTask 카탈로그 동기화 작업 생성
func NewCatalogSyncTask(payload CatalogSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogSync, body), nil
}

// NewOrderDispatchTask 발주 전송 작업 생성
func NewOrderDispatchTask(payload OrderDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDispatch, body), nil
}
