package service

import "errors"

// 서비스 공통 오류. 핸들러 계층에서 HTTP 상태 코드와 안내 문구로 변환된다.
var (
	ErrProductInvalid      = errors.New("product payload invalid")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductExists       = errors.New("product already exists")
	ErrProductFetchFailed  = errors.New("product fetch failed")
	ErrProductCreateFailed = errors.New("product create failed")
	ErrProductUpdateFailed = errors.New("product update failed")
	ErrProductDeleteFailed = errors.New("product delete failed")

	ErrLookupUnavailable = errors.New("catalog lookup unavailable")

	ErrDraftInvalid          = errors.New("draft payload invalid")
	ErrDraftNotFound         = errors.New("draft not found")
	ErrDraftStoreUnavailable = errors.New("draft store unavailable")
	ErrDraftEmpty            = errors.New("draft has no items")
	ErrDraftCustomerRequired = errors.New("draft customer required")

	ErrOrderInvalid      = errors.New("order payload invalid")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderCompleted    = errors.New("order already completed")
	ErrOrderNotCompleted = errors.New("order not completed")
	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderUpdateFailed = errors.New("order update failed")
	ErrOrderDeleteFailed = errors.New("order delete failed")

	ErrEventInvalid      = errors.New("event payload invalid")
	ErrEventNotFound     = errors.New("event not found")
	ErrEventEnded        = errors.New("event already ended")
	ErrEventActive       = errors.New("event still active")
	ErrEventLineNotFound = errors.New("event line item not found")
	ErrEventCreateFailed = errors.New("event create failed")
	ErrEventUpdateFailed = errors.New("event update failed")
	ErrEventDeleteFailed = errors.New("event delete failed")

	ErrSupplierInvalid      = errors.New("supplier payload invalid")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrSupplierExists       = errors.New("supplier already exists")
	ErrSupplierCreateFailed = errors.New("supplier create failed")
	ErrSupplierUpdateFailed = errors.New("supplier update failed")
	ErrSupplierDeleteFailed = errors.New("supplier delete failed")

	ErrCatalogSyncRunning     = errors.New("catalog sync already running")
	ErrCatalogSyncUnavailable = errors.New("catalog sync unavailable")

	ErrSettingInvalid      = errors.New("setting payload invalid")
	ErrSettingUpdateFailed = errors.New("setting update failed")

	ErrDispatchFailed = errors.New("order dispatch failed")
)
