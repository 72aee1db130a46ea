package constants

// 행사(이벤트) 상태 코드 상수
const (
	EventStatusWaiting = "0" // 대기
	EventStatusActive  = "1" // 적용중
	EventStatusEnded   = "2" // 종료 (헤더 전용)
	EventItemRemoved   = "D" // 품목 제외 (라인아이템 전용, 최종 상태)
)

// 발주 품목 단위 상수
const (
	UnitPiece = "개"
	UnitBox   = "박스"
)

// 발주 전송(완료 처리) 방식 상수
const (
	CompletionMethodSMS   = "sms"
	CompletionMethodSheet = "sheet"
)

// 날짜 형식 상수
const (
	DateLayout      = "2006-01-02"
	JunnoDateLayout = "20060102"
)

// 기본 시간대 상수
const (
	DefaultTimezone = "Asia/Seoul"
)

// 포스기(레지스터) 상수
const (
	RegisterIDHeader  = "X-Register-ID"
	DefaultRegisterID = "main"
)

// 원격 조회 브리지 쿼리 이름 상수
const (
	QueryProductByBarcode = "product_by_barcode"
	QueryProductSearch    = "product_search"
	QueryCatalogPage      = "catalog_page"
)

// 스캔 피드백 코드 상수
const (
	ScanFeedbackSuccess  = "success"
	ScanFeedbackNotFound = "not_found"
)

// 큐 상수
const (
	QueueDefault      = "default"
	QueueCritical     = "critical"
	TaskCatalogSync   = "catalog:sync"
	TaskOrderDispatch = "order:dispatch"
)

// 캐시 기본 설정 상수
const (
	RedisPrefixDefault = "bm"
)

// 캐시 키 상수
const (
	CacheKeyDraftPrefix     = "draft"
	CacheKeyCatalogSyncInfo = "catalog:sync_info"
)

// 설정 키 상수
const (
	SettingKeyStoreConfig       = "store_config"
	SettingFieldStoreName       = "store_name"
	SettingFieldDispatchPhone   = "dispatch_phone"
	SettingFieldDefaultCustomer = "default_customer"
)
