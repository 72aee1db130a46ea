package handlers

import (
	"errors"

	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 오류 응답을 내려보내고 원인 오류가 있으면 기록한다
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// mappedHandlerError 서비스 오류를 응답 코드와 안내 문구로 잇는 규칙
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

// normalizePagination 페이지 매개변수 정규화
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

const (
	msgBadRequest = "요청 형식이 올바르지 않습니다."
	msgInternal   = "처리 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
)

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, msg: "상품 정보가 올바르지 않습니다. 바코드·상품명·분류를 확인해 주세요."},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "상품을 찾을 수 없습니다."},
	{target: service.ErrProductExists, code: response.CodeConflict, msg: "이미 등록된 바코드입니다."},
}

var draftErrorRules = []mappedHandlerError{
	{target: service.ErrDraftInvalid, code: response.CodeBadRequest, msg: "발주 품목 입력이 올바르지 않습니다."},
	{target: service.ErrDraftNotFound, code: response.CodeNotFound, msg: "작성 중인 발주가 없습니다."},
	{target: service.ErrDraftStoreUnavailable, code: response.CodeInternal, msg: "임시 저장소에 접근할 수 없습니다. 잠시 후 다시 시도해 주세요."},
	{target: service.ErrDraftEmpty, code: response.CodeBadRequest, msg: "발주 품목이 비어 있습니다."},
	{target: service.ErrDraftCustomerRequired, code: response.CodeBadRequest, msg: "거래처를 먼저 지정해 주세요."},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "상품을 찾을 수 없습니다."},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderInvalid, code: response.CodeBadRequest, msg: "발주 요청이 올바르지 않습니다."},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "발주를 찾을 수 없습니다."},
	{target: service.ErrOrderCompleted, code: response.CodeConflict, msg: "이미 완료 처리된 발주입니다. 완료를 취소한 뒤 다시 시도해 주세요."},
	{target: service.ErrOrderNotCompleted, code: response.CodeConflict, msg: "완료 처리되지 않은 발주입니다."},
}

var eventErrorRules = []mappedHandlerError{
	{target: service.ErrEventInvalid, code: response.CodeBadRequest, msg: "행사 정보가 올바르지 않습니다. 행사명과 기간을 확인해 주세요."},
	{target: service.ErrEventNotFound, code: response.CodeNotFound, msg: "행사를 찾을 수 없습니다."},
	{target: service.ErrEventEnded, code: response.CodeConflict, msg: "이미 종료된 행사입니다."},
	{target: service.ErrEventActive, code: response.CodeConflict, msg: "적용중인 행사입니다. 먼저 중지해 주세요."},
	{target: service.ErrEventLineNotFound, code: response.CodeNotFound, msg: "행사 품목을 찾을 수 없습니다."},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "상품을 찾을 수 없습니다."},
}

var supplierErrorRules = []mappedHandlerError{
	{target: service.ErrSupplierInvalid, code: response.CodeBadRequest, msg: "거래처 정보가 올바르지 않습니다."},
	{target: service.ErrSupplierNotFound, code: response.CodeNotFound, msg: "거래처를 찾을 수 없습니다."},
	{target: service.ErrSupplierExists, code: response.CodeConflict, msg: "이미 등록된 거래처명입니다."},
}

var catalogSyncErrorRules = []mappedHandlerError{
	{target: service.ErrCatalogSyncRunning, code: response.CodeConflict, msg: "카탈로그 동기화가 이미 진행 중입니다."},
	{target: service.ErrCatalogSyncUnavailable, code: response.CodeInternal, msg: "본사 카탈로그에 접속할 수 없습니다. 브리지 설정을 확인해 주세요."},
}

var settingErrorRules = []mappedHandlerError{
	{target: service.ErrSettingInvalid, code: response.CodeBadRequest, msg: "설정 값이 올바르지 않습니다."},
}
