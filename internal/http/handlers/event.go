package handlers

import (
	"strconv"
	"strings"

	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateEvent 행사 생성. 생성 직후에는 대기 상태다
func (h *Handler) CreateEvent(c *gin.Context) {
	var req service.CreateEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	event, err := h.EventService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "행사가 등록되었습니다.", event)
}

// ListEvents 행사 목록. 상태와 행사명으로 거를 수 있다
func (h *Handler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	events, total, err := h.EventService.List(service.EventListInput{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, msgInternal, err)
		return
	}
	response.SuccessWithPage(c, events, response.BuildPagination(page, pageSize, total))
}

// GetEvent 행사 상세 (품목 포함)
func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.EventService.Get(c.Param("junno"))
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, event)
}

// ApplyEvent 행사 적용. 품목이 가리키는 상품에 행사가가 걸린다
func (h *Handler) ApplyEvent(c *gin.Context) {
	result, err := h.EventService.Apply(c.Param("junno"))
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// StopEvent 행사 중지. 상품 가격이 복원된다
func (h *Handler) StopEvent(c *gin.Context) {
	result, err := h.EventService.Stop(c.Param("junno"))
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// EndEvent 행사 종료. 종료하면 다시 적용할 수 없다
func (h *Handler) EndEvent(c *gin.Context) {
	result, err := h.EventService.End(c.Param("junno"))
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// DeleteEvent 행사 삭제. 적용중인 행사는 중지 후에만 지울 수 있다
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.EventService.Delete(c.Param("junno")); err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "행사가 삭제되었습니다.", nil)
}

// ChangeEventPeriod 행사 기간 변경. 새 기간과 오늘을 비교해 상태도 같이 맞춘다
func (h *Handler) ChangeEventPeriod(c *gin.Context) {
	var req service.ChangeEventPeriodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	result, err := h.EventService.ChangePeriod(c.Param("junno"), req)
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// UpsertEventItem 행사 품목 등록/수정. 기간이 겹치는 다른 행사에 이미 있는
// 상품이면 경고가 함께 내려간다
func (h *Handler) UpsertEventItem(c *gin.Context) {
	var req service.UpsertEventItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	result, err := h.EventService.UpsertItem(c.Param("junno"), req)
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// RemoveEventItem 행사 품목 제외. 적용중이던 품목은 상품 가격을 복원한다
func (h *Handler) RemoveEventItem(c *gin.Context) {
	result, err := h.EventService.RemoveItem(c.Param("junno"), c.Param("barcode"))
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}
