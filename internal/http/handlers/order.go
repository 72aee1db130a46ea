package handlers

import (
	"strconv"
	"strings"

	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
)

func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return 0, false
	}
	return id, true
}

// ListOrders 발주 목록. 날짜 범위와 거래처로 거를 수 있다
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(service.OrderListInput{
		Page:     page,
		PageSize: pageSize,
		Customer: strings.TrimSpace(c.Query("customer")),
		DateFrom: strings.TrimSpace(c.Query("date_from")),
		DateTo:   strings.TrimSpace(c.Query("date_to")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, msgInternal, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 발주 상세 (품목 포함)
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 발주 삭제. 완료된 발주는 완료 취소 후에만 지울 수 있다
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	if err := h.OrderService.Delete(id); err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "발주가 삭제되었습니다.", nil)
}

// CompleteOrder 발주 완료 처리. 전송 문안 작성은 워커가 이어받는다
func (h *Handler) CompleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req service.CompleteOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	order, err := h.OrderService.Complete(id, req)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "발주가 완료 처리되었습니다.", order)
}

// UncompleteOrder 발주 완료 취소
func (h *Handler) UncompleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Uncomplete(id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "발주 완료가 취소되었습니다.", order)
}

// OrderDispatchPreview 발주 전송 문안 미리보기
func (h *Handler) OrderDispatchPreview(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	message, err := h.OrderService.DispatchMessage(id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, gin.H{"message": message})
}
