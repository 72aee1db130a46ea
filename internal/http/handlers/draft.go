package handlers

import (
	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDraft 작성 중인 발주 작업본 조회
func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.DraftService.Load(c.Request.Context(), registerID(c))
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// AddDraftItem 작업본에 품목 담기. 같은 바코드는 수량이 합산된다
func (h *Handler) AddDraftItem(c *gin.Context) {
	var req service.AddDraftItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	draft, err := h.DraftService.AddItem(c.Request.Context(), registerID(c), req)
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// UpdateDraftItem 작업본 품목 수정. 수량 0 은 품목 삭제와 같다
func (h *Handler) UpdateDraftItem(c *gin.Context) {
	var req service.UpdateDraftItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	draft, err := h.DraftService.UpdateItem(c.Request.Context(), registerID(c), c.Param("barcode"), req)
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// RemoveDraftItem 작업본 품목 제거
func (h *Handler) RemoveDraftItem(c *gin.Context) {
	draft, err := h.DraftService.RemoveItem(c.Request.Context(), registerID(c), c.Param("barcode"))
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// ReorderDraft 작업본 품목 순서 이동
func (h *Handler) ReorderDraft(c *gin.Context) {
	var req service.ReorderDraftInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	draft, err := h.DraftService.ReorderItems(c.Request.Context(), registerID(c), req)
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// SetDraftCustomerRequest 거래처 지정 요청
type SetDraftCustomerRequest struct {
	Customer string `json:"customer" binding:"required"`
}

// SetDraftCustomer 작업본 거래처 지정
func (h *Handler) SetDraftCustomer(c *gin.Context) {
	var req SetDraftCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	draft, err := h.DraftService.SetCustomer(c.Request.Context(), registerID(c), req.Customer)
	if err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// DiscardDraft 작업본 폐기
func (h *Handler) DiscardDraft(c *gin.Context) {
	if err := h.DraftService.Discard(c.Request.Context(), registerID(c)); err != nil {
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "작성 중이던 발주를 비웠습니다.", nil)
}

// ReopenDraftRequest 저장된 발주 다시 열기 요청
type ReopenDraftRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

// ReopenDraft 저장된 발주를 작업본으로 다시 연다
func (h *Handler) ReopenDraft(c *gin.Context) {
	var req ReopenDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	draft, err := h.DraftService.Reopen(c.Request.Context(), registerID(c), req.OrderID)
	if err != nil {
		respondWithMappedError(c, err, concatOrderDraftRules(), response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, draft)
}

// FinalizeDraft 작업본을 발주서로 확정 저장한다
func (h *Handler) FinalizeDraft(c *gin.Context) {
	order, err := h.DraftService.Finalize(c.Request.Context(), registerID(c))
	if err != nil {
		respondWithMappedError(c, err, concatOrderDraftRules(), response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "발주서가 저장되었습니다.", order)
}

func concatOrderDraftRules() []mappedHandlerError {
	rules := make([]mappedHandlerError, 0, len(draftErrorRules)+len(orderErrorRules))
	rules = append(rules, draftErrorRules...)
	rules = append(rules, orderErrorRules...)
	return rules
}
