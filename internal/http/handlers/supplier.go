package handlers

import (
	"strconv"
	"strings"

	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSuppliers 거래처 목록
func (h *Handler) ListSuppliers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	suppliers, total, err := h.SupplierService.List(service.SupplierListInput{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, msgInternal, err)
		return
	}
	response.SuccessWithPage(c, suppliers, response.BuildPagination(page, pageSize, total))
}

// CreateSupplier 거래처 등록
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req service.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	supplier, err := h.SupplierService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, supplierErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "거래처가 등록되었습니다.", supplier)
}

// UpdateSupplier 거래처 수정
func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	var req service.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	supplier, err := h.SupplierService.Update(uint(id), req)
	if err != nil {
		respondWithMappedError(c, err, supplierErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "거래처가 수정되었습니다.", supplier)
}

// DeleteSupplier 거래처 삭제
func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	if err := h.SupplierService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, supplierErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "거래처가 삭제되었습니다.", nil)
}
