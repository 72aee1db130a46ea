package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/http/response"
	"github.com/balju-mate/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 상품 목록/검색.
// 포스기 헤더와 검색어가 함께 오면 브릿지까지 찾아보고 결과를 세션 조회분으로
// 남긴다. 그 외에는 로컬 마스터를 페이지 단위로 돌려준다
func (h *Handler) ListProducts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	register := strings.TrimSpace(c.GetHeader(constants.RegisterIDHeader))

	if q != "" && register != "" {
		limit, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		products, err := h.DraftService.Search(c.Request.Context(), register, q, limit)
		if err != nil {
			respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
			return
		}
		response.Success(c, gin.H{"items": products, "rich": true})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		Search:     q,
		Category:   strings.TrimSpace(c.Query("category")),
		Supplier:   strings.TrimSpace(c.Query("supplier")),
		OnSaleOnly: c.Query("on_sale") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, msgInternal, err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 상품 상세
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Param("barcode"))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, product)
}

// CreateProduct 상품 등록
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.ProductCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	product, err := h.ProductService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "상품이 등록되었습니다.", product)
}

// UpdateProduct 상품 수정
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req service.ProductUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	product, err := h.ProductService.Update(c.Param("barcode"), req)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "상품이 수정되었습니다.", product)
}

// DeleteProduct 상품 삭제
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Param("barcode")); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "상품이 삭제되었습니다.", nil)
}

// ScanRequest 바코드 스캔 요청
type ScanRequest struct {
	Barcode  string `json:"barcode" binding:"required"`
	Add      bool   `json:"add"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Memo     string `json:"memo"`
}

// Scan 바코드 스캔 조회. 세션 조회분 → 로컬 마스터 → 브릿지 순으로 찾고,
// add 가 켜져 있으면 찾은 상품을 작업본에 바로 담는다
func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	register := registerID(c)

	product, rich, err := h.DraftService.Scan(c.Request.Context(), register, req.Barcode)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			// 미등록 바코드는 오류가 아니라 피드백 코드로 알린다
			response.Success(c, gin.H{
				"feedback": constants.ScanFeedbackNotFound,
				"barcode":  strings.TrimSpace(req.Barcode),
			})
			return
		}
		respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
		return
	}

	result := gin.H{
		"feedback": constants.ScanFeedbackSuccess,
		"product":  product,
		"rich":     rich,
	}

	if req.Add {
		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		draft, err := h.DraftService.AddItem(c.Request.Context(), register, service.AddDraftItemInput{
			Barcode:  req.Barcode,
			Quantity: quantity,
			Unit:     req.Unit,
			Memo:     req.Memo,
		})
		if err != nil {
			respondWithMappedError(c, err, draftErrorRules, response.CodeInternal, msgInternal)
			return
		}
		result["draft"] = draft
	}

	response.Success(c, result)
}

// StartCatalogSync 본사 카탈로그 동기화 시작
func (h *Handler) StartCatalogSync(c *gin.Context) {
	info, err := h.CatalogSyncService.Start(c.Request.Context(), registerID(c))
	if err != nil {
		respondWithMappedError(c, err, catalogSyncErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "카탈로그 동기화를 시작했습니다.", info)
}

// CatalogSyncStatus 마지막 동기화 상태
func (h *Handler) CatalogSyncStatus(c *gin.Context) {
	info, err := h.CatalogSyncService.Status(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogSyncErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, info)
}
