package handlers

import (
	"github.com/balju-mate/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStoreSettings 매장 설정 조회
func (h *Handler) GetStoreSettings(c *gin.Context) {
	cfg, err := h.SettingService.GetStoreConfig()
	if err != nil {
		respondWithMappedError(c, err, settingErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.Success(c, cfg)
}

// UpdateStoreSettings 매장 설정 저장. 정해진 필드만 받아들인다
func (h *Handler) UpdateStoreSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, err)
		return
	}
	cfg, err := h.SettingService.UpdateStoreConfig(req)
	if err != nil {
		respondWithMappedError(c, err, settingErrorRules, response.CodeInternal, msgInternal)
		return
	}
	response.SuccessWithMsg(c, "매장 설정이 저장되었습니다.", cfg)
}
