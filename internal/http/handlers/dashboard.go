package handlers

import (
	"strconv"

	"github.com/balju-mate/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Dashboard 오늘의 발주 현황 요약
func (h *Handler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	summary, err := h.DashboardService.Summary(c.Request.Context(), days)
	if err != nil {
		respondError(c, response.CodeInternal, msgInternal, err)
		return
	}
	response.Success(c, summary)
}
