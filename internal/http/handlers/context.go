package handlers

import (
	"strings"

	"github.com/balju-mate/internal/constants"

	"github.com/gin-gonic/gin"
)

// registerID 요청을 보낸 포스기 식별자. 헤더가 비어 있으면 기본 포스기로 본다
func registerID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(constants.RegisterIDHeader))
	if id == "" {
		return constants.DefaultRegisterID
	}
	return id
}
