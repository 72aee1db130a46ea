package handlers

import "github.com/balju-mate/internal/provider"

// Handler 매장 API 처리기 입구.
// 단일 매장 직원용 API 라서 관리/공개 구분 없이 한 덩어리다.
type Handler struct {
	*provider.Container
}

// New 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
