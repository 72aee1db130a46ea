package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
)

const catalogSyncInfoTTL = 7 * 24 * time.Hour

// CatalogSyncInfo 카탈로그 동기화 진행 상태 스냅샷
// 타임스탬프는 Unix 초, 0 은 미설정
// 서버측 Redis 캐시 전용 구조
type CatalogSyncInfo struct {
	Status     string `json:"status"` // queued / running / done / failed
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
	Pages      int    `json:"pages"`
	Upserted   int    `json:"upserted"`
	Error      string `json:"error,omitempty"`
}

func draftJournalKey(registerID string) string {
	id := strings.TrimSpace(registerID)
	if id == "" {
		id = constants.DefaultRegisterID
	}
	return fmt.Sprintf("%s:%s", constants.CacheKeyDraftPrefix, id)
}

// GetDraftJournal 레지스터의 발주 작업본 저널 조회
func GetDraftJournal(ctx context.Context, registerID string, dest interface{}) (bool, error) {
	return GetJSON(ctx, draftJournalKey(registerID), dest)
}

// SetDraftJournal 레지스터의 발주 작업본 저널 기록
func SetDraftJournal(ctx context.Context, registerID string, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, draftJournalKey(registerID), value, ttl)
}

// DelDraftJournal 레지스터의 발주 작업본 저널 삭제
func DelDraftJournal(ctx context.Context, registerID string) error {
	return Del(ctx, draftJournalKey(registerID))
}

// GetCatalogSyncInfo 카탈로그 동기화 상태 조회
func GetCatalogSyncInfo(ctx context.Context) (*CatalogSyncInfo, bool, error) {
	var info CatalogSyncInfo
	hit, err := GetJSON(ctx, constants.CacheKeyCatalogSyncInfo, &info)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &info, true, nil
}

// SetCatalogSyncInfo 카탈로그 동기화 상태 기록
func SetCatalogSyncInfo(ctx context.Context, info *CatalogSyncInfo) error {
	if info == nil {
		return nil
	}
	return SetJSON(ctx, constants.CacheKeyCatalogSyncInfo, info, catalogSyncInfoTTL)
}
