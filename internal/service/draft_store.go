package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/balju-mate/internal/cache"
	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
)

// DraftJournal 작업본 저널 저장소
type DraftJournal interface {
	Load(ctx context.Context, registerID string, dest interface{}) (bool, error)
	Save(ctx context.Context, registerID string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, registerID string) error
}

// NewDraftJournal Redis 가 켜져 있으면 Redis 저널, 아니면 프로세스 내 저널.
// 프로세스 내 저널은 재시작하면 사라지고 다중 인스턴스 간에 공유되지 않는다
func NewDraftJournal() DraftJournal {
	if cache.Enabled() {
		return redisDraftJournal{}
	}
	logger.Warnw("draft_journal_memory_fallback", "reason", "redis_disabled")
	return NewMemoryDraftJournal()
}

type redisDraftJournal struct{}

func (redisDraftJournal) Load(ctx context.Context, registerID string, dest interface{}) (bool, error) {
	return cache.GetDraftJournal(ctx, registerID, dest)
}

func (redisDraftJournal) Save(ctx context.Context, registerID string, value interface{}, ttl time.Duration) error {
	return cache.SetDraftJournal(ctx, registerID, value, ttl)
}

func (redisDraftJournal) Delete(ctx context.Context, registerID string) error {
	return cache.DelDraftJournal(ctx, registerID)
}

// MemoryDraftJournal 프로세스 내 저널.
// Redis 저널과 같은 JSON 직렬화 경로를 거치게 해서 두 구현의 관찰 가능한
// 동작을 일치시킨다
type MemoryDraftJournal struct {
	mu      sync.RWMutex
	entries map[string]memoryDraftEntry
}

type memoryDraftEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryDraftJournal 프로세스 내 저널 생성
func NewMemoryDraftJournal() *MemoryDraftJournal {
	return &MemoryDraftJournal{entries: make(map[string]memoryDraftEntry)}
}

// Load 저널 조회
func (m *MemoryDraftJournal) Load(ctx context.Context, registerID string, dest interface{}) (bool, error) {
	key := normalizeRegisterID(registerID)
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		_ = m.Delete(ctx, registerID)
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Save 저널 기록
func (m *MemoryDraftJournal) Save(_ context.Context, registerID string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryDraftEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[normalizeRegisterID(registerID)] = entry
	m.mu.Unlock()
	return nil
}

// Delete 저널 삭제
func (m *MemoryDraftJournal) Delete(_ context.Context, registerID string) error {
	m.mu.Lock()
	delete(m.entries, normalizeRegisterID(registerID))
	m.mu.Unlock()
	return nil
}

func normalizeRegisterID(registerID string) string {
	id := strings.TrimSpace(registerID)
	if id == "" {
		return constants.DefaultRegisterID
	}
	return id
}
