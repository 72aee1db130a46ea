package rowquery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config 조회 브리지 연결 설정
type Config struct {
	URL     string        // 브리지 엔드포인트 주소
	APIKey  string        // 인증 키 (비어 있으면 헤더 생략)
	Timeout time.Duration // 요청 타임아웃
}

func (c *Config) normalize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// HTTPExecutor HTTP 기반 Executor 구현체
type HTTPExecutor struct {
	cfg    Config
	client *http.Client
}

// NewHTTPExecutor HTTP 브리지 실행기 생성
func NewHTTPExecutor(cfg Config) *HTTPExecutor {
	cfg.normalize()
	return &HTTPExecutor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Query 이름 붙은 질의를 실행하고 원시 행 목록을 반환한다
func (e *HTTPExecutor) Query(ctx context.Context, name string, params map[string]interface{}) ([]Row, error) {
	if e.cfg.URL == "" {
		return nil, ErrBridgeDisabled
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty query name", ErrRequestFailed)
	}

	payload := map[string]interface{}{
		"query": name,
	}
	if len(params) > 0 {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL+"/query", strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var envelope struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
		Data       struct {
			Rows []Row `json:"rows"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBytes, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if envelope.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, envelope.Msg)
	}
	return envelope.Data.Rows, nil
}
