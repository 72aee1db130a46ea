package rowquery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPExecutorQuery(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status_code": 200,
			"msg":         "success",
			"data": map[string]interface{}{
				"rows": []map[string]interface{}{
					{"바코드": "8801111111111", "상품명": "새우깡"},
				},
			},
		})
	}))
	defer server.Close()

	executor := NewHTTPExecutor(Config{URL: server.URL, APIKey: "secret", Timeout: 2 * time.Second})
	rows, err := executor.Query(context.Background(), "product_by_barcode", map[string]interface{}{"barcode": "8801111111111"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows len want 1 got %d", len(rows))
	}
	if rows[0]["바코드"] != "8801111111111" {
		t.Fatalf("row barcode want 8801111111111 got %v", rows[0]["바코드"])
	}

	if gotPath != "/query" {
		t.Fatalf("request path want /query got %s", gotPath)
	}
	if gotAPIKey != "secret" {
		t.Fatalf("api key header want secret got %s", gotAPIKey)
	}
	if gotBody["query"] != "product_by_barcode" {
		t.Fatalf("body query want product_by_barcode got %v", gotBody["query"])
	}
}

func TestHTTPExecutorRejectsEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status_code": 500,
			"msg":         "조회 실패",
		})
	}))
	defer server.Close()

	executor := NewHTTPExecutor(Config{URL: server.URL})
	_, err := executor.Query(context.Background(), "product_search", nil)
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("want ErrResponseInvalid got %v", err)
	}
}

func TestHTTPExecutorRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	executor := NewHTTPExecutor(Config{URL: server.URL})
	_, err := executor.Query(context.Background(), "product_search", nil)
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("want ErrRequestFailed got %v", err)
	}
}

func TestHTTPExecutorEmptyURLIsDisabled(t *testing.T) {
	executor := NewHTTPExecutor(Config{})
	_, err := executor.Query(context.Background(), "product_search", nil)
	if !errors.Is(err, ErrBridgeDisabled) {
		t.Fatalf("want ErrBridgeDisabled got %v", err)
	}
}

func TestDisabledExecutor(t *testing.T) {
	executor := NewDisabledExecutor()
	_, err := executor.Query(context.Background(), "catalog_page", nil)
	if !errors.Is(err, ErrBridgeDisabled) {
		t.Fatalf("want ErrBridgeDisabled got %v", err)
	}

	_, err = FetchProductByBarcode(context.Background(), executor, "8801111111111")
	if !errors.Is(err, ErrBridgeDisabled) {
		t.Fatalf("fetch want ErrBridgeDisabled got %v", err)
	}
}
