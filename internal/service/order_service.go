package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/queue"
	"github.com/balju-mate/internal/repository"

	"gorm.io/gorm"
)

// OrderService 확정된 발주 서비스
type OrderService struct {
	orderRepo      repository.OrderRepository
	settingService *SettingService
	queueClient    *queue.Client
	location       *time.Location
}

// OrderListInput 발주 목록 조회 입력
type OrderListInput struct {
	Page     int
	PageSize int
	Customer string
	DateFrom string
	DateTo   string
}

// CompleteOrderInput 발주 완료 처리 입력
type CompleteOrderInput struct {
	Method  string `json:"method" binding:"required"`
	Message string `json:"message"`
}

// NewOrderService 발주 서비스 생성
func NewOrderService(
	orderRepo repository.OrderRepository,
	settingService *SettingService,
	queueClient *queue.Client,
	location *time.Location,
) *OrderService {
	if location == nil {
		location = time.Local
	}
	return &OrderService{
		orderRepo:      orderRepo,
		settingService: settingService,
		queueClient:    queueClient,
		location:       location,
	}
}

// Get 발주 상세 조회
func (s *OrderService) Get(id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, ErrOrderInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		logger.Errorw("order_get_failed", "order_id", id, "error", err)
		return nil, ErrOrderNotFound
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 발주 목록 조회
func (s *OrderService) List(input OrderListInput) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Customer: strings.TrimSpace(input.Customer),
		DateFrom: strings.TrimSpace(input.DateFrom),
		DateTo:   strings.TrimSpace(input.DateTo),
	})
}

// Delete 발주 삭제. 완료된 발주는 먼저 완료를 취소해야 지울 수 있다
func (s *OrderService) Delete(id int64) error {
	if id <= 0 {
		return ErrOrderInvalid
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		order, err := repo.GetByID(id)
		if err != nil {
			logger.Errorw("order_delete_lookup_failed", "order_id", id, "error", err)
			return ErrOrderDeleteFailed
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.IsCompleted() {
			return ErrOrderCompleted
		}
		if err := repo.Delete(id); err != nil {
			logger.Errorw("order_delete_failed", "order_id", id, "error", err)
			return ErrOrderDeleteFailed
		}
		logger.Infow("order_deleted", "order_id", id, "customer", order.Customer)
		return nil
	})
}

// Complete 발주를 완료 처리하고 전송 작업을 건다.
// 완료된 발주는 품목이 불변이 된다
func (s *OrderService) Complete(id int64, input CompleteOrderInput) (*models.Order, error) {
	if id <= 0 {
		return nil, ErrOrderInvalid
	}
	method := strings.TrimSpace(input.Method)
	if method != constants.CompletionMethodSMS && method != constants.CompletionMethodSheet {
		return nil, ErrOrderInvalid
	}

	var completed *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		order, err := repo.GetByID(id)
		if err != nil {
			logger.Errorw("order_complete_lookup_failed", "order_id", id, "error", err)
			return ErrOrderUpdateFailed
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.IsCompleted() {
			return ErrOrderCompleted
		}

		order.CompletionDetails = models.JSON{
			"method":       method,
			"completed_at": time.Now().In(s.location).Format(time.RFC3339),
			"message":      strings.TrimSpace(input.Message),
		}
		if err := repo.Update(order); err != nil {
			logger.Errorw("order_complete_update_failed", "order_id", id, "error", err)
			return ErrOrderUpdateFailed
		}
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderDispatch(queue.OrderDispatchPayload{
		OrderID: id,
		Method:  method,
	}); err != nil {
		logger.Warnw("order_dispatch_enqueue_failed", "order_id", id, "error", err)
	}

	logger.Infow("order_completed", "order_id", id, "method", method)
	return completed, nil
}

// Uncomplete 완료 처리를 취소한다. 완료 마커만 지울 뿐 품목은 그대로다
func (s *OrderService) Uncomplete(id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, ErrOrderInvalid
	}
	var reopened *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		order, err := repo.GetByID(id)
		if err != nil {
			logger.Errorw("order_uncomplete_lookup_failed", "order_id", id, "error", err)
			return ErrOrderUpdateFailed
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !order.IsCompleted() {
			return ErrOrderNotCompleted
		}

		order.CompletionDetails = nil
		if err := repo.Update(order); err != nil {
			logger.Errorw("order_uncomplete_update_failed", "order_id", id, "error", err)
			return ErrOrderUpdateFailed
		}
		reopened = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("order_uncompleted", "order_id", id)
	return reopened, nil
}

// DispatchMessage 발주 전송 문안을 만든다. 전송 전 미리보기에도 쓰인다
func (s *OrderService) DispatchMessage(id int64) (string, error) {
	order, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return BuildDispatchMessage(order, s.settingService.StoreName()), nil
}

// RenderDispatch 완료 처리 내역에 전송 문안을 채워 넣는다. 워커에서 호출되며,
// 완료 시점에 문안을 직접 입력한 발주는 건드리지 않는다
func (s *OrderService) RenderDispatch(id int64) error {
	if id <= 0 {
		return ErrOrderInvalid
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		order, err := repo.GetByID(id)
		if err != nil {
			logger.Errorw("order_dispatch_lookup_failed", "order_id", id, "error", err)
			return ErrDispatchFailed
		}
		if order == nil {
			logger.Warnw("order_dispatch_missing", "order_id", id)
			return nil
		}
		if !order.IsCompleted() {
			logger.Warnw("order_dispatch_not_completed", "order_id", id)
			return nil
		}
		if message, ok := order.CompletionDetails["message"].(string); ok && strings.TrimSpace(message) != "" {
			return nil
		}

		order.CompletionDetails["message"] = BuildDispatchMessage(order, s.settingService.StoreName())
		if err := repo.Update(order); err != nil {
			logger.Errorw("order_dispatch_update_failed", "order_id", id, "error", err)
			return ErrDispatchFailed
		}
		logger.Infow("order_dispatch_rendered", "order_id", id)
		return nil
	})
}

// BuildDispatchMessage 발주 내용을 문자/시트 전송용 텍스트로 만든다.
//
//	[매장명] 발주서 2026-08-24
//	거래처: 한마트
//
//	서울우유 1L 3개
//	포카칩 2박스 - 할인 확인
//	합계 8,400원
func BuildDispatchMessage(order *models.Order, storeName string) string {
	var b strings.Builder

	storeName = strings.TrimSpace(storeName)
	if storeName != "" {
		b.WriteString(fmt.Sprintf("[%s] ", storeName))
	}
	b.WriteString(fmt.Sprintf("발주서 %s\n", order.OrderDate))
	b.WriteString(fmt.Sprintf("거래처: %s\n\n", order.Customer))

	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("%s %d%s", item.Name, item.Quantity, item.Unit))
		if memo := strings.TrimSpace(item.Memo); memo != "" {
			b.WriteString(" - " + memo)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("합계 %s", formatWon(order.Total)))
	return b.String()
}

// formatWon 원화 금액을 3자리 콤마 형식으로 만든다
func formatWon(amount models.Money) string {
	digits := amount.Decimal.Floor().String()
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}

	formatted := b.String()
	if negative {
		formatted = "-" + formatted
	}
	return formatted + "원"
}
