package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"
	"github.com/balju-mate/internal/rowquery"

	"gorm.io/gorm"
)

// 발주 번호 충돌 시 밀리초를 올려가며 재시도하는 상한
const orderIDMaxBump = 1000

// DraftService 레지스터별 발주 작업본 관리
//
// 작업본은 Redis 저널에 통째로 저장되고 요청마다 읽어 와서 수정 후 다시
// 저장한다. 서버는 작업본에 대해 아무 상태도 들고 있지 않는다.
type DraftService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	catalog     rowquery.Executor
	journal     DraftJournal
	location    *time.Location
	draftTTL    time.Duration
}

// AddDraftItemInput 품목 담기 입력
type AddDraftItemInput struct {
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Memo     string `json:"memo"`
}

// UpdateDraftItemInput 품목 수정 입력. nil 필드는 그대로 둔다
type UpdateDraftItemInput struct {
	Quantity *int          `json:"quantity"`
	Unit     *string       `json:"unit"`
	Memo     *string       `json:"memo"`
	Price    *models.Money `json:"price"`
}

// ReorderDraftInput 품목 순서 이동 입력
type ReorderDraftInput struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// NewDraftService DraftService 생성
func NewDraftService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	catalog rowquery.Executor,
	journal DraftJournal,
	location *time.Location,
	draftTTLHours int,
) *DraftService {
	if catalog == nil {
		catalog = rowquery.NewDisabledExecutor()
	}
	if journal == nil {
		journal = NewDraftJournal()
	}
	if location == nil {
		location = time.Local
	}
	ttl := time.Duration(draftTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &DraftService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		catalog:     catalog,
		journal:     journal,
		location:    location,
		draftTTL:    ttl,
	}
}

func (s *DraftService) today() time.Time {
	return time.Now().In(s.location)
}

// Load 레지스터의 작업본을 읽는다. 저널이 없으면 빈 작업본을 돌려준다
func (s *DraftService) Load(ctx context.Context, registerID string) (*OrderDraft, error) {
	draft := NewOrderDraft()
	hit, err := s.journal.Load(ctx, registerID, draft)
	if err != nil {
		logger.Warnw("draft_journal_read_failed", "register_id", registerID, "error", err)
		return nil, ErrDraftStoreUnavailable
	}
	if !hit {
		return NewOrderDraft(), nil
	}
	return draft, nil
}

func (s *DraftService) save(ctx context.Context, registerID string, draft *OrderDraft) error {
	draft.UpdatedAt = time.Now().Unix()
	if err := s.journal.Save(ctx, registerID, draft, s.draftTTL); err != nil {
		logger.Warnw("draft_journal_write_failed", "register_id", registerID, "error", err)
		return ErrDraftStoreUnavailable
	}
	return nil
}

// Discard 작업본을 버린다
func (s *DraftService) Discard(ctx context.Context, registerID string) error {
	if err := s.journal.Delete(ctx, registerID); err != nil {
		logger.Warnw("draft_journal_delete_failed", "register_id", registerID, "error", err)
		return ErrDraftStoreUnavailable
	}
	return nil
}

// SetCustomer 거래처를 지정한다
func (s *DraftService) SetCustomer(ctx context.Context, registerID, customer string) (*OrderDraft, error) {
	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}
	draft.Customer = strings.TrimSpace(customer)
	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AddItem 바코드로 상품을 찾아 작업본에 담는다
func (s *DraftService) AddItem(ctx context.Context, registerID string, input AddDraftItemInput) (*OrderDraft, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, ErrDraftInvalid
	}

	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}

	product, _, err := s.lookupProduct(ctx, draft, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	draft.AddOrUpdateItem(product, DraftItemInput{
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Memo:     input.Memo,
	}, s.today())

	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// UpdateItem 작업본 품목을 수정한다
func (s *DraftService) UpdateItem(ctx context.Context, registerID, barcode string, input UpdateDraftItemInput) (*OrderDraft, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrDraftInvalid
	}

	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if !draft.UpdateItem(barcode, DraftItemPatch{
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Memo:     input.Memo,
		Price:    input.Price,
	}) {
		return nil, ErrDraftNotFound
	}
	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveItem 작업본 품목을 제거한다
func (s *DraftService) RemoveItem(ctx context.Context, registerID, barcode string) (*OrderDraft, error) {
	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if !draft.RemoveItem(strings.TrimSpace(barcode)) {
		return nil, ErrDraftNotFound
	}
	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ReorderItems 작업본 품목 순서를 이동한다
func (s *DraftService) ReorderItems(ctx context.Context, registerID string, input ReorderDraftInput) (*OrderDraft, error) {
	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}
	draft.Reorder(input.FromIndex, input.ToIndex)
	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Scan 바코드를 실시간 재조회한다.
//
// 브릿지 조회가 성공하면 사본을 세션 조회분으로 기록해서 확정 대사 때
// 신뢰 소스로 쓰이게 하고 fresh 로 참을 돌려준다. 브릿지가 꺼져 있거나
// 실패하면 로컬 마스터로 대신 조회하되 세션 조회분으로는 기록하지 않는다.
func (s *DraftService) Scan(ctx context.Context, registerID, barcode string) (*models.Product, bool, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, false, ErrDraftInvalid
	}

	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, false, err
	}

	product, err := rowquery.FetchProductByBarcode(ctx, s.catalog, barcode)
	if err != nil && !errors.Is(err, rowquery.ErrBridgeDisabled) {
		logger.Warnw("scan_bridge_lookup_failed", "barcode", barcode, "error", err)
	}
	if product != nil {
		draft.RecordFetched(product)
		if err := s.save(ctx, registerID, draft); err != nil {
			return nil, false, err
		}
		return product, true, nil
	}

	product, err = s.productRepo.GetByBarcode(barcode)
	if err != nil {
		logger.Errorw("scan_local_lookup_failed", "barcode", barcode, "error", err)
		return nil, false, ErrProductFetchFailed
	}
	if product == nil {
		return nil, false, ErrProductNotFound
	}
	return product, false, nil
}

// Search 상품을 검색한다. 브릿지 결과는 세션 조회분으로 기록한다
func (s *DraftService) Search(ctx context.Context, registerID, term string, limit int) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrDraftInvalid
	}
	if limit <= 0 {
		limit = 20
	}

	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}

	products, err := rowquery.SearchProducts(ctx, s.catalog, term, limit)
	if err != nil && !errors.Is(err, rowquery.ErrBridgeDisabled) {
		logger.Warnw("search_bridge_lookup_failed", "term", term, "error", err)
	}
	if err == nil && len(products) > 0 {
		for i := range products {
			draft.RecordFetched(&products[i])
		}
		if err := s.save(ctx, registerID, draft); err != nil {
			return nil, err
		}
		return products, nil
	}

	locals, _, err := s.productRepo.List(repository.ProductListFilter{
		Page:     1,
		PageSize: limit,
		Search:   term,
	})
	if err != nil {
		logger.Errorw("search_local_lookup_failed", "term", term, "error", err)
		return nil, ErrProductFetchFailed
	}
	return locals, nil
}

// Reopen 저장된 발주를 작업본으로 다시 연다. 완료된 발주는 열 수 없다
func (s *DraftService) Reopen(ctx context.Context, registerID string, orderID int64) (*OrderDraft, error) {
	if orderID <= 0 {
		return nil, ErrOrderInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		logger.Errorw("draft_reopen_order_lookup_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderNotFound
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsCompleted() {
		return nil, ErrOrderCompleted
	}

	draft := NewOrderDraft()
	draft.Customer = order.Customer
	draft.EditingOrderID = order.ID
	draft.ResetItems(order.Items)
	if err := s.save(ctx, registerID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Finalize 작업본을 확정해서 발주로 저장한다.
//
// 품목마다 세션 조회분, 로컬 마스터, 브릿지 순서로 상품을 찾아 먼저 잡히는
// 출처로 대사한다. 어디에서도 못 찾은 품목은 담았을 때 상태 그대로 저장된다.
// 저장이 끝나면 저널을 지우는데, 이 삭제는 실패해도 확정을 되돌리지 않는다.
func (s *DraftService) Finalize(ctx context.Context, registerID string) (*models.Order, error) {
	draft, err := s.Load(ctx, registerID)
	if err != nil {
		return nil, err
	}

	customer := strings.TrimSpace(draft.Customer)
	if customer == "" {
		return nil, ErrDraftCustomerRequired
	}
	if len(draft.Items) == 0 {
		return nil, ErrDraftEmpty
	}

	today := s.today()
	for i := range draft.Items {
		item := &draft.Items[i]
		product, source, err := s.lookupProduct(ctx, draft, item.Barcode)
		if err != nil {
			return nil, err
		}
		switch source {
		case snapshotSourceRich:
			resolveWithRichCopy(item, product, today)
		case snapshotSourceLocal:
			resolveWithLocalCopy(item, product)
		case snapshotSourceMiss:
			// 출처가 없으면 품목을 건드리지 않는다
		}
	}
	draft.normalizeSortOrder()
	total := draft.TotalAmount()

	var saved *models.Order
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		if draft.EditingOrderID > 0 {
			existing, err := orderRepo.GetByID(draft.EditingOrderID)
			if err != nil {
				logger.Errorw("draft_finalize_order_lookup_failed", "order_id", draft.EditingOrderID, "error", err)
				return ErrOrderUpdateFailed
			}
			if existing == nil {
				return ErrOrderNotFound
			}
			if existing.IsCompleted() {
				return ErrOrderCompleted
			}
			existing.Customer = customer
			existing.Total = total
			existing.ItemCount = len(draft.Items)
			if err := orderRepo.Update(existing); err != nil {
				logger.Errorw("draft_finalize_order_update_failed", "order_id", existing.ID, "error", err)
				return ErrOrderUpdateFailed
			}
			if err := orderRepo.ReplaceItems(existing.ID, draft.Items); err != nil {
				logger.Errorw("draft_finalize_replace_items_failed", "order_id", existing.ID, "error", err)
				return ErrOrderUpdateFailed
			}
			existing.Items = nil
			saved = existing
			return nil
		}

		id, err := s.nextOrderID(orderRepo)
		if err != nil {
			return err
		}
		order := &models.Order{
			ID:        id,
			Customer:  customer,
			Total:     total,
			ItemCount: len(draft.Items),
			OrderDate: today.Format(constants.DateLayout),
		}
		if err := orderRepo.Create(order, draft.Items); err != nil {
			logger.Errorw("draft_finalize_order_create_failed", "order_id", id, "error", err)
			return ErrOrderCreateFailed
		}
		saved = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.journal.Delete(ctx, registerID); err != nil {
		logger.Warnw("draft_journal_cleanup_failed", "register_id", registerID, "error", err)
	}

	logger.Infow("order_finalized",
		"order_id", saved.ID,
		"register_id", registerID,
		"customer", saved.Customer,
		"item_count", saved.ItemCount,
		"total", saved.Total.String(),
	)

	full, err := s.orderRepo.GetByID(saved.ID)
	if err != nil || full == nil {
		return saved, nil
	}
	return full, nil
}

// lookupProduct 3단 조회 체인. 세션 조회분, 로컬 마스터, 브릿지 순서로
// 먼저 잡히는 출처를 쓴다. 브릿지에서 새로 받은 사본은 세션 조회분으로
// 기록한다
func (s *DraftService) lookupProduct(ctx context.Context, draft *OrderDraft, barcode string) (*models.Product, snapshotSource, error) {
	if product := draft.FetchedProduct(barcode); product != nil {
		return product, snapshotSourceRich, nil
	}

	product, err := s.productRepo.GetByBarcode(barcode)
	if err != nil {
		logger.Errorw("draft_local_lookup_failed", "barcode", barcode, "error", err)
		return nil, snapshotSourceMiss, ErrProductFetchFailed
	}
	if product != nil {
		return product, snapshotSourceLocal, nil
	}

	product, err = rowquery.FetchProductByBarcode(ctx, s.catalog, barcode)
	if err != nil {
		if errors.Is(err, rowquery.ErrBridgeDisabled) {
			return nil, snapshotSourceMiss, nil
		}
		logger.Warnw("draft_bridge_lookup_failed", "barcode", barcode, "error", err)
		return nil, snapshotSourceMiss, nil
	}
	if product == nil {
		return nil, snapshotSourceMiss, nil
	}
	draft.RecordFetched(product)
	return product, snapshotSourceRich, nil
}

// nextOrderID 현재 Unix 밀리초를 발주 번호로 쓴다.
// 이미 쓴 번호(삭제분 포함)와 겹치면 1밀리초씩 올려가며 빈 번호를 찾는다
func (s *DraftService) nextOrderID(repo repository.OrderRepository) (int64, error) {
	id := time.Now().UnixMilli()
	for i := 0; i < orderIDMaxBump; i++ {
		exists, err := repo.ExistsByID(id)
		if err != nil {
			logger.Errorw("order_id_probe_failed", "order_id", id, "error", err)
			return 0, ErrOrderCreateFailed
		}
		if !exists {
			return id, nil
		}
		id++
	}
	return 0, ErrOrderCreateFailed
}
