package service

import (
	"context"
	"errors"
	"time"

	"github.com/balju-mate/internal/cache"
	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/queue"
	"github.com/balju-mate/internal/repository"
	"github.com/balju-mate/internal/rowquery"

	"gorm.io/gorm"
)

// 카탈로그 동기화 상태 문자열
const (
	catalogSyncStatusIdle    = "idle"
	catalogSyncStatusQueued  = "queued"
	catalogSyncStatusRunning = "running"
	catalogSyncStatusDone    = "done"
	catalogSyncStatusFailed  = "failed"
)

const (
	defaultCatalogPageSize = 200
	catalogSyncMaxPages    = 1000 // 폭주 방지 상한
)

// CatalogSyncService 본사 카탈로그를 로컬 상품 마스터로 내려받는 동기화
//
// 브리지가 돌려주는 페이지를 차례로 업서트한다. 브리지가 카탈로그의
// 원본이므로 행사 오버레이 필드까지 덮어쓰며, 로컬 행사와의 충돌은
// 마지막 기록이 이기는 기존 규칙을 그대로 따른다. 메모는 로컬 전용
// 필드라 보존한다.
type CatalogSyncService struct {
	productRepo repository.ProductRepository
	catalog     rowquery.Executor
	queueClient *queue.Client
	enabled     bool
	pageSize    int
}

// NewCatalogSyncService 카탈로그 동기화 서비스 생성
func NewCatalogSyncService(
	productRepo repository.ProductRepository,
	catalog rowquery.Executor,
	queueClient *queue.Client,
	cfg *config.CatalogConfig,
) *CatalogSyncService {
	enabled := false
	pageSize := defaultCatalogPageSize
	if cfg != nil {
		enabled = cfg.Bridge.Enabled
		if cfg.Sync.PageSize > 0 {
			pageSize = cfg.Sync.PageSize
		}
	}
	return &CatalogSyncService{
		productRepo: productRepo,
		catalog:     catalog,
		queueClient: queueClient,
		enabled:     enabled,
		pageSize:    pageSize,
	}
}

// Start 동기화를 요청한다. 큐가 켜져 있으면 워커 작업으로 넘기고
// 아니면 요청 흐름에서 바로 실행한다
func (s *CatalogSyncService) Start(ctx context.Context, requestedBy string) (*cache.CatalogSyncInfo, error) {
	if !s.enabled {
		return nil, ErrCatalogSyncUnavailable
	}

	current, hit, err := cache.GetCatalogSyncInfo(ctx)
	if err != nil {
		logger.Warnw("catalog_sync_info_read_failed", "error", err)
	}
	if hit && current.Status == catalogSyncStatusRunning {
		return current, ErrCatalogSyncRunning
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueCatalogSync(queue.CatalogSyncPayload{
			RequestedBy: requestedBy,
			PageSize:    s.pageSize,
		}); err != nil {
			logger.Errorw("catalog_sync_enqueue_failed", "error", err)
			return nil, ErrCatalogSyncUnavailable
		}
		info := &cache.CatalogSyncInfo{Status: catalogSyncStatusQueued}
		s.saveInfo(ctx, info)
		logger.Infow("catalog_sync_queued", "requested_by", requestedBy)
		return info, nil
	}

	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	info, _, err := cache.GetCatalogSyncInfo(ctx)
	if err != nil || info == nil {
		info = &cache.CatalogSyncInfo{Status: catalogSyncStatusDone}
	}
	return info, nil
}

// Status 동기화 진행 상태 조회. 기록이 없으면 idle 로 본다
func (s *CatalogSyncService) Status(ctx context.Context) (*cache.CatalogSyncInfo, error) {
	info, hit, err := cache.GetCatalogSyncInfo(ctx)
	if err != nil {
		logger.Errorw("catalog_sync_status_failed", "error", err)
		return nil, ErrCatalogSyncUnavailable
	}
	if !hit {
		return &cache.CatalogSyncInfo{Status: catalogSyncStatusIdle}, nil
	}
	return info, nil
}

// Run 브리지에서 카탈로그를 페이지 단위로 내려받아 업서트한다.
// 워커의 동기화 작업 핸들러가 직접 호출한다
func (s *CatalogSyncService) Run(ctx context.Context) error {
	info := &cache.CatalogSyncInfo{
		Status:    catalogSyncStatusRunning,
		StartedAt: time.Now().Unix(),
	}
	s.saveInfo(ctx, info)

	for page := 1; page <= catalogSyncMaxPages; page++ {
		products, err := rowquery.FetchCatalogPage(ctx, s.catalog, page, s.pageSize)
		if err != nil {
			s.failInfo(ctx, info, err)
			if errors.Is(err, rowquery.ErrBridgeDisabled) {
				return ErrCatalogSyncUnavailable
			}
			logger.Errorw("catalog_sync_page_failed", "page", page, "error", err)
			return ErrCatalogSyncUnavailable
		}
		if len(products) == 0 {
			break
		}

		upserted, err := s.upsertPage(products)
		if err != nil {
			s.failInfo(ctx, info, err)
			logger.Errorw("catalog_sync_upsert_failed", "page", page, "error", err)
			return ErrCatalogSyncUnavailable
		}
		info.Pages++
		info.Upserted += upserted
		s.saveInfo(ctx, info)

		if len(products) < s.pageSize {
			break
		}
	}

	info.Status = catalogSyncStatusDone
	info.FinishedAt = time.Now().Unix()
	s.saveInfo(ctx, info)
	logger.Infow("catalog_sync_done", "pages", info.Pages, "upserted", info.Upserted)
	return nil
}

// upsertPage 한 페이지를 단일 트랜잭션으로 업서트한다
func (s *CatalogSyncService) upsertPage(products []models.Product) (int, error) {
	upserted := 0
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		for i := range products {
			remote := &products[i]
			existing, err := repo.GetByBarcode(remote.Barcode)
			if err != nil {
				return err
			}
			if existing == nil {
				if err := repo.Create(remote); err != nil {
					return err
				}
				upserted++
				continue
			}

			existing.Name = remote.Name
			existing.Category = remote.Category
			existing.Unit = remote.Unit
			existing.Supplier = remote.Supplier
			existing.CostPrice = remote.CostPrice
			existing.SellingPrice = remote.SellingPrice
			existing.EventCostPrice = remote.EventCostPrice
			existing.SalePrice = remote.SalePrice
			existing.SaleName = remote.SaleName
			existing.SaleStartDate = remote.SaleStartDate
			existing.SaleEndDate = remote.SaleEndDate
			if err := repo.Update(existing); err != nil {
				return err
			}
			upserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return upserted, nil
}

func (s *CatalogSyncService) saveInfo(ctx context.Context, info *cache.CatalogSyncInfo) {
	if err := cache.SetCatalogSyncInfo(ctx, info); err != nil {
		logger.Warnw("catalog_sync_info_save_failed", "error", err)
	}
}

func (s *CatalogSyncService) failInfo(ctx context.Context, info *cache.CatalogSyncInfo, cause error) {
	info.Status = catalogSyncStatusFailed
	info.FinishedAt = time.Now().Unix()
	info.Error = cause.Error()
	s.saveInfo(ctx, info)
}
