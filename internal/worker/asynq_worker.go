package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/provider"
	"github.com/balju-mate/internal/queue"
	"github.com/balju-mate/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 비동기 작업 소비자
type Consumer struct {
	*provider.Container
}

// NewConsumer 소비자 생성
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 소비자 등록
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogSync, c.handleCatalogSync)
	mux.HandleFunc(queue.TaskOrderDispatch, c.handleOrderDispatch)
}

func (c *Consumer) handleCatalogSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_catalog_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CatalogSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_sync_unmarshal_failed", "error", err)
		return err
	}
	if c.CatalogSyncService == nil {
		logger.Warnw("worker_catalog_sync_skip_service_nil", "requested_by", payload.RequestedBy)
		return nil
	}
	if err := c.CatalogSyncService.Run(ctx); err != nil {
		switch {
		case errors.Is(err, service.ErrCatalogSyncUnavailable):
			logger.Debugw("worker_catalog_sync_skip_bridge_disabled", "requested_by", payload.RequestedBy)
			return nil
		default:
			logger.Warnw("worker_catalog_sync_failed", "requested_by", payload.RequestedBy, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleOrderDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_dispatch_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_dispatch_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.RenderDispatch(payload.OrderID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderInvalid):
			logger.Debugw("worker_order_dispatch_skip_invalid_order", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_dispatch_failed", "order_id", payload.OrderID, "method", payload.Method, "error", err)
			return err
		}
	}
	return nil
}
