package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 하루 안에서 발급하는 행사 전표 일련번호 범위
const (
	junnoSeqStart = 100001
	junnoSeqEnd   = 999999
)

// EventService 행사(프로모션) 라이프사이클 관리
//
// 행사 헤더는 '0' 대기 → '1' 적용중 → '2' 종료로 흐르고, 종료는 되돌릴 수 없다.
// 상태가 적용중을 드나들 때마다 품목이 가리키는 상품 마스터의 행사 오버레이를
// 같은 트랜잭션 안에서 다시 계산한다. 모든 전이는 재호출해도 안전하다.
type EventService struct {
	eventRepo   repository.EventRepository
	lineRepo    repository.EventLineRepository
	productRepo repository.ProductRepository
	location    *time.Location
}

// CreateEventInput 행사 생성 입력
type CreateEventInput struct {
	SaleName string `json:"salename" binding:"required"`
	StartDay string `json:"startday" binding:"required"`
	EndDay   string `json:"endday" binding:"required"`
}

// UpsertEventItemInput 행사 품목 등록/수정 입력.
// OrgMoney1 을 비우면 신규 등록 시 상품의 현재 판매가를, 수정 시 기존 값을 유지한다
type UpsertEventItemInput struct {
	Barcode    string        `json:"barcode" binding:"required"`
	SaleMoney0 models.Money  `json:"salemoney0"`
	SaleMoney1 models.Money  `json:"salemoney1"`
	OrgMoney1  *models.Money `json:"orgmoney1"`
}

// ChangeEventPeriodInput 행사 기간 변경 입력
type ChangeEventPeriodInput struct {
	StartDay string `json:"startday" binding:"required"`
	EndDay   string `json:"endday" binding:"required"`
}

// EventListInput 행사 목록 조회 입력
type EventListInput struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// EventActionResult 행사 조작 결과. Message 는 화면에 그대로 띄우는 안내 문구다
type EventActionResult struct {
	Event   *models.EventItem `json:"event"`
	Message string            `json:"message"`
	Warning string            `json:"warning,omitempty"`
}

// NewEventService 행사 서비스 생성
func NewEventService(
	eventRepo repository.EventRepository,
	lineRepo repository.EventLineRepository,
	productRepo repository.ProductRepository,
	location *time.Location,
) *EventService {
	if location == nil {
		location = time.Local
	}
	return &EventService{
		eventRepo:   eventRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
		location:    location,
	}
}

func (s *EventService) today() time.Time {
	return time.Now().In(s.location)
}

// Get 행사 상세 조회 (품목 포함)
func (s *EventService) Get(junno string) (*models.EventItem, error) {
	if strings.TrimSpace(junno) == "" {
		return nil, ErrEventInvalid
	}
	event, err := s.eventRepo.GetByJunno(junno)
	if err != nil {
		logger.Errorw("event_get_failed", "junno", junno, "error", err)
		return nil, ErrEventNotFound
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// List 행사 목록 조회
func (s *EventService) List(input EventListInput) ([]models.EventItem, int64, error) {
	return s.eventRepo.List(repository.EventListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Status:   strings.TrimSpace(input.Status),
		Search:   strings.TrimSpace(input.Search),
	})
}

// Create 행사를 대기 상태로 생성한다. 적용은 별도 전이로만 일어난다
func (s *EventService) Create(input CreateEventInput) (*models.EventItem, error) {
	name := strings.TrimSpace(input.SaleName)
	if name == "" {
		return nil, ErrEventInvalid
	}
	start, startOK := parseSaleDate(input.StartDay)
	end, endOK := parseSaleDate(input.EndDay)
	if !startOK || !endOK || end.Before(start) {
		return nil, ErrEventInvalid
	}

	var created *models.EventItem
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		junno, err := s.nextJunno(events, s.today())
		if err != nil {
			return err
		}
		event := &models.EventItem{
			Junno:    junno,
			SaleName: name,
			StartDay: start.Format(constants.DateLayout),
			EndDay:   end.Format(constants.DateLayout),
			IsAppl:   constants.EventStatusWaiting,
		}
		if err := events.Create(event); err != nil {
			logger.Errorw("event_create_failed", "junno", junno, "error", err)
			return ErrEventCreateFailed
		}
		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_created",
		"junno", created.Junno,
		"salename", created.SaleName,
		"startday", created.StartDay,
		"endday", created.EndDay,
	)
	return created, nil
}

// nextJunno 날짜 접두 행사 전표 번호를 발급한다 (YYYYMMDD + 일련번호)
func (s *EventService) nextJunno(events repository.EventRepository, today time.Time) (string, error) {
	prefix := today.Format(constants.JunnoDateLayout)
	for seq := junnoSeqStart; seq <= junnoSeqEnd; seq++ {
		junno := fmt.Sprintf("%s%d", prefix, seq)
		exists, err := events.ExistsByJunno(junno)
		if err != nil {
			logger.Errorw("event_junno_probe_failed", "junno", junno, "error", err)
			return "", ErrEventCreateFailed
		}
		if !exists {
			return junno, nil
		}
	}
	logger.Errorw("event_junno_exhausted", "prefix", prefix)
	return "", ErrEventCreateFailed
}

// Apply 행사를 적용한다 ('0'→'1').
// 제외('D')되지 않은 품목이 전부 적용 상태가 되고 상품 오버레이가 기록된다
func (s *EventService) Apply(junno string) (*EventActionResult, error) {
	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_apply_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		switch event.IsAppl {
		case constants.EventStatusEnded:
			return ErrEventEnded
		case constants.EventStatusActive:
			result = &EventActionResult{Event: event, Message: "이미 적용중인 행사입니다."}
			return nil
		}

		if err := s.applyLines(lines, products, event); err != nil {
			return err
		}
		event.IsAppl = constants.EventStatusActive
		if err := events.UpdateHeader(event); err != nil {
			logger.Errorw("event_apply_update_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		result = &EventActionResult{Event: event, Message: "행사가 적용되었습니다."}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_applied", "junno", junno)
	return result, nil
}

// Stop 적용중인 행사를 대기로 되돌린다 ('1'→'0').
// 적용 상태였던 품목의 상품 오버레이를 복원한다
func (s *EventService) Stop(junno string) (*EventActionResult, error) {
	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_stop_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		switch event.IsAppl {
		case constants.EventStatusEnded:
			return ErrEventEnded
		case constants.EventStatusWaiting:
			result = &EventActionResult{Event: event, Message: "이미 대기 상태인 행사입니다."}
			return nil
		}

		if err := s.stopLines(events, lines, products, event); err != nil {
			return err
		}
		event.IsAppl = constants.EventStatusWaiting
		if err := events.UpdateHeader(event); err != nil {
			logger.Errorw("event_stop_update_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		result = &EventActionResult{Event: event, Message: "행사가 중지되었습니다."}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_stopped", "junno", junno)
	return result, nil
}

// End 행사를 종료한다 ('0'/'1'→'2'). 종료된 행사는 다시 적용할 수 없다.
// 적용 상태였던 품목은 복원하고, 모든 품목을 최종 'D' 상태로 내린다
func (s *EventService) End(junno string) (*EventActionResult, error) {
	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_end_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.IsAppl == constants.EventStatusEnded {
			result = &EventActionResult{Event: event, Message: "이미 종료된 행사입니다."}
			return nil
		}

		if err := s.endLines(events, lines, products, event); err != nil {
			return err
		}
		event.IsAppl = constants.EventStatusEnded
		if err := events.UpdateHeader(event); err != nil {
			logger.Errorw("event_end_update_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		result = &EventActionResult{Event: event, Message: "행사가 종료되었습니다."}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_ended", "junno", junno)
	return result, nil
}

// Delete 행사를 삭제한다. 적용중인 행사는 중지나 종료를 거쳐야 지울 수 있다
func (s *EventService) Delete(junno string) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_delete_lookup_failed", "junno", junno, "error", err)
			return ErrEventDeleteFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.IsAppl == constants.EventStatusActive {
			return ErrEventActive
		}
		if err := events.Delete(junno); err != nil {
			logger.Errorw("event_delete_failed", "junno", junno, "error", err)
			return ErrEventDeleteFailed
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Infow("event_deleted", "junno", junno)
	return nil
}

// UpsertItem 행사 품목을 등록하거나 수정한다.
// 기간이 겹치는 다른 행사에 같은 바코드가 있으면 경고만 남기고 저장한다.
// 행사가 적용중이면 저장 즉시 상품 오버레이까지 기록한다 (나중 저장이 우선)
func (s *EventService) UpsertItem(junno string, input UpsertEventItemInput) (*EventActionResult, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, ErrEventInvalid
	}
	if input.SaleMoney0.IsNegative() || input.SaleMoney1.IsNegative() {
		return nil, ErrEventInvalid
	}

	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_item_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.IsAppl == constants.EventStatusEnded {
			return ErrEventEnded
		}

		product, err := products.GetByBarcode(barcode)
		if err != nil {
			logger.Errorw("event_item_product_lookup_failed", "junno", junno, "barcode", barcode, "error", err)
			return ErrEventUpdateFailed
		}
		if product == nil {
			return ErrProductNotFound
		}

		warning := ""
		overlaps, err := lines.CountWindowOverlaps(barcode, event.StartDay, event.EndDay, junno)
		if err != nil {
			logger.Errorw("event_item_overlap_check_failed", "junno", junno, "barcode", barcode, "error", err)
			return ErrEventUpdateFailed
		}
		if overlaps > 0 {
			warning = "기간이 겹치는 다른 행사에 이미 등록된 상품입니다. 나중에 저장한 행사 가격이 적용됩니다."
			logger.Warnw("event_item_window_overlap",
				"junno", junno,
				"barcode", barcode,
				"overlaps", overlaps,
			)
		}

		line, err := lines.GetByJunnoBarcode(junno, barcode)
		if err != nil {
			logger.Errorw("event_item_line_lookup_failed", "junno", junno, "barcode", barcode, "error", err)
			return ErrEventUpdateFailed
		}

		saleCount := marginRate(input.SaleMoney0, input.SaleMoney1)
		if line == nil {
			orgMoney := product.SellingPrice
			if input.OrgMoney1 != nil && input.OrgMoney1.IsPositive() {
				orgMoney = *input.OrgMoney1
			}
			maxSeq, err := lines.MaxSeq(junno)
			if err != nil {
				logger.Errorw("event_item_seq_failed", "junno", junno, "error", err)
				return ErrEventUpdateFailed
			}
			line = &models.EventLineItem{
				Junno:      junno,
				Barcode:    barcode,
				Seq:        maxSeq + 1,
				Name:       product.Name,
				SaleMoney0: input.SaleMoney0,
				SaleMoney1: input.SaleMoney1,
				OrgMoney1:  orgMoney,
				SaleCount:  saleCount,
				IsAppl:     event.IsAppl,
			}
			if err := lines.Create(line); err != nil {
				logger.Errorw("event_item_create_failed", "junno", junno, "barcode", barcode, "error", err)
				return ErrEventUpdateFailed
			}
		} else {
			// 적용중 품목의 복원가를 현재 판매가(=행사가)로 덮어쓰지 않도록 기존 값을 지킨다
			if input.OrgMoney1 != nil && input.OrgMoney1.IsPositive() {
				line.OrgMoney1 = *input.OrgMoney1
			}
			line.Name = product.Name
			line.SaleMoney0 = input.SaleMoney0
			line.SaleMoney1 = input.SaleMoney1
			line.SaleCount = saleCount
			line.IsAppl = event.IsAppl
			if err := lines.Update(line); err != nil {
				logger.Errorw("event_item_update_failed", "junno", junno, "barcode", barcode, "error", err)
				return ErrEventUpdateFailed
			}
		}

		if event.IsAppl == constants.EventStatusActive {
			applyOverlayToProduct(product, event, line)
			if err := products.Update(product); err != nil {
				logger.Errorw("event_item_overlay_failed", "junno", junno, "barcode", barcode, "error", err)
				return ErrEventUpdateFailed
			}
		}

		if err := s.refreshAggregates(events, lines, event); err != nil {
			return err
		}
		result = &EventActionResult{Event: event, Message: "행사 품목이 저장되었습니다.", Warning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_item_saved", "junno", junno, "barcode", barcode)
	return result, nil
}

// RemoveItem 행사 품목을 제외한다.
// 적용 상태였던 품목은 상품 오버레이를 복원한 뒤 행을 지운다
func (s *EventService) RemoveItem(junno, barcode string) (*EventActionResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrEventInvalid
	}

	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_item_remove_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.IsAppl == constants.EventStatusEnded {
			return ErrEventEnded
		}

		line, err := lines.GetByJunnoBarcode(junno, barcode)
		if err != nil {
			logger.Errorw("event_item_remove_line_failed", "junno", junno, "barcode", barcode, "error", err)
			return ErrEventUpdateFailed
		}
		if line == nil {
			return ErrEventLineNotFound
		}

		if line.IsAppl == constants.EventStatusActive {
			if err := s.restoreProduct(events, lines, products, line); err != nil {
				return err
			}
		}
		if err := lines.Delete(junno, barcode); err != nil {
			logger.Errorw("event_item_remove_failed", "junno", junno, "barcode", barcode, "error", err)
			return ErrEventUpdateFailed
		}
		if err := s.refreshAggregates(events, lines, event); err != nil {
			return err
		}
		result = &EventActionResult{Event: event, Message: "행사 품목이 제외되었습니다."}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_item_removed", "junno", junno, "barcode", barcode)
	return result, nil
}

// ChangePeriod 행사 기간을 변경한다.
// 새 기간과 오늘의 관계만으로 상태를 다시 산출하고, 전이에 따르는
// 오버레이 기록/복원을 같은 트랜잭션에서 수행한다
func (s *EventService) ChangePeriod(junno string, input ChangeEventPeriodInput) (*EventActionResult, error) {
	start, startOK := parseSaleDate(input.StartDay)
	end, endOK := parseSaleDate(input.EndDay)
	if !startOK || !endOK || end.Before(start) {
		return nil, ErrEventInvalid
	}

	var result *EventActionResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		events := s.eventRepo.WithTx(tx)
		lines := s.lineRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		event, err := events.GetHeaderByJunno(junno)
		if err != nil {
			logger.Errorw("event_period_lookup_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.IsAppl == constants.EventStatusEnded {
			return ErrEventEnded
		}

		previous := event.IsAppl
		event.StartDay = start.Format(constants.DateLayout)
		event.EndDay = end.Format(constants.DateLayout)
		next := EventStatusForWindow(event.StartDay, event.EndDay, s.today())

		switch next {
		case constants.EventStatusActive:
			// 계속 적용중이어도 오버레이의 행사 기간을 새 값으로 다시 기록한다
			if err := s.applyLines(lines, products, event); err != nil {
				return err
			}
		case constants.EventStatusWaiting:
			if previous == constants.EventStatusActive {
				if err := s.stopLines(events, lines, products, event); err != nil {
					return err
				}
			}
		case constants.EventStatusEnded:
			if err := s.endLines(events, lines, products, event); err != nil {
				return err
			}
		}

		event.IsAppl = next
		if err := events.UpdateHeader(event); err != nil {
			logger.Errorw("event_period_update_failed", "junno", junno, "error", err)
			return ErrEventUpdateFailed
		}
		result = &EventActionResult{Event: event, Message: periodChangeMessage(next)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("event_period_changed",
		"junno", junno,
		"startday", input.StartDay,
		"endday", input.EndDay,
		"status", result.Event.IsAppl,
	)
	return result, nil
}

func periodChangeMessage(status string) string {
	switch status {
	case constants.EventStatusActive:
		return "행사 기간이 변경되어 바로 적용되었습니다."
	case constants.EventStatusEnded:
		return "변경한 기간이 이미 지나 행사가 종료 처리되었습니다."
	default:
		return "행사 기간이 변경되었습니다."
	}
}

// SweepWindows 기간 경계를 넘은 행사를 일괄 전이한다.
// 시작일이 된 대기 행사는 적용하고, 종료일이 지난 행사는 종료한다.
// 워커의 주기 루프에서 호출되며 행사별로 독립 트랜잭션으로 처리한다
func (s *EventService) SweepWindows(today time.Time) (applied, ended int, err error) {
	events, err := s.eventRepo.ListByStatuses([]string{
		constants.EventStatusWaiting,
		constants.EventStatusActive,
	})
	if err != nil {
		logger.Errorw("event_sweep_list_failed", "error", err)
		return 0, 0, ErrEventUpdateFailed
	}

	for i := range events {
		event := &events[i]
		next := EventStatusForWindow(event.StartDay, event.EndDay, today)
		if next == event.IsAppl {
			continue
		}
		switch next {
		case constants.EventStatusActive:
			if _, err := s.Apply(event.Junno); err != nil {
				logger.Errorw("event_sweep_apply_failed", "junno", event.Junno, "error", err)
				continue
			}
			applied++
		case constants.EventStatusEnded:
			if _, err := s.End(event.Junno); err != nil {
				logger.Errorw("event_sweep_end_failed", "junno", event.Junno, "error", err)
				continue
			}
			ended++
		}
	}
	return applied, ended, nil
}

// applyLines 'D' 제외 품목을 전부 적용 상태로 올리고 상품 오버레이를 기록한다
func (s *EventService) applyLines(
	lines *repository.GormEventLineRepository,
	products *repository.GormProductRepository,
	event *models.EventItem,
) error {
	items, err := lines.ListActiveByJunno(event.Junno)
	if err != nil {
		logger.Errorw("event_apply_lines_failed", "junno", event.Junno, "error", err)
		return ErrEventUpdateFailed
	}
	for i := range items {
		line := &items[i]
		if line.IsAppl != constants.EventStatusActive {
			line.IsAppl = constants.EventStatusActive
			if err := lines.Update(line); err != nil {
				logger.Errorw("event_apply_line_failed", "junno", event.Junno, "barcode", line.Barcode, "error", err)
				return ErrEventUpdateFailed
			}
		}
		product, err := products.GetByBarcode(line.Barcode)
		if err != nil {
			logger.Errorw("event_apply_product_failed", "junno", event.Junno, "barcode", line.Barcode, "error", err)
			return ErrEventUpdateFailed
		}
		if product == nil {
			// 카탈로그에서 빠진 상품은 건너뛴다. 전이 자체를 막을 이유는 없다
			logger.Warnw("event_apply_product_missing", "junno", event.Junno, "barcode", line.Barcode)
			continue
		}
		applyOverlayToProduct(product, event, line)
		if err := products.Update(product); err != nil {
			logger.Errorw("event_apply_overlay_failed", "junno", event.Junno, "barcode", line.Barcode, "error", err)
			return ErrEventUpdateFailed
		}
	}
	return nil
}

// stopLines 품목을 대기로 내린다. 적용 상태였던 품목은 먼저 상품을 복원한다
func (s *EventService) stopLines(
	events *repository.GormEventRepository,
	lines *repository.GormEventLineRepository,
	products *repository.GormProductRepository,
	event *models.EventItem,
) error {
	items, err := lines.ListActiveByJunno(event.Junno)
	if err != nil {
		logger.Errorw("event_stop_lines_failed", "junno", event.Junno, "error", err)
		return ErrEventUpdateFailed
	}
	for i := range items {
		line := &items[i]
		if line.IsAppl == constants.EventStatusActive {
			if err := s.restoreProduct(events, lines, products, line); err != nil {
				return err
			}
		}
		if line.IsAppl != constants.EventStatusWaiting {
			line.IsAppl = constants.EventStatusWaiting
			if err := lines.Update(line); err != nil {
				logger.Errorw("event_stop_line_failed", "junno", event.Junno, "barcode", line.Barcode, "error", err)
				return ErrEventUpdateFailed
			}
		}
	}
	return nil
}

// endLines 모든 품목을 최종 'D' 상태로 내린다. 적용 상태였던 품목은 먼저 복원한다
func (s *EventService) endLines(
	events *repository.GormEventRepository,
	lines *repository.GormEventLineRepository,
	products *repository.GormProductRepository,
	event *models.EventItem,
) error {
	items, err := lines.ListByJunno(event.Junno)
	if err != nil {
		logger.Errorw("event_end_lines_failed", "junno", event.Junno, "error", err)
		return ErrEventUpdateFailed
	}
	for i := range items {
		line := &items[i]
		if line.IsAppl == constants.EventStatusActive {
			if err := s.restoreProduct(events, lines, products, line); err != nil {
				return err
			}
		}
		if line.IsAppl != constants.EventItemRemoved {
			line.IsAppl = constants.EventItemRemoved
			if err := lines.Update(line); err != nil {
				logger.Errorw("event_end_line_failed", "junno", event.Junno, "barcode", line.Barcode, "error", err)
				return ErrEventUpdateFailed
			}
		}
	}
	return nil
}

// restoreProduct 품목이 벗어난 상품의 오버레이를 복원한다.
// 같은 바코드를 품은 다른 적용중 행사가 있으면(시작일 최신 우선) 그쪽 값으로
// 다시 기록하고, 없으면 오버레이를 지우고 판매가를 복원가(OrgMoney1)로 되돌린다
func (s *EventService) restoreProduct(
	events *repository.GormEventRepository,
	lines *repository.GormEventLineRepository,
	products *repository.GormProductRepository,
	line *models.EventLineItem,
) error {
	product, err := products.GetByBarcode(line.Barcode)
	if err != nil {
		logger.Errorw("event_restore_product_failed", "junno", line.Junno, "barcode", line.Barcode, "error", err)
		return ErrEventUpdateFailed
	}
	if product == nil {
		logger.Warnw("event_restore_product_missing", "junno", line.Junno, "barcode", line.Barcode)
		return nil
	}

	other, err := lines.FindLatestActiveForBarcode(line.Barcode, line.Junno)
	if err != nil {
		logger.Errorw("event_restore_fallback_failed", "junno", line.Junno, "barcode", line.Barcode, "error", err)
		return ErrEventUpdateFailed
	}
	if other != nil {
		otherEvent, err := events.GetHeaderByJunno(other.Junno)
		if err != nil {
			logger.Errorw("event_restore_header_failed", "junno", other.Junno, "error", err)
			return ErrEventUpdateFailed
		}
		if otherEvent != nil {
			applyOverlayToProduct(product, otherEvent, other)
			if err := products.Update(product); err != nil {
				logger.Errorw("event_restore_update_failed", "junno", line.Junno, "barcode", line.Barcode, "error", err)
				return ErrEventUpdateFailed
			}
			return nil
		}
	}

	product.ClearOverlay()
	product.SellingPrice = line.OrgMoney1
	if err := products.Update(product); err != nil {
		logger.Errorw("event_restore_update_failed", "junno", line.Junno, "barcode", line.Barcode, "error", err)
		return ErrEventUpdateFailed
	}
	return nil
}

// refreshAggregates 'D' 제외 품목 수와 평균 마진율을 헤더에 다시 기록한다
func (s *EventService) refreshAggregates(
	events *repository.GormEventRepository,
	lines *repository.GormEventLineRepository,
	event *models.EventItem,
) error {
	count, avgRate, err := lines.Aggregate(event.Junno)
	if err != nil {
		logger.Errorw("event_aggregate_failed", "junno", event.Junno, "error", err)
		return ErrEventUpdateFailed
	}
	event.ItemCount = count
	event.AvgMgRate = avgRate
	if err := events.UpdateHeader(event); err != nil {
		logger.Errorw("event_aggregate_update_failed", "junno", event.Junno, "error", err)
		return ErrEventUpdateFailed
	}
	return nil
}

// applyOverlayToProduct 행사 품목 가격을 상품 마스터 오버레이에 기록한다.
// 판매가(SellingPrice)도 행사 판매가로 바뀐다
func applyOverlayToProduct(product *models.Product, event *models.EventItem, line *models.EventLineItem) {
	product.EventCostPrice = line.SaleMoney0
	product.SalePrice = line.SaleMoney1
	product.SaleName = event.SaleName
	product.SaleStartDate = event.StartDay
	product.SaleEndDate = event.EndDay
	product.SellingPrice = line.SaleMoney1
}

// marginRate 행사 마진율 % = floor((행사판매가-행사매입가)/행사판매가 × 100).
// 행사 판매가가 0 이면 0
func marginRate(saleMoney0, saleMoney1 models.Money) int {
	if !saleMoney1.IsPositive() {
		return 0
	}
	rate := saleMoney1.Sub(saleMoney0.Decimal).
		Div(saleMoney1.Decimal).
		Mul(decimal.NewFromInt(100))
	return int(rate.Floor().IntPart())
}
