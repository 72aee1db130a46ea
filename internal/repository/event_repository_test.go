package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEventRepositoryTest(t *testing.T) (*GormEventRepository, *GormEventLineRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.EventItem{}, &models.EventLineItem{}); err != nil {
		t.Fatalf("migrate event models failed: %v", err)
	}
	return NewEventRepository(db), NewEventLineRepository(db), db
}

func createTestEvent(t *testing.T, repo *GormEventRepository, junno, saleName, startDay, endDay, status string) *models.EventItem {
	t.Helper()
	event := &models.EventItem{
		Junno:    junno,
		SaleName: saleName,
		StartDay: startDay,
		EndDay:   endDay,
		IsAppl:   status,
	}
	if err := repo.Create(event); err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	return event
}

func createTestEventLine(t *testing.T, repo *GormEventLineRepository, junno, barcode string, seq int, sale0, sale1, org1 int64, status string) *models.EventLineItem {
	t.Helper()
	line := &models.EventLineItem{
		Junno:      junno,
		Barcode:    barcode,
		Seq:        seq,
		Name:       "행사 상품 " + barcode,
		SaleMoney0: models.NewMoneyFromInt(sale0),
		SaleMoney1: models.NewMoneyFromInt(sale1),
		OrgMoney1:  models.NewMoneyFromInt(org1),
		IsAppl:     status,
	}
	if err := repo.Create(line); err != nil {
		t.Fatalf("create event line failed: %v", err)
	}
	return line
}

func TestEventGetByJunnoPreloadsItemsBySeq(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "8월 행사", "2026-08-01", "2026-08-31", constants.EventStatusWaiting)
	createTestEventLine(t, lineRepo, "20260801100001", "8802222222222", 2, 1800, 2400, 2800, constants.EventStatusWaiting)
	createTestEventLine(t, lineRepo, "20260801100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusWaiting)

	got, err := eventRepo.GetByJunno("20260801100001")
	if err != nil {
		t.Fatalf("get event failed: %v", err)
	}
	if got == nil {
		t.Fatalf("event should exist")
	}
	if len(got.Items) != 2 {
		t.Fatalf("items len want 2 got %d", len(got.Items))
	}
	if got.Items[0].Seq != 1 || got.Items[1].Seq != 2 {
		t.Fatalf("items should be ordered by seq, got %d then %d", got.Items[0].Seq, got.Items[1].Seq)
	}

	missing, err := eventRepo.GetByJunno("20990101100001")
	if err != nil {
		t.Fatalf("get missing event failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing event want nil got %+v", missing)
	}
}

func TestEventListByStatusAndSearch(t *testing.T) {
	eventRepo, _, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "여름 특가", "2026-08-01", "2026-08-15", constants.EventStatusActive)
	createTestEvent(t, eventRepo, "20260810100001", "가을 준비", "2026-09-01", "2026-09-15", constants.EventStatusWaiting)
	createTestEvent(t, eventRepo, "20260701100001", "지난 행사", "2026-07-01", "2026-07-15", constants.EventStatusEnded)

	rows, total, err := eventRepo.List(EventListFilter{Page: 1, PageSize: 10, Status: constants.EventStatusActive})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || rows[0].Junno != "20260801100001" {
		t.Fatalf("active events want 20260801100001 got total=%d rows=%+v", total, rows)
	}

	rows, total, err = eventRepo.List(EventListFilter{Page: 1, PageSize: 10, Search: "가을"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || rows[0].SaleName != "가을 준비" {
		t.Fatalf("search 가을 want 가을 준비 got total=%d rows=%+v", total, rows)
	}

	rows, _, err = eventRepo.List(EventListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(rows) != 3 || rows[0].Junno != "20260810100001" {
		t.Fatalf("list should be junno desc, got %+v", rows)
	}
}

func TestEventListByStatuses(t *testing.T) {
	eventRepo, _, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "여름 특가", "2026-08-01", "2026-08-15", constants.EventStatusActive)
	createTestEvent(t, eventRepo, "20260810100001", "가을 준비", "2026-09-01", "2026-09-15", constants.EventStatusWaiting)
	createTestEvent(t, eventRepo, "20260701100001", "지난 행사", "2026-07-01", "2026-07-15", constants.EventStatusEnded)

	rows, err := eventRepo.ListByStatuses([]string{constants.EventStatusWaiting, constants.EventStatusActive})
	if err != nil {
		t.Fatalf("list by statuses failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("waiting+active want 2 got %d", len(rows))
	}

	rows, err = eventRepo.ListByStatuses(nil)
	if err != nil {
		t.Fatalf("list by empty statuses failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("empty statuses want 0 got %d", len(rows))
	}
}

func TestEventDeleteRemovesLines(t *testing.T) {
	eventRepo, lineRepo, db := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "8월 행사", "2026-08-01", "2026-08-31", constants.EventStatusWaiting)
	createTestEventLine(t, lineRepo, "20260801100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusWaiting)

	if err := eventRepo.Delete("20260801100001"); err != nil {
		t.Fatalf("delete event failed: %v", err)
	}

	exists, err := eventRepo.ExistsByJunno("20260801100001")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Fatalf("deleted event should not exist")
	}

	var lineCount int64
	if err := db.Model(&models.EventLineItem{}).Where("junno = ?", "20260801100001").Count(&lineCount).Error; err != nil {
		t.Fatalf("count lines failed: %v", err)
	}
	if lineCount != 0 {
		t.Fatalf("line rows want 0 got %d", lineCount)
	}
}
