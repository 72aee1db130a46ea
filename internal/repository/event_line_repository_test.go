package repository

import (
	"testing"

	"github.com/balju-mate/internal/constants"
)

func TestEventLineMaxSeqAndAggregate(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "8월 행사", "2026-08-01", "2026-08-31", constants.EventStatusWaiting)

	maxSeq, err := lineRepo.MaxSeq("20260801100001")
	if err != nil {
		t.Fatalf("max seq on empty failed: %v", err)
	}
	if maxSeq != 0 {
		t.Fatalf("empty event max seq want 0 got %d", maxSeq)
	}

	first := createTestEventLine(t, lineRepo, "20260801100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusWaiting)
	second := createTestEventLine(t, lineRepo, "20260801100001", "8802222222222", 2, 1800, 2400, 2800, constants.EventStatusWaiting)
	first.SaleCount = 27
	second.SaleCount = 25
	if err := lineRepo.Update(first); err != nil {
		t.Fatalf("update first line failed: %v", err)
	}
	if err := lineRepo.Update(second); err != nil {
		t.Fatalf("update second line failed: %v", err)
	}

	maxSeq, err = lineRepo.MaxSeq("20260801100001")
	if err != nil {
		t.Fatalf("max seq failed: %v", err)
	}
	if maxSeq != 2 {
		t.Fatalf("max seq want 2 got %d", maxSeq)
	}

	count, avgRate, err := lineRepo.Aggregate("20260801100001")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("item count want 2 got %d", count)
	}
	if avgRate != 26 {
		t.Fatalf("avg rate want 26 got %d", avgRate)
	}
}

func TestEventLineAggregateSkipsRemovedLines(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "8월 행사", "2026-08-01", "2026-08-31", constants.EventStatusActive)

	kept := createTestEventLine(t, lineRepo, "20260801100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusActive)
	removed := createTestEventLine(t, lineRepo, "20260801100001", "8802222222222", 2, 1800, 2400, 2800, constants.EventStatusActive)
	kept.SaleCount = 27
	removed.SaleCount = 99
	removed.IsAppl = constants.EventItemRemoved
	if err := lineRepo.Update(kept); err != nil {
		t.Fatalf("update kept line failed: %v", err)
	}
	if err := lineRepo.Update(removed); err != nil {
		t.Fatalf("update removed line failed: %v", err)
	}

	count, avgRate, err := lineRepo.Aggregate("20260801100001")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("item count should skip removed, want 1 got %d", count)
	}
	if avgRate != 27 {
		t.Fatalf("avg rate should skip removed, want 27 got %d", avgRate)
	}

	active, err := lineRepo.ListActiveByJunno("20260801100001")
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 || active[0].Barcode != kept.Barcode {
		t.Fatalf("active lines want only %s got %+v", kept.Barcode, active)
	}

	all, err := lineRepo.ListByJunno("20260801100001")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("removed line must stay stored, want 2 got %d", len(all))
	}
}

func TestFindLatestActiveForBarcodePrefersNewestStart(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260701100001", "7월 행사", "2026-07-01", "2026-09-30", constants.EventStatusActive)
	createTestEvent(t, eventRepo, "20260810100001", "8월 행사", "2026-08-10", "2026-08-31", constants.EventStatusActive)
	createTestEvent(t, eventRepo, "20260820100001", "대기 행사", "2026-08-20", "2026-08-31", constants.EventStatusWaiting)

	createTestEventLine(t, lineRepo, "20260701100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusActive)
	createTestEventLine(t, lineRepo, "20260810100001", "8801111111111", 1, 850, 1200, 1300, constants.EventStatusActive)
	createTestEventLine(t, lineRepo, "20260820100001", "8801111111111", 1, 880, 1250, 1300, constants.EventStatusWaiting)

	line, err := lineRepo.FindLatestActiveForBarcode("8801111111111", "")
	if err != nil {
		t.Fatalf("find latest active failed: %v", err)
	}
	if line == nil || line.Junno != "20260810100001" {
		t.Fatalf("latest active want 20260810100001 got %+v", line)
	}

	line, err = lineRepo.FindLatestActiveForBarcode("8801111111111", "20260810100001")
	if err != nil {
		t.Fatalf("find latest excluding failed: %v", err)
	}
	if line == nil || line.Junno != "20260701100001" {
		t.Fatalf("excluding newest should fall back to 20260701100001 got %+v", line)
	}

	line, err = lineRepo.FindLatestActiveForBarcode("0000000000000", "")
	if err != nil {
		t.Fatalf("find for unknown barcode failed: %v", err)
	}
	if line != nil {
		t.Fatalf("unknown barcode want nil got %+v", line)
	}
}

func TestFindLatestActiveForBarcodeSkipsRemovedLines(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260810100001", "8월 행사", "2026-08-10", "2026-08-31", constants.EventStatusActive)
	line := createTestEventLine(t, lineRepo, "20260810100001", "8801111111111", 1, 850, 1200, 1300, constants.EventStatusActive)

	line.IsAppl = constants.EventItemRemoved
	if err := lineRepo.Update(line); err != nil {
		t.Fatalf("mark line removed failed: %v", err)
	}

	got, err := lineRepo.FindLatestActiveForBarcode("8801111111111", "")
	if err != nil {
		t.Fatalf("find latest active failed: %v", err)
	}
	if got != nil {
		t.Fatalf("removed line should not be found, got %+v", got)
	}
}

func TestCountWindowOverlaps(t *testing.T) {
	eventRepo, lineRepo, _ := setupEventRepositoryTest(t)
	createTestEvent(t, eventRepo, "20260801100001", "8월 행사", "2026-08-01", "2026-08-31", constants.EventStatusActive)
	createTestEvent(t, eventRepo, "20260901100001", "9월 행사", "2026-09-01", "2026-09-30", constants.EventStatusWaiting)
	createTestEvent(t, eventRepo, "20260701100001", "지난 행사", "2026-07-01", "2026-07-31", constants.EventStatusEnded)

	createTestEventLine(t, lineRepo, "20260801100001", "8801111111111", 1, 800, 1100, 1300, constants.EventStatusActive)
	createTestEventLine(t, lineRepo, "20260901100001", "8801111111111", 1, 820, 1150, 1300, constants.EventStatusWaiting)
	createTestEventLine(t, lineRepo, "20260701100001", "8801111111111", 1, 790, 1050, 1300, constants.EventStatusWaiting)

	// 8월 말에서 9월 초까지 걸치는 기간: 8월 행사와 9월 행사 모두 겹친다
	count, err := lineRepo.CountWindowOverlaps("8801111111111", "2026-08-25", "2026-09-05", "")
	if err != nil {
		t.Fatalf("count overlaps failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("overlaps want 2 got %d", count)
	}

	// 종료('2')된 행사는 겹침으로 세지 않는다
	count, err = lineRepo.CountWindowOverlaps("8801111111111", "2026-07-10", "2026-07-20", "")
	if err != nil {
		t.Fatalf("count overlaps ended failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("ended event overlaps want 0 got %d", count)
	}

	// 자기 자신의 전표는 제외한다
	count, err = lineRepo.CountWindowOverlaps("8801111111111", "2026-08-25", "2026-09-05", "20260801100001")
	if err != nil {
		t.Fatalf("count overlaps excluding failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("overlaps excluding self want 1 got %d", count)
	}

	// 겹치지 않는 기간
	count, err = lineRepo.CountWindowOverlaps("8801111111111", "2026-10-01", "2026-10-15", "")
	if err != nil {
		t.Fatalf("count overlaps disjoint failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("disjoint overlaps want 0 got %d", count)
	}
}
