package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSupplierServiceTest(t *testing.T) *SupplierService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Supplier{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewSupplierService(repository.NewSupplierRepository(db))
}

func TestSupplierServiceCreateRejectsDuplicateName(t *testing.T) {
	svc := setupSupplierServiceTest(t)

	created, err := svc.Create(SupplierInput{Name: " 한마트 ", Phone: "010-1234-5678", Manager: "김대리"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "한마트" {
		t.Fatalf("name must be trimmed: %q", created.Name)
	}

	if _, err := svc.Create(SupplierInput{Name: "한마트"}); !errors.Is(err, ErrSupplierExists) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if _, err := svc.Create(SupplierInput{Name: "  "}); !errors.Is(err, ErrSupplierInvalid) {
		t.Fatalf("expected invalid empty name, got %v", err)
	}
}

func TestSupplierServiceUpdateAndDelete(t *testing.T) {
	svc := setupSupplierServiceTest(t)
	first, err := svc.Create(SupplierInput{Name: "한마트"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(SupplierInput{Name: "동성상사"}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	updated, err := svc.Update(first.ID, SupplierInput{Name: "한마트 본점", Phone: "02-100-2000"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "한마트 본점" || updated.Phone != "02-100-2000" {
		t.Fatalf("unexpected supplier: %+v", updated)
	}

	// 다른 거래처 이름으로는 바꿀 수 없다
	if _, err := svc.Update(first.ID, SupplierInput{Name: "동성상사"}); !errors.Is(err, ErrSupplierExists) {
		t.Fatalf("expected name conflict, got %v", err)
	}
	if _, err := svc.Update(9999, SupplierInput{Name: "없는 거래처"}); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(first.ID); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("expected not found on re-delete, got %v", err)
	}

	remaining, total, err := svc.List(SupplierListInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(remaining) != 1 || remaining[0].Name != "동성상사" {
		t.Fatalf("unexpected list: total=%d %+v", total, remaining)
	}
}
