package service

import (
	"strings"

	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"
)

// SupplierService 거래처 관리
type SupplierService struct {
	repo repository.SupplierRepository
}

// NewSupplierService 거래처 서비스 생성
func NewSupplierService(repo repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

// SupplierInput 거래처 등록/수정 입력
type SupplierInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Manager string `json:"manager"`
	Memo    string `json:"memo"`
}

// SupplierListInput 거래처 목록 조회 입력
type SupplierListInput struct {
	Page     int
	PageSize int
	Search   string
}

// List 거래처 목록 조회
func (s *SupplierService) List(input SupplierListInput) ([]models.Supplier, int64, error) {
	return s.repo.List(repository.SupplierListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   strings.TrimSpace(input.Search),
	})
}

// Create 거래처 등록. 거래처명은 중복될 수 없다
func (s *SupplierService) Create(input SupplierInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSupplierInvalid
	}
	existing, err := s.repo.GetByName(name)
	if err != nil {
		logger.Errorw("supplier_create_lookup_failed", "name", name, "error", err)
		return nil, ErrSupplierCreateFailed
	}
	if existing != nil {
		return nil, ErrSupplierExists
	}

	supplier := &models.Supplier{
		Name:    name,
		Phone:   strings.TrimSpace(input.Phone),
		Manager: strings.TrimSpace(input.Manager),
		Memo:    strings.TrimSpace(input.Memo),
	}
	if err := s.repo.Create(supplier); err != nil {
		logger.Errorw("supplier_create_failed", "name", name, "error", err)
		return nil, ErrSupplierCreateFailed
	}
	logger.Infow("supplier_created", "supplier_id", supplier.ID, "name", name)
	return supplier, nil
}

// Update 거래처 수정
func (s *SupplierService) Update(id uint, input SupplierInput) (*models.Supplier, error) {
	if id == 0 {
		return nil, ErrSupplierInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSupplierInvalid
	}

	supplier, err := s.repo.GetByID(id)
	if err != nil {
		logger.Errorw("supplier_update_lookup_failed", "supplier_id", id, "error", err)
		return nil, ErrSupplierUpdateFailed
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	if name != supplier.Name {
		existing, err := s.repo.GetByName(name)
		if err != nil {
			logger.Errorw("supplier_update_name_check_failed", "name", name, "error", err)
			return nil, ErrSupplierUpdateFailed
		}
		if existing != nil {
			return nil, ErrSupplierExists
		}
	}

	supplier.Name = name
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Manager = strings.TrimSpace(input.Manager)
	supplier.Memo = strings.TrimSpace(input.Memo)
	if err := s.repo.Update(supplier); err != nil {
		logger.Errorw("supplier_update_failed", "supplier_id", id, "error", err)
		return nil, ErrSupplierUpdateFailed
	}
	logger.Infow("supplier_updated", "supplier_id", id, "name", name)
	return supplier, nil
}

// Delete 거래처 삭제 (소프트 삭제)
func (s *SupplierService) Delete(id uint) error {
	if id == 0 {
		return ErrSupplierInvalid
	}
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		logger.Errorw("supplier_delete_lookup_failed", "supplier_id", id, "error", err)
		return ErrSupplierDeleteFailed
	}
	if supplier == nil {
		return ErrSupplierNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		logger.Errorw("supplier_delete_failed", "supplier_id", id, "error", err)
		return ErrSupplierDeleteFailed
	}
	logger.Infow("supplier_deleted", "supplier_id", id, "name", supplier.Name)
	return nil
}
