package service

import (
	"strings"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"

	"gorm.io/gorm"
)

// ProductService 상품 마스터 관리
//
// 행사 오버레이 필드는 행사 라이프사이클이 소유한다. 여기서는 기준 필드만
// 다루고 오버레이는 절대 건드리지 않는다.
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 상품 서비스 생성
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductCreateInput 상품 등록 입력
type ProductCreateInput struct {
	Barcode      string       `json:"barcode" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Category     string       `json:"category" binding:"required"`
	CostPrice    models.Money `json:"cost_price"`
	SellingPrice models.Money `json:"selling_price"`
	Unit         string       `json:"unit"`
	Supplier     string       `json:"supplier"`
	Memo         string       `json:"memo"`
}

// ProductUpdateInput 상품 수정 입력. nil 필드는 그대로 둔다
type ProductUpdateInput struct {
	Name         *string       `json:"name"`
	Category     *string       `json:"category"`
	CostPrice    *models.Money `json:"cost_price"`
	SellingPrice *models.Money `json:"selling_price"`
	Unit         *string       `json:"unit"`
	Supplier     *string       `json:"supplier"`
	Memo         *string       `json:"memo"`
}

// ProductListInput 상품 목록 조회 입력
type ProductListInput struct {
	Page       int
	PageSize   int
	Search     string
	Category   string
	Supplier   string
	OnSaleOnly bool
}

// Get 바코드로 상품 조회
func (s *ProductService) Get(barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrProductInvalid
	}
	product, err := s.repo.GetByBarcode(barcode)
	if err != nil {
		logger.Errorw("product_get_failed", "barcode", barcode, "error", err)
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 상품 목록 조회
func (s *ProductService) List(input ProductListInput) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Search:     strings.TrimSpace(input.Search),
		Category:   strings.TrimSpace(input.Category),
		Supplier:   strings.TrimSpace(input.Supplier),
		OnSaleOnly: input.OnSaleOnly,
	})
}

// Create 상품 등록. 바코드, 상품명, 분류는 비울 수 없다
func (s *ProductService) Create(input ProductCreateInput) (*models.Product, error) {
	barcode := strings.TrimSpace(input.Barcode)
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if barcode == "" || name == "" || category == "" {
		return nil, ErrProductInvalid
	}
	if input.CostPrice.IsNegative() || input.SellingPrice.IsNegative() {
		return nil, ErrProductInvalid
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = constants.UnitPiece
	}

	product := &models.Product{
		Barcode:      barcode,
		Name:         name,
		Category:     category,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		Unit:         unit,
		Supplier:     strings.TrimSpace(input.Supplier),
		Memo:         strings.TrimSpace(input.Memo),
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.GetByBarcode(barcode)
		if err != nil {
			logger.Errorw("product_create_lookup_failed", "barcode", barcode, "error", err)
			return ErrProductCreateFailed
		}
		if existing != nil {
			return ErrProductExists
		}
		if err := repo.Create(product); err != nil {
			logger.Errorw("product_create_failed", "barcode", barcode, "error", err)
			return ErrProductCreateFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("product_created", "barcode", barcode, "name", name)
	return product, nil
}

// Update 상품 수정. 채워진 필드만 반영한다
func (s *ProductService) Update(barcode string, input ProductUpdateInput) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrProductInvalid
	}

	var updated *models.Product
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.GetByBarcode(barcode)
		if err != nil {
			logger.Errorw("product_update_lookup_failed", "barcode", barcode, "error", err)
			return ErrProductUpdateFailed
		}
		if product == nil {
			return ErrProductNotFound
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrProductInvalid
			}
			product.Name = name
		}
		if input.Category != nil {
			category := strings.TrimSpace(*input.Category)
			if category == "" {
				return ErrProductInvalid
			}
			product.Category = category
		}
		if input.CostPrice != nil {
			if input.CostPrice.IsNegative() {
				return ErrProductInvalid
			}
			product.CostPrice = *input.CostPrice
		}
		if input.SellingPrice != nil {
			if input.SellingPrice.IsNegative() {
				return ErrProductInvalid
			}
			product.SellingPrice = *input.SellingPrice
		}
		if input.Unit != nil {
			unit := strings.TrimSpace(*input.Unit)
			if unit == "" {
				unit = constants.UnitPiece
			}
			product.Unit = unit
		}
		if input.Supplier != nil {
			product.Supplier = strings.TrimSpace(*input.Supplier)
		}
		if input.Memo != nil {
			product.Memo = strings.TrimSpace(*input.Memo)
		}

		if err := repo.Update(product); err != nil {
			logger.Errorw("product_update_failed", "barcode", barcode, "error", err)
			return ErrProductUpdateFailed
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("product_updated", "barcode", barcode)
	return updated, nil
}

// Delete 상품 삭제 (소프트 삭제)
func (s *ProductService) Delete(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return ErrProductInvalid
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.GetByBarcode(barcode)
		if err != nil {
			logger.Errorw("product_delete_lookup_failed", "barcode", barcode, "error", err)
			return ErrProductDeleteFailed
		}
		if product == nil {
			return ErrProductNotFound
		}
		if err := repo.Delete(barcode); err != nil {
			logger.Errorw("product_delete_failed", "barcode", barcode, "error", err)
			return ErrProductDeleteFailed
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Infow("product_deleted", "barcode", barcode)
	return nil
}
