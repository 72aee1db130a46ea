package rowquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/models"

	"github.com/shopspring/decimal"
)

// 본사 POS 컬럼 별칭 표. 브리지가 돌려주는 행은 영문 표준명, 한글 상품관리
// 컬럼명, 레거시 백킹 스토어 이름(money1comp/salemoney0 계열)이 섞여 있어
// 이 경계에서 전부 표준 필드로 정규화한다.
var (
	barcodeAliases       = []string{"barcode", "바코드"}
	nameAliases          = []string{"name", "상품명", "descr"}
	categoryAliases      = []string{"category", "분류"}
	unitAliases          = []string{"unit", "단위"}
	supplierAliases      = []string{"supplier", "거래처"}
	costPriceAliases     = []string{"cost_price", "매입가", "money0"}
	sellingPriceAliases  = []string{"selling_price", "판매가", "money1"}
	eventCostAliases     = []string{"event_cost_price", "행사매입가", "money1comp"}
	salePriceAliases     = []string{"sale_price", "행사판매가", "salemoney0"}
	saleNameAliases      = []string{"sale_name", "행사명", "salename"}
	saleStartDateAliases = []string{"sale_start_date", "행사시작일", "salestartday"}
	saleEndDateAliases   = []string{"sale_end_date", "행사종료일", "saleendday"}
)

// ProductFromRow 원시 행을 상품 마스터 값으로 정규화한다. 바코드가 없으면 에러.
func ProductFromRow(row Row) (*models.Product, error) {
	barcode := stringField(row, barcodeAliases)
	if barcode == "" {
		return nil, fmt.Errorf("%w: row has no barcode", ErrResponseInvalid)
	}
	product := &models.Product{
		Barcode:        barcode,
		Name:           stringField(row, nameAliases),
		Category:       stringField(row, categoryAliases),
		Unit:           stringField(row, unitAliases),
		Supplier:       stringField(row, supplierAliases),
		CostPrice:      moneyField(row, costPriceAliases),
		SellingPrice:   moneyField(row, sellingPriceAliases),
		EventCostPrice: moneyField(row, eventCostAliases),
		SalePrice:      moneyField(row, salePriceAliases),
		SaleName:       stringField(row, saleNameAliases),
		SaleStartDate:  stringField(row, saleStartDateAliases),
		SaleEndDate:    stringField(row, saleEndDateAliases),
	}
	if product.Unit == "" {
		product.Unit = constants.UnitPiece
	}
	return product, nil
}

// ProductsFromRows 행 목록을 정규화한다. 바코드 없는 행은 건너뛴다.
func ProductsFromRows(rows []Row) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		product, err := ProductFromRow(row)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}
	return products
}

// FetchProductByBarcode 브리지에서 바코드로 상품 한 건을 조회한다. 없으면 (nil, nil)
func FetchProductByBarcode(ctx context.Context, executor Executor, barcode string) (*models.Product, error) {
	if executor == nil {
		return nil, ErrBridgeDisabled
	}
	rows, err := executor.Query(ctx, constants.QueryProductByBarcode, map[string]interface{}{
		"barcode": barcode,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return ProductFromRow(rows[0])
}

// SearchProducts 브리지에서 상품명/바코드 검색을 실행한다
func SearchProducts(ctx context.Context, executor Executor, term string, limit int) ([]models.Product, error) {
	if executor == nil {
		return nil, ErrBridgeDisabled
	}
	rows, err := executor.Query(ctx, constants.QueryProductSearch, map[string]interface{}{
		"term":  term,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	return ProductsFromRows(rows), nil
}

// FetchCatalogPage 브리지에서 카탈로그 한 페이지를 조회한다
func FetchCatalogPage(ctx context.Context, executor Executor, page, pageSize int) ([]models.Product, error) {
	if executor == nil {
		return nil, ErrBridgeDisabled
	}
	rows, err := executor.Query(ctx, constants.QueryCatalogPage, map[string]interface{}{
		"page":      page,
		"page_size": pageSize,
	})
	if err != nil {
		return nil, err
	}
	return ProductsFromRows(rows), nil
}

// stringField 별칭 순서대로 첫 번째로 존재하는 문자열 값을 반환
func stringField(row Row, aliases []string) string {
	for _, key := range aliases {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		if s := stringValue(value); s != "" {
			return s
		}
	}
	return ""
}

// moneyField 별칭 순서대로 첫 번째로 존재하는 금액 값을 반환
func moneyField(row Row, aliases []string) models.Money {
	for _, key := range aliases {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		if amount, ok := decimalValue(value); ok {
			return models.NewMoneyFromDecimal(amount)
		}
	}
	return models.Money{}
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// decimalValue 금액 값 해석. 문자열은 천 단위 콤마를 허용한다
func decimalValue(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if cleaned == "" {
			return decimal.Decimal{}, false
		}
		amount, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return amount, true
	default:
		return decimal.Decimal{}, false
	}
}
