package rowquery

import (
	"testing"
)

func TestProductFromRowKoreanAliases(t *testing.T) {
	row := Row{
		"바코드":    "8801111111111",
		"상품명":    "새우깡",
		"분류":     "과자",
		"매입가":    "1,200",
		"판매가":    1500.0,
		"행사매입가":  "950",
		"행사판매가":  1300,
		"행사명":    "여름 행사",
		"행사시작일":  "2026-08-01",
		"행사종료일":  "2026-08-31",
		"거래처":    "농심 대리점",
	}

	product, err := ProductFromRow(row)
	if err != nil {
		t.Fatalf("product from row failed: %v", err)
	}
	if product.Barcode != "8801111111111" {
		t.Fatalf("barcode want 8801111111111 got %s", product.Barcode)
	}
	if product.Name != "새우깡" {
		t.Fatalf("name want 새우깡 got %s", product.Name)
	}
	if product.CostPrice.String() != "1200.00" {
		t.Fatalf("cost price want 1200.00 got %s", product.CostPrice.String())
	}
	if product.SellingPrice.String() != "1500.00" {
		t.Fatalf("selling price want 1500.00 got %s", product.SellingPrice.String())
	}
	if product.EventCostPrice.String() != "950.00" {
		t.Fatalf("event cost want 950.00 got %s", product.EventCostPrice.String())
	}
	if product.SalePrice.String() != "1300.00" {
		t.Fatalf("sale price want 1300.00 got %s", product.SalePrice.String())
	}
	if product.SaleStartDate != "2026-08-01" || product.SaleEndDate != "2026-08-31" {
		t.Fatalf("sale window want 2026-08-01..2026-08-31 got %s..%s", product.SaleStartDate, product.SaleEndDate)
	}
	if product.Unit != "개" {
		t.Fatalf("missing unit should default to 개, got %s", product.Unit)
	}
}

func TestProductFromRowLegacyBackingNames(t *testing.T) {
	row := Row{
		"barcode":      "8802222222222",
		"descr":        "서울우유 1L",
		"money0":       2100,
		"money1":       2800,
		"money1comp":   1900,
		"salemoney0":   2500,
		"salename":     "우유 행사",
		"salestartday": "2026-08-10",
		"saleendday":   "2026-08-20",
	}

	product, err := ProductFromRow(row)
	if err != nil {
		t.Fatalf("product from row failed: %v", err)
	}
	if product.Name != "서울우유 1L" {
		t.Fatalf("descr alias want 서울우유 1L got %s", product.Name)
	}
	if product.CostPrice.String() != "2100.00" {
		t.Fatalf("money0 want 2100.00 got %s", product.CostPrice.String())
	}
	if product.EventCostPrice.String() != "1900.00" {
		t.Fatalf("money1comp want 1900.00 got %s", product.EventCostPrice.String())
	}
	if product.SalePrice.String() != "2500.00" {
		t.Fatalf("salemoney0 want 2500.00 got %s", product.SalePrice.String())
	}
	if product.SaleName != "우유 행사" {
		t.Fatalf("salename want 우유 행사 got %s", product.SaleName)
	}
	if product.SaleStartDate != "2026-08-10" {
		t.Fatalf("salestartday want 2026-08-10 got %s", product.SaleStartDate)
	}
}

func TestProductFromRowPrefersStandardNames(t *testing.T) {
	row := Row{
		"barcode":   "8803333333333",
		"name":      "표준 이름",
		"상품명":       "한글 이름",
		"cost_price": "900",
		"매입가":       "999",
	}

	product, err := ProductFromRow(row)
	if err != nil {
		t.Fatalf("product from row failed: %v", err)
	}
	if product.Name != "표준 이름" {
		t.Fatalf("standard alias should win, want 표준 이름 got %s", product.Name)
	}
	if product.CostPrice.String() != "900.00" {
		t.Fatalf("standard cost alias should win, want 900.00 got %s", product.CostPrice.String())
	}
}

func TestProductFromRowWithoutBarcodeFails(t *testing.T) {
	if _, err := ProductFromRow(Row{"name": "바코드 없음"}); err == nil {
		t.Fatalf("row without barcode must fail")
	}
}

func TestProductsFromRowsSkipsBadRows(t *testing.T) {
	rows := []Row{
		{"바코드": "8801111111111", "상품명": "새우깡"},
		{"상품명": "바코드 없는 행"},
		{"barcode": "8802222222222", "name": "서울우유 1L"},
	}

	products := ProductsFromRows(rows)
	if len(products) != 2 {
		t.Fatalf("products len want 2 got %d", len(products))
	}
	if products[0].Barcode != "8801111111111" || products[1].Barcode != "8802222222222" {
		t.Fatalf("unexpected barcodes: %+v", products)
	}
}

func TestDecimalValueParsing(t *testing.T) {
	if _, ok := decimalValue("abc"); ok {
		t.Fatalf("non-numeric string must not parse")
	}
	if _, ok := decimalValue(""); ok {
		t.Fatalf("empty string must not parse")
	}
	if _, ok := decimalValue(nil); ok {
		t.Fatalf("nil must not parse")
	}
	amount, ok := decimalValue("12,345.67")
	if !ok {
		t.Fatalf("comma separated number must parse")
	}
	if amount.StringFixed(2) != "12345.67" {
		t.Fatalf("parsed amount want 12345.67 got %s", amount.StringFixed(2))
	}
}
