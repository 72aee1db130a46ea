package repository

// ProductListFilter 상품 목록 조회 필터
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	Category   string
	Supplier   string
	OnSaleOnly bool
}

// OrderListFilter 발주 목록 조회 필터
type OrderListFilter struct {
	Page     int
	PageSize int
	Customer string
	DateFrom string
	DateTo   string
}

// EventListFilter 행사 목록 조회 필터
type EventListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// SupplierListFilter 거래처 목록 조회 필터
type SupplierListFilter struct {
	Page     int
	PageSize int
	Search   string
}
