package main

import (
	"fmt"
	"time"

	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
)

func main() {
	// 데이터베이스 연결
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	// 자동 마이그레이션
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	today := now.Format(constants.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(constants.DateLayout)

	// 거래처
	suppliers := []models.Supplier{
		{Name: "서울우유 대리점", Phone: "02-1234-5678", Manager: "김대현", Memo: "월/수/금 오전 배송"},
		{Name: "농심 영업소", Phone: "031-222-3344", Manager: "박성민", Memo: "박스 단위 발주"},
		{Name: "오뚜기 대리점", Phone: "031-555-6677", Manager: "이소연"},
		{Name: "롯데칠성 대리점", Phone: "02-888-9900", Manager: "최준호", Memo: "음료 전담"},
	}

	for _, sup := range suppliers {
		var existing models.Supplier
		if err := models.DB.Where("name = ?", sup.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&sup).Error; err != nil {
				stdLog.Printf("거래처 생성 실패 %s: %v", sup.Name, err)
			} else {
				stdLog.Printf("거래처 생성: %s", sup.Name)
			}
		} else {
			stdLog.Printf("거래처 이미 존재: %s", sup.Name)
		}
	}

	// 상품
	products := []models.Product{
		{
			Barcode:      "8801115114154",
			Name:         "서울우유 1L",
			Category:     "유제품",
			CostPrice:    models.NewMoneyFromInt(1800),
			SellingPrice: models.NewMoneyFromInt(2500),
			Unit:         "개",
			Supplier:     "서울우유 대리점",
		},
		{
			Barcode:      "8801115116554",
			Name:         "서울우유 커피우유 300ml",
			Category:     "유제품",
			CostPrice:    models.NewMoneyFromInt(950),
			SellingPrice: models.NewMoneyFromInt(1500),
			Unit:         "개",
			Supplier:     "서울우유 대리점",
		},
		{
			Barcode:      "8801043014830",
			Name:         "신라면 5입 멀티팩",
			Category:     "라면",
			CostPrice:    models.NewMoneyFromInt(3100),
			SellingPrice: models.NewMoneyFromInt(3980),
			Unit:         "팩",
			Supplier:     "농심 영업소",
		},
		{
			Barcode:      "8801043036919",
			Name:         "새우깡 90g",
			Category:     "과자",
			CostPrice:    models.NewMoneyFromInt(980),
			SellingPrice: models.NewMoneyFromInt(1500),
			Unit:         "개",
			Supplier:     "농심 영업소",
		},
		{
			Barcode:      "8801045571201",
			Name:         "진라면 순한맛 5입",
			Category:     "라면",
			CostPrice:    models.NewMoneyFromInt(2900),
			SellingPrice: models.NewMoneyFromInt(3780),
			Unit:         "팩",
			Supplier:     "오뚜기 대리점",
		},
		{
			Barcode:      "8801045521008",
			Name:         "오뚜기 케챂 500g",
			Category:     "소스",
			CostPrice:    models.NewMoneyFromInt(2400),
			SellingPrice: models.NewMoneyFromInt(3200),
			Unit:         "개",
			Supplier:     "오뚜기 대리점",
		},
		{
			Barcode:      "8801056241506",
			Name:         "칠성사이다 1.5L",
			Category:     "음료",
			CostPrice:    models.NewMoneyFromInt(1450),
			SellingPrice: models.NewMoneyFromInt(2300),
			Unit:         "개",
			Supplier:     "롯데칠성 대리점",
		},
		{
			Barcode:      "8801056192013",
			Name:         "레쓰비 캔커피 175ml",
			Category:     "음료",
			CostPrice:    models.NewMoneyFromInt(480),
			SellingPrice: models.NewMoneyFromInt(800),
			Unit:         "개",
			Supplier:     "롯데칠성 대리점",
			Memo:         "박스(30입) 발주 시 단가 협의",
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("barcode = ?", prod.Barcode).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("상품 생성 실패 %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("상품 생성: %s (%s)", prod.Name, prod.Barcode)
			}
		} else {
			existing.Name = prod.Name
			existing.Category = prod.Category
			existing.CostPrice = prod.CostPrice
			existing.Unit = prod.Unit
			existing.Supplier = prod.Supplier
			existing.Memo = prod.Memo
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("상품 갱신 실패 %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("상품 갱신: %s (%s)", prod.Name, prod.Barcode)
			}
		}
	}

	// 행사 (대기 상태로 만들어 두면 워커가 기간에 맞춰 적용한다)
	eventName := "우유/라면 주간 특가"
	var existingEvent models.EventItem
	if err := models.DB.Where("sale_name = ?", eventName).First(&existingEvent).Error; err != nil {
		junno := fmt.Sprintf("%s%d", now.Format(constants.JunnoDateLayout), 100001)
		event := models.EventItem{
			Junno:     junno,
			SaleName:  eventName,
			StartDay:  today,
			EndDay:    now.AddDate(0, 0, 6).Format(constants.DateLayout),
			IsAppl:    constants.EventStatusWaiting,
			ItemCount: 2,
			AvgMgRate: 18,
		}
		lines := []models.EventLineItem{
			{
				Junno:      junno,
				Barcode:    "8801115114154",
				Seq:        1,
				Name:       "서울우유 1L",
				SaleMoney0: models.NewMoneyFromInt(1700),
				SaleMoney1: models.NewMoneyFromInt(2190),
				OrgMoney1:  models.NewMoneyFromInt(2500),
				SaleCount:  22,
				IsAppl:     constants.EventStatusWaiting,
			},
			{
				Junno:      junno,
				Barcode:    "8801043014830",
				Seq:        2,
				Name:       "신라면 5입 멀티팩",
				SaleMoney0: models.NewMoneyFromInt(2950),
				SaleMoney1: models.NewMoneyFromInt(3480),
				OrgMoney1:  models.NewMoneyFromInt(3980),
				SaleCount:  15,
				IsAppl:     constants.EventStatusWaiting,
			},
		}
		if err := models.DB.Create(&event).Error; err != nil {
			stdLog.Printf("행사 생성 실패 %s: %v", eventName, err)
		} else if err := models.DB.Create(&lines).Error; err != nil {
			stdLog.Printf("행사 품목 생성 실패 %s: %v", eventName, err)
		} else {
			stdLog.Printf("행사 생성: %s (%s)", eventName, junno)
		}
	} else {
		stdLog.Printf("행사 이미 존재: %s (%s)", eventName, existingEvent.Junno)
	}

	// 완료된 발주 예시 (어제)
	var completedCount int64
	models.DB.Model(&models.Order{}).Where("customer = ? AND order_date = ?", "서울우유 대리점", yesterday).Count(&completedCount)
	if completedCount == 0 {
		orderID := now.AddDate(0, 0, -1).UnixMilli()
		completedAt := now.AddDate(0, 0, -1).Format(time.RFC3339)
		order := models.Order{
			ID:        orderID,
			Customer:  "서울우유 대리점",
			Total:     models.NewMoneyFromInt(12700),
			ItemCount: 2,
			OrderDate: yesterday,
			CompletionDetails: models.JSON{
				"method":       constants.CompletionMethodSMS,
				"completed_at": completedAt,
				"message":      "",
			},
			Items: []models.OrderItem{
				{
					Barcode:     "8801115114154",
					Name:        "서울우유 1L",
					Price:       models.NewMoneyFromInt(1800),
					MasterPrice: models.NewMoneyFromInt(1800),
					Quantity:    6,
					Unit:        "개",
					SortOrder:   1,
				},
				{
					Barcode:     "8801115116554",
					Name:        "서울우유 커피우유 300ml",
					Price:       models.NewMoneyFromInt(950),
					MasterPrice: models.NewMoneyFromInt(950),
					Quantity:    2,
					Unit:        "개",
					SortOrder:   2,
				},
			},
		}
		if err := models.DB.Create(&order).Error; err != nil {
			stdLog.Printf("발주 예시 생성 실패: %v", err)
		} else {
			stdLog.Printf("완료 발주 예시 생성: %d (%s)", order.ID, order.Customer)
		}
	} else {
		stdLog.Printf("완료 발주 예시 이미 존재: 서울우유 대리점 %s", yesterday)
	}

	// 매장 기본 설정
	storeConfig := models.JSON{
		constants.SettingFieldStoreName:       "한아름마트",
		constants.SettingFieldDispatchPhone:   "010-2345-6789",
		constants.SettingFieldDefaultCustomer: "서울우유 대리점",
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyStoreConfig).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeyStoreConfig,
			ValueJSON: storeConfig,
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("매장 설정 생성 실패: %v", err)
		} else {
			stdLog.Println("매장 설정 생성")
		}
	} else {
		setting.ValueJSON = storeConfig
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("매장 설정 갱신 실패: %v", err)
		} else {
			stdLog.Println("매장 설정 갱신")
		}
	}

	fmt.Println("\n✅ 데모 데이터 준비 완료")
	fmt.Println("요약:")
	fmt.Println("- 거래처 4곳")
	fmt.Println("- 상품 8종")
	fmt.Println("- 행사 1건 (대기, 오늘부터 7일)")
	fmt.Println("- 완료 발주 예시 1건")
	fmt.Println("- 매장 설정 (한아름마트)")
}
