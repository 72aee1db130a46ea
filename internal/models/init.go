package models

import (
	"strings"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
)

// InitDefaultSettings 매장 기본 설정 행 초기화
func InitDefaultSettings(storeName string) error {
	var count int64
	DB.Model(&Setting{}).Where("key = ?", constants.SettingKeyStoreConfig).Count(&count)
	if count > 0 {
		return nil
	}

	name := strings.TrimSpace(storeName)
	if name == "" {
		name = "발주메이트 매장"
	}

	setting := Setting{
		Key: constants.SettingKeyStoreConfig,
		ValueJSON: JSON{
			constants.SettingFieldStoreName:       name,
			constants.SettingFieldDispatchPhone:   "",
			constants.SettingFieldDefaultCustomer: "",
		},
	}

	if err := DB.Create(&setting).Error; err != nil {
		return err
	}

	logger.Infow("default_store_settings_created", "store_name", name)
	return nil
}
