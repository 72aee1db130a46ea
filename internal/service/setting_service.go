package service

import (
	"strings"

	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/repository"
)

// 매장 설정에 저장되는 필드 목록. 모르는 필드는 저장하지 않는다
var storeConfigFields = []string{
	constants.SettingFieldStoreName,
	constants.SettingFieldDispatchPhone,
	constants.SettingFieldDefaultCustomer,
}

// SettingService 매장 설정 서비스
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 설정 서비스 생성
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetStoreConfig 매장 설정 조회. 저장된 값이 없으면 빈 기본값으로 채운다
func (s *SettingService) GetStoreConfig() (models.JSON, error) {
	data := models.JSON{}
	for _, field := range storeConfigFields {
		data[field] = ""
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}
	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// UpdateStoreConfig 매장 설정 저장
func (s *SettingService) UpdateStoreConfig(value map[string]interface{}) (models.JSON, error) {
	if value == nil {
		return nil, ErrSettingInvalid
	}
	normalized := normalizeStoreConfig(value)
	setting, err := s.repo.Upsert(constants.SettingKeyStoreConfig, normalized)
	if err != nil {
		logger.Errorw("store_config_upsert_failed", "error", err)
		return nil, ErrSettingUpdateFailed
	}
	return setting.ValueJSON, nil
}

// StoreName 매장 이름. 미설정이면 빈 문자열
func (s *SettingService) StoreName() string {
	if s == nil {
		return ""
	}
	config, err := s.GetStoreConfig()
	if err != nil {
		logger.Warnw("store_config_read_failed", "error", err)
		return ""
	}
	name, _ := config[constants.SettingFieldStoreName].(string)
	return strings.TrimSpace(name)
}

// DefaultCustomer 기본 거래처. 미설정이면 빈 문자열
func (s *SettingService) DefaultCustomer() string {
	if s == nil {
		return ""
	}
	config, err := s.GetStoreConfig()
	if err != nil {
		logger.Warnw("store_config_read_failed", "error", err)
		return ""
	}
	customer, _ := config[constants.SettingFieldDefaultCustomer].(string)
	return strings.TrimSpace(customer)
}

func normalizeStoreConfig(value map[string]interface{}) models.JSON {
	normalized := models.JSON{}
	for _, field := range storeConfigFields {
		raw, ok := value[field]
		if !ok {
			continue
		}
		str, _ := raw.(string)
		normalized[field] = strings.TrimSpace(str)
	}
	return normalized
}
