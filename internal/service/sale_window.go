package service

import (
	"strings"
	"time"

	"github.com/balju-mate/internal/constants"
)

// 판매 기간 해석에 허용하는 날짜 형식. 시각이 붙어 있어도 날짜만 취한다.
var saleDateLayouts = []string{
	constants.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// IsSaleActiveOn 판매 기간이 기준일에 유효한지 평가한다.
//
// 상품이나 발주 품목 스냅샷의 행사 필드는 이 판정을 통과한 뒤에만 신뢰한다.
// 종료일이 없으면 항상 무효. 시작일과 종료일이 모두 있으면 날짜 단위로
// 시작일 <= 기준일 <= 종료일. 종료일만 있는 레거시 형태는 기준일 <= 종료일.
// 해석할 수 없는 날짜는 무효로 본다.
func IsSaleActiveOn(startDate, endDate string, today time.Time) bool {
	end, ok := parseSaleDate(endDate)
	if !ok {
		return false
	}
	day := dateOnly(today)

	if strings.TrimSpace(startDate) != "" {
		start, ok := parseSaleDate(startDate)
		if !ok {
			return false
		}
		return !day.Before(start) && !day.After(end)
	}
	return !day.After(end)
}

// EventStatusForWindow 행사 기간으로부터 상태 코드를 산출한다.
// 시작 전이면 대기, 종료 후면 종료, 기간 안이면 적용중.
// 해석할 수 없는 날짜는 대기로 둔다.
func EventStatusForWindow(startDay, endDay string, today time.Time) string {
	start, startOK := parseSaleDate(startDay)
	end, endOK := parseSaleDate(endDay)
	if !startOK || !endOK {
		return constants.EventStatusWaiting
	}
	day := dateOnly(today)
	if day.Before(start) {
		return constants.EventStatusWaiting
	}
	if day.After(end) {
		return constants.EventStatusEnded
	}
	return constants.EventStatusActive
}

// parseSaleDate 날짜 문자열을 자정 기준으로 해석한다
func parseSaleDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range saleDateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return dateOnly(parsed), true
		}
	}
	return time.Time{}, false
}

// dateOnly 시각을 버리고 날짜만 남긴다
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
