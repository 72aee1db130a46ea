package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 데이터베이스 방언 이름을 반환한다. 기본값은 sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildLikeCondition 일반 컬럼들에 대한 LIKE 조건과 필요한 인자 개수를 반환한다.
func buildLikeCondition(db *gorm.DB, plainColumns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), plainColumns)
}

func buildLikeConditionByDialect(dialect string, plainColumns []string) (string, int) {
	parts := make([]string, 0, len(plainColumns))
	argCount := 0
	operator := likeOperatorByDialect(dialect)

	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		argCount++
	}

	return strings.Join(parts, " OR "), argCount
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 동일한 LIKE 인자를 count 개 복제한다.
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
