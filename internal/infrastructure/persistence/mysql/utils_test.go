package mysql

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

// TestIsDuplicateError 测试唯一索引冲突判断
func TestIsDuplicateError(t *testing.T) {
	testCases := []struct {
		err         error
		expected    bool
		description string
	}{
		{nil, false, "nil错误"},
		{gorm.ErrDuplicatedKey, true, "GORM冲突错误"},
		{fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), true, "包装过的GORM冲突错误"},
		{errors.New("Error 1062 (23000): Duplicate entry '12345678' for key 'books.idx_books_isbn'"), true, "MySQL 1062错误文本"},
		{gorm.ErrRecordNotFound, false, "记录不存在错误"},
		{errors.New("connection refused"), false, "其他错误"},
	}

	for _, tc := range testCases {
		if got := isDuplicateError(tc.err); got != tc.expected {
			t.Errorf("%s: 期望%v, 实际%v", tc.description, tc.expected, got)
		}
	}
}
