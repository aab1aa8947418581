package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突(ISBN重复的兜底检测)
// 并发场景下ExistsByISBN预检查可能漏判,最终由books.isbn唯一索引拦截,
// 此处将MySQL 1062(Duplicate entry)错误识别出来交给仓储层转换为业务错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// containsPattern 生成大小写不敏感的LIKE子串模式
// 图书和借阅列表的筛选条件共用
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
