package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book是图书聚合的根实体
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 不依赖GORM,持久化模型定义在infrastructure层
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	ISBN      string // ISBN号(国际标准书号)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, author, isbn string) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新图书基本信息(领域行为)
// 借阅流程中只允许修改书名和作者,ISBN登记后不变
func (b *Book) UpdateInfo(title, author string) {
	b.Title = title
	b.Author = author
	b.UpdatedAt = time.Now()
}
