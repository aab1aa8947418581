package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	// ISBN冲突时返回ErrISBNDuplicate(唯一索引是最终防线)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN精确查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// ExistsByISBN 判断ISBN是否已登记
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Update 覆盖更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,删除后ISBN可重新登记)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表,返回匹配总数
	List(ctx context.Context, params FindParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 借阅创建时锁定图书行,串行化同一本书的并发借阅
	// 必须在事务内调用(事务DB通过context传递)
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// Filter 图书筛选条件
// 空字段表示不筛选;非空字段做大小写不敏感的子串匹配,多个字段AND组合
type Filter struct {
	Title  string
	Author string
	ISBN   string
}

// FindParams 列表查询参数
type FindParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
	Filter   Filter
}

// Offset 计算LIMIT/OFFSET分页的偏移量
func (p FindParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
