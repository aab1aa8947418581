package loan

import (
	"context"
)

// Repository 借阅仓储接口
// 由domain层定义,infrastructure层实现
type Repository interface {
	// Create 创建借阅记录(回填自增ID)
	// 借阅创建在事务内执行,事务DB通过context传递
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录(预加载Book),不存在返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// ExistsByBookAndNotReturned 判断图书是否存在未归还的借阅
	// returned为NULL或false都算未归还
	ExistsByBookAndNotReturned(ctx context.Context, bookID uint) (bool, error)

	// Update 覆盖更新借阅记录(用于归还)
	Update(ctx context.Context, loan *Loan) error

	// List 分页查询借阅记录(预加载Book),返回匹配总数
	List(ctx context.Context, params FindParams) ([]*Loan, int64, error)
}

// Transactor 事务执行器
// 设计说明:domain层只依赖这个小接口,具体实现(mysql.TxManager)在infrastructure层,
// fn内通过context传递事务DB,保证可用性检查与插入在同一事务中
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FindParams 借阅列表查询参数
// Customer做大小写不敏感子串匹配,ISBN精确匹配关联图书,空字段忽略
type FindParams struct {
	Page     int
	PageSize int
	Customer string
	ISBN     string
}

// Offset 计算分页偏移量
func (p FindParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
