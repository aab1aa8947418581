package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 查询时使用Preload预加载Book,避免N+1问题
// 2. Create/ExistsByBookAndNotReturned参与事务(事务DB通过context传递)
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
// Preload("Book")会执行:
// 1. SELECT * FROM loans WHERE id = ?
// 2. SELECT * FROM books WHERE id IN (?)
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.db.WithContext(ctx).Preload("Book").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// ExistsByBookAndNotReturned 判断图书是否存在未归还的借阅
// returned IS NULL与returned = false等价(都是未归还)
func (r *loanRepository) ExistsByBookAndNotReturned(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	db := r.getDB(ctx)
	err := db.Model(&LoanModel{}).
		Where("book_id = ?", bookID).
		Where("returned IS NULL OR returned = ?", false).
		Count(&count).Error

	if err != nil {
		return false, apperrors.Wrap(err, "查询借阅状态失败")
	}

	return count > 0, nil
}

// Update 覆盖更新借阅记录
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	model.ID = l.ID
	model.CreatedAt = l.CreatedAt

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询借阅记录
// ISBN筛选需要JOIN books表;Customer做大小写不敏感子串匹配
func (r *loanRepository) List(ctx context.Context, params loan.FindParams) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := r.db.WithContext(ctx).Model(&LoanModel{})

	if params.Customer != "" {
		query = query.Where("LOWER(loans.customer) LIKE ?", containsPattern(params.Customer))
	}
	if params.ISBN != "" {
		query = query.
			Joins("JOIN books ON books.id = loans.book_id").
			Where("books.isbn = ?", params.ISBN)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	err := query.
		Preload("Book").
		Order("loans.id ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}

	return loans, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	l := &loan.Loan{
		ID:            model.ID,
		BookID:        model.BookID,
		Customer:      model.Customer,
		CustomerEmail: model.CustomerEmail,
		LoanDate:      model.LoanDate,
		Returned:      model.Returned,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.Book != nil {
		l.Book = toBookEntity(model.Book)
	}
	return l
}

// toLoanModel 领域实体 → GORM模型
// 注意:不携带Book关联,避免Save时级联写图书表
func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate,
		Returned:      l.Returned,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *loanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}
