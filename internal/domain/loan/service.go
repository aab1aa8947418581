package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// Service 借阅领域服务接口
type Service interface {
	// BorrowBook 创建借阅
	// 业务规则:同一本书同一时刻最多一条未归还的借阅,
	// 否则返回ErrBookAlreadyLoaned;成功时LoanDate为创建时间
	BorrowBook(ctx context.Context, l *Loan) (*Loan, error)

	// GetLoanByID 根据ID获取借阅记录,不存在返回ErrLoanNotFound
	GetLoanByID(ctx context.Context, id uint) (*Loan, error)

	// UpdateLoan 无条件覆盖更新借阅记录(用于标记归还)
	UpdateLoan(ctx context.Context, l *Loan) error

	// ListLoans 分页查询借阅记录
	ListLoans(ctx context.Context, params FindParams) ([]*Loan, int64, error)
}

// service 领域服务实现
type service struct {
	loans Repository
	books book.Repository
	tx    Transactor
}

// NewService 创建借阅领域服务
func NewService(loans Repository, books book.Repository, tx Transactor) Service {
	return &service{
		loans: loans,
		books: books,
		tx:    tx,
	}
}

// BorrowBook 创建借阅
//
// 并发控制:可用性检查与插入必须是一个原子单元,否则两个并发请求
// 可能都通过检查、都插入成功(同一本书借出两次)。
// 实现方案:悲观锁
//  1. 开启事务
//  2. SELECT FOR UPDATE锁定图书行(同一本书的并发借阅在此排队)
//  3. 检查是否存在未归还的借阅
//  4. 创建借阅记录
//  5. COMMIT释放锁
func (s *service) BorrowBook(ctx context.Context, l *Loan) (*Loan, error) {
	// 1. 参数校验
	if l == nil || l.BookID == 0 {
		return nil, ErrBookRequired
	}
	if l.Customer == "" {
		return nil, ErrCustomerRequired
	}

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 锁定图书行(图书不存在时返回ErrBookNotFound)
		if _, err := s.books.LockByID(txCtx, l.BookID); err != nil {
			return err
		}

		// 3. 可用性检查(锁内执行,检查结果在COMMIT前不会失效)
		exists, err := s.loans.ExistsByBookAndNotReturned(txCtx, l.BookID)
		if err != nil {
			return err
		}
		if exists {
			return ErrBookAlreadyLoaned
		}

		// 4. 借出日期为创建时间
		if l.LoanDate.IsZero() {
			l.LoanDate = time.Now()
		}

		// 5. 持久化(回填自增ID)
		return s.loans.Create(txCtx, l)
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

// GetLoanByID 根据ID获取借阅记录
func (s *service) GetLoanByID(ctx context.Context, id uint) (*Loan, error) {
	return s.loans.FindByID(ctx, id)
}

// UpdateLoan 无条件覆盖更新借阅记录
func (s *service) UpdateLoan(ctx context.Context, l *Loan) error {
	if l == nil || l.ID == 0 {
		return ErrLoanIDRequired
	}

	return s.loans.Update(ctx, l)
}

// ListLoans 分页查询借阅记录
func (s *service) ListLoans(ctx context.Context, params FindParams) ([]*Loan, int64, error) {
	return s.loans.List(ctx, params)
}
