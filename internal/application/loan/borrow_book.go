package loan

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// ErrUnknownISBN 所传ISBN没有对应的图书
// 接口语义:借阅时图书通过ISBN定位,找不到属于客户端参数错误(400),
// 不同于按ID查询的404
var ErrUnknownISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "所传ISBN对应的图书不存在")

// BorrowBookUseCase 借书用例
// 设计说明:
// 1. 按ISBN定位图书,构建Loan交给领域服务
// 2. 可用性检查与插入的原子性由领域服务的事务+悲观锁保证
// 3. 成功后发布loan.created事件(尽力而为)
type BorrowBookUseCase struct {
	bookService book.Service
	loanService loan.Service
	publisher   EventPublisher
}

// NewBorrowBookUseCase 创建借书用例
// publisher可为nil(MQ未启用)
func NewBorrowBookUseCase(bookService book.Service, loanService loan.Service, publisher EventPublisher) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookService: bookService,
		loanService: loanService,
		publisher:   publisher,
	}
}

// BorrowBookRequest 借书请求DTO
type BorrowBookRequest struct {
	ISBN          string // 图书ISBN
	Customer      string // 借阅人姓名
	CustomerEmail string // 借阅人邮箱(可选)
}

// LoanResponse 借阅响应DTO(借书/查询/归还共用)
type LoanResponse struct {
	ID            uint   `json:"id"`
	BookID        uint   `json:"book_id"`
	ISBN          string `json:"isbn,omitempty"`
	Title         string `json:"title,omitempty"`
	Customer      string `json:"customer"`
	CustomerEmail string `json:"customer_email,omitempty"`
	LoanDate      string `json:"loan_date"`
	Returned      *bool  `json:"returned"`
}

// Execute 执行借书用例
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*LoanResponse, error) {
	// 1. 按ISBN定位图书
	b, err := uc.bookService.GetBookByISBN(ctx, req.ISBN)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, ErrUnknownISBN
		}
		return nil, err
	}

	// 2. 创建借阅(领域服务负责可用性检查与LoanDate)
	l := loan.NewLoan(b.ID, req.Customer, req.CustomerEmail)
	saved, err := uc.loanService.BorrowBook(ctx, l)
	if err != nil {
		if errors.Is(err, loan.ErrBookAlreadyLoaned) && metrics.LoanConflictsTotal != nil {
			metrics.LoanConflictsTotal.Inc()
		}
		return nil, err
	}

	if metrics.LoansCreatedTotal != nil {
		metrics.LoansCreatedTotal.Inc()
	}

	// 3. 发布借阅创建事件
	publishEvent(uc.publisher, RoutingKeyLoanCreated, LoanCreatedEvent{
		LoanID:        saved.ID,
		BookID:        b.ID,
		ISBN:          b.ISBN,
		Customer:      saved.Customer,
		CustomerEmail: saved.CustomerEmail,
		LoanDate:      saved.LoanDate,
	})

	resp := toLoanResponse(saved)
	resp.ISBN = b.ISBN
	resp.Title = b.Title
	return resp, nil
}

// toLoanResponse 领域实体 → 响应DTO
func toLoanResponse(l *loan.Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:            l.ID,
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate.Format("2006-01-02"),
		Returned:      l.Returned,
	}
	if l.Book != nil {
		resp.ISBN = l.Book.ISBN
		resp.Title = l.Book.Title
	}
	return resp
}
