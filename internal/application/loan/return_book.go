package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnBookUseCase 还书用例
// 流程:按ID查询借阅(不存在返回404)→设置归还标记→覆盖保存
// 归还后图书重新可借(可用性检查只统计未归还的借阅)
type ReturnBookUseCase struct {
	loanService loan.Service
	publisher   EventPublisher
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(loanService loan.Service, publisher EventPublisher) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		loanService: loanService,
		publisher:   publisher,
	}
}

// Execute 执行还书用例
// returned取请求中的显式值:接口允许传false,但领域不支持已还记录"复活",
// 再次借阅产生新的Loan而不是清除归还标记
func (uc *ReturnBookUseCase) Execute(ctx context.Context, id uint, returned bool) (*LoanResponse, error) {
	// 1. 查询借阅记录(不存在时透传ErrLoanNotFound)
	l, err := uc.loanService.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 设置归还标记
	l.MarkReturned(returned)

	// 3. 持久化
	if err := uc.loanService.UpdateLoan(ctx, l); err != nil {
		return nil, err
	}

	if returned && metrics.LoansReturnedTotal != nil {
		metrics.LoansReturnedTotal.Inc()
	}

	// 4. 发布归还事件
	publishEvent(uc.publisher, RoutingKeyLoanReturned, LoanReturnedEvent{
		LoanID:   l.ID,
		BookID:   l.BookID,
		Returned: returned,
	})

	return toLoanResponse(l), nil
}
