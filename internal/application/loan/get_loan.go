package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// GetLoanUseCase 借阅详情查询用例
type GetLoanUseCase struct {
	loanService loan.Service
}

// NewGetLoanUseCase 创建借阅详情查询用例
func NewGetLoanUseCase(loanService loan.Service) *GetLoanUseCase {
	return &GetLoanUseCase{
		loanService: loanService,
	}
}

// Execute 执行查询用例
func (uc *GetLoanUseCase) Execute(ctx context.Context, id uint) (*LoanResponse, error) {
	l, err := uc.loanService.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toLoanResponse(l), nil
}
