package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// 分页参数默认值与上限
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListLoansUseCase 借阅列表查询用例
// 支持按借阅人(子串)与图书ISBN(精确)筛选
type ListLoansUseCase struct {
	loanService loan.Service
}

// NewListLoansUseCase 创建借阅列表查询用例
func NewListLoansUseCase(loanService loan.Service) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanService: loanService,
	}
}

// ListLoansRequest 列表查询请求DTO
type ListLoansRequest struct {
	Page     int
	PageSize int
	Customer string // 借阅人筛选(子串)
	ISBN     string // 图书ISBN筛选(精确)
}

// ListLoansResponse 列表查询响应DTO
type ListLoansResponse struct {
	List       []LoanResponse `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
func (uc *ListLoansUseCase) Execute(ctx context.Context, req ListLoansRequest) (*ListLoansResponse, error) {
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	params := loan.FindParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Customer: req.Customer,
		ISBN:     req.ISBN,
	}

	loans, total, err := uc.loanService.ListLoans(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]LoanResponse, len(loans))
	for i, l := range loans {
		list[i] = *toLoanResponse(l)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListLoansResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
