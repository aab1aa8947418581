package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// 分页参数默认值与上限
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListBooksUseCase 图书列表查询用例
// 支持分页与按书名/作者/ISBN筛选(大小写不敏感子串匹配,AND组合)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Title    string // 书名筛选(子串)
	Author   string // 作者筛选(子串)
	ISBN     string // ISBN筛选(子串)
}

// ListBooksResponse 列表查询响应DTO
// Page/PageSize回显请求的分页参数(取默认值后的)
type ListBooksResponse struct {
	List       []BookResponse `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
// 参数默认值:page默认1,pageSize默认20,最大100
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	// 2. 构建查询参数
	params := book.FindParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Filter: book.Filter{
			Title:  req.Title,
			Author: req.Author,
			ISBN:   req.ISBN,
		},
	}

	// 3. 查询
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	// 4. 转换为DTO
	list := make([]BookResponse, len(books))
	for i, b := range books {
		list[i] = *toBookResponse(b)
	}

	// 5. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
