package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
)

// CreateBookUseCase 图书登记用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO,与HTTP层解耦
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书登记用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 登记请求DTO
type CreateBookRequest struct {
	Title  string // 书名
	Author string // 作者
	ISBN   string // ISBN号
}

// BookResponse 图书响应DTO(登记/查询/更新共用)
type BookResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Execute 执行登记用例
// 业务规则校验(ISBN唯一性)由领域服务负责,应用层只做流程编排
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b := book.NewBook(req.Title, req.Author, req.ISBN)

	saved, err := uc.bookService.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}

	if metrics.BooksCreatedTotal != nil {
		metrics.BooksCreatedTotal.Inc()
	}

	return toBookResponse(saved), nil
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
