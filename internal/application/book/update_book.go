package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 图书信息更新用例
// 流程:先查询(不存在返回404)→应用书名/作者→覆盖保存
// ISBN登记后不变,更新不重新校验唯一性
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建图书更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	Title  string // 书名
	Author string // 作者
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookResponse, error) {
	// 1. 查询图书(不存在时透传ErrBookNotFound)
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 应用修改
	b.UpdateInfo(req.Title, req.Author)

	// 3. 持久化
	if err := uc.bookService.UpdateBook(ctx, b); err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}
