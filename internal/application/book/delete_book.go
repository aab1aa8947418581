package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// DeleteBookUseCase 图书删除用例
// 流程:先查询确认存在(不存在返回404)→删除
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return err
	}

	return uc.bookService.DeleteBook(ctx, b)
}
