package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrBookAlreadyLoaned 图书已被借出(尚未归还)
	ErrBookAlreadyLoaned = apperrors.New(apperrors.ErrCodeBookAlreadyLoaned, "该图书已被借出")

	// ErrBookRequired 借阅必须关联图书
	ErrBookRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID不能为空")

	// ErrCustomerRequired 借阅人不能为空
	ErrCustomerRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅人不能为空")

	// ErrLoanIDRequired 更新时借阅记录ID不能为空
	ErrLoanIDRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅记录ID不能为空")
)
