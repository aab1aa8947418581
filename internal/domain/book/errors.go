package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrBookRequired 登记时图书信息不能为空
	ErrBookRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "图书信息不能为空")

	// ErrBookIDRequired 更新/删除时图书ID不能为空
	ErrBookIDRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID不能为空")
)
