package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrDuplicateID 图书编号已存在(仅严格模式)
	ErrDuplicateID = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书编号已存在")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在0到5之间")

	// ErrInvalidQuantity 无效的册数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "册数不能为负数")
)
