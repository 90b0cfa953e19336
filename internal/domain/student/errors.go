package student

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 学生领域错误定义
var (
	// ErrStudentNotFound 学生不存在
	ErrStudentNotFound = apperrors.New(apperrors.ErrCodeStudentNotFound, "学生不存在,请先注册")

	// ErrDuplicateID 学号已存在(仅严格模式)
	ErrDuplicateID = apperrors.New(apperrors.ErrCodeDuplicateEntry, "学号已存在")

	// ErrNotBorrowed 该学生没有借阅这本书
	ErrNotBorrowed = apperrors.New(apperrors.ErrCodeNotBorrowed, "该学生未借阅此书")
)
