package circulation

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ErrUnavailable 图书已全部借出
var ErrUnavailable = apperrors.New(apperrors.ErrCodeUnavailable, "图书已全部借出")
