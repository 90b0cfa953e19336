package recommend

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ErrNoRecommendations 图中没有该图书(没有任何同类型图书)
var ErrNoRecommendations = apperrors.New(apperrors.ErrCodeNotFound, "没有可推荐的图书")
