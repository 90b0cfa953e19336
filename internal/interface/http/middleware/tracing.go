package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/tracing"
)

// Tracing 为每个请求创建根Span
// Span名使用路由模板(如GET /api/v1/books/:id),避免按ID产生大量不同的名字
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tracing.StartSpan(c.Request.Context(), "http", c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		var err error
		if len(c.Errors) > 0 {
			err = c.Errors.Last()
		}
		tracing.EndSpan(span, err)
	}
}
