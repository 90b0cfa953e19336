package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book        *handler.BookHandler
	Student     *handler.StudentHandler
	Circulation *handler.CirculationHandler
	Recommend   *handler.RecommendHandler
}

// New 创建并配置Gin引擎
func New(cfg *config.Config, h Handlers) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Tracing())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档(需先运行swag init生成docs)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", h.Book.AddBook)
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.GET("/:id/recommendations", h.Recommend.Recommend)
		}
		v1.GET("/authors/:author/books", h.Book.BooksByAuthor)
		v1.GET("/genres/:genre/books", h.Book.BooksByGenre)

		// 学生模块
		students := v1.Group("/students")
		{
			students.POST("", h.Student.Register)
			students.GET("/:id", h.Student.GetStudent)
		}

		// 借还模块
		circulation := v1.Group("/circulation")
		{
			circulation.POST("/borrow", h.Circulation.Borrow)
			circulation.POST("/return", h.Circulation.Return)
			circulation.GET("/history", h.Circulation.History)
		}
	}

	return r
}
