package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/validator"
)

// @title           图书馆管理API
// @version         1.0
// @description     图书登记与借阅管理服务
// @BasePath        /api/v1

// main 主程序入口
// 说明：手动依赖注入，按Repository ← Service ← UseCase ← Handler逐层组装
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化消息队列(可选)
	// mq.enabled=false时publisher为nil,借阅事件不发布但业务照常运行
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		fmt.Printf("  - 消息队列: %s (exchange=%s)\n", cfg.MQ.URL, cfg.MQ.Exchange)
	}

	// 5. 注册自定义参数校验规则(isbn)
	if err := validator.Register(); err != nil {
		log.Fatalf("注册校验规则失败: %v", err)
	}

	// 6. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	txManager := mysql.NewTxManager(db)

	// 领域层
	bookService := book.NewService(bookRepo)
	loanService := loan.NewService(loanRepo, bookRepo, txManager)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)

	borrowBookUseCase := apploan.NewBorrowBookUseCase(bookService, loanService, eventPublisher(publisher))
	returnBookUseCase := apploan.NewReturnBookUseCase(loanService, eventPublisher(publisher))
	getLoanUseCase := apploan.NewGetLoanUseCase(loanService)
	listLoansUseCase := apploan.NewListLoansUseCase(loanService)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		getBookUseCase,
		updateBookUseCase,
		deleteBookUseCase,
		listBooksUseCase,
	)
	loanHandler := handler.NewLoanHandler(
		borrowBookUseCase,
		returnBookUseCase,
		getLoanUseCase,
		listLoansUseCase,
	)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())

	// 8. 注册路由
	registerRoutes(r, bookHandler, loanHandler)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   图书登记: POST http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("   借书:     POST http://localhost%s/api/v1/loans\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// eventPublisher 把*mq.Publisher转换为应用层的EventPublisher接口
// 注意：不能直接传nil指针给接口参数,否则接口非nil而内部指针为nil
func eventPublisher(p *mq.Publisher) apploan.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, loanHandler *handler.LoanHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger接口文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		// 借阅模块
		loans := v1.Group("/loans")
		{
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("", loanHandler.ListLoans)
			loans.GET("/:id", loanHandler.GetLoan)
			loans.PATCH("/:id", loanHandler.ReturnLoan)
		}
	}
}
