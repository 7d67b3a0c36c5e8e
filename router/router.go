package router

import (
	"time"

	"github.com/Katsiatyna/BudgetTracker/api"
	"github.com/Katsiatyna/BudgetTracker/config"
	_ "github.com/Katsiatyna/BudgetTracker/docs"
	"github.com/Katsiatyna/BudgetTracker/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)

			// 密码重置
			auth.POST("/password/request-reset", authHandler.RequestPasswordReset)
			auth.POST("/password/verify-code", authHandler.VerifyResetCode)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// 类别列表（无需登录）
		categoryHandler := api.NewCategoryHandler()
		v1.GET("/categories", categoryHandler.List)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 类别管理
			authorized.POST("/categories", categoryHandler.Create)
			authorized.PUT("/categories/:id", categoryHandler.Update)
			authorized.DELETE("/categories/:id", categoryHandler.Delete)

			// 收入相关
			incomeHandler := api.NewIncomeHandler()
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			// 支出相关
			outcomeHandler := api.NewOutcomeHandler()
			outcomes := authorized.Group("/outcomes")
			{
				outcomes.POST("", outcomeHandler.Create)
				outcomes.GET("", outcomeHandler.List)
				outcomes.GET("/:id", outcomeHandler.Get)
				outcomes.PUT("/:id", outcomeHandler.Update)
				outcomes.DELETE("/:id", outcomeHandler.Delete)
			}

			// 预算相关
			budgetHandler := api.NewBudgetHandler()
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Set)
				budgets.GET("/warnings", budgetHandler.Warnings)
				budgets.GET("/with-spent", budgetHandler.WithSpent)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			// 理财目标相关
			goalHandler := api.NewGoalHandler()
			goals := authorized.Group("/goals")
			{
				goals.GET("", goalHandler.List)
				goals.POST("", goalHandler.Create)
				goals.PUT("/:id", goalHandler.Update)
				goals.PUT("/:id/progress", goalHandler.UpdateProgress)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			// 统计分析相关
			analyticsHandler := api.NewAnalyticsHandler()
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/summary", analyticsHandler.GetSummary)
				analytics.GET("/latest", analyticsHandler.GetLatest)
				analytics.GET("/category-summary", analyticsHandler.GetCategorySummary)
				analytics.GET("/chart", analyticsHandler.GetChart)
				analytics.GET("/spent/:categoryId", analyticsHandler.GetSpentForCategory)
				analytics.GET("/top-spendings", analyticsHandler.GetTopSpendings)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
