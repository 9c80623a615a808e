package router

import (
	"io/fs"
	"net/http"
	"time"

	"artha/api"
	"artha/config"
	_ "artha/docs"
	"artha/middleware"
	"artha/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires the full route table.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	// Embedded single-page client.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to load page")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})
	r.StaticFS("/static", http.FS(staticFS))

	// OpenAPI UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	{
		userHandler := api.NewUserHandler(cfg)
		users := apiGroup.Group("/users")
		{
			// Credential-issuing endpoints are rate limited per IP.
			limiter := middleware.LoginRateLimit(10, time.Minute)
			users.POST("/register", limiter, userHandler.Register)
			users.POST("/login", limiter, userHandler.Login)

			profile := users.Group("")
			profile.Use(middleware.JWTAuth())
			{
				profile.GET("/profile", userHandler.GetProfile)
				profile.PUT("/profile", userHandler.UpdateProfile)
			}
		}

		authorized := apiGroup.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			expenseHandler := api.NewExpenseHandler()
			expenses := authorized.Group("/expenses")
			{
				expenses.GET("", expenseHandler.List)
				expenses.POST("", expenseHandler.Create)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			incomeHandler := api.NewIncomeHandler()
			income := authorized.Group("/income")
			{
				income.GET("", incomeHandler.List)
				income.POST("", incomeHandler.Create)
				income.PUT("/:id", incomeHandler.Update)
				income.DELETE("/:id", incomeHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler()
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Create)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			goalHandler := api.NewGoalHandler()
			goals := authorized.Group("/goals")
			{
				goals.GET("", goalHandler.List)
				goals.POST("", goalHandler.Create)
				goals.PUT("/add-funds/:id", goalHandler.AddFunds)
				goals.PUT("/:id", goalHandler.Update)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			summaryHandler := api.NewSummaryHandler()
			authorized.GET("/ai/summary", summaryHandler.GetSummary)

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware allows the SPA to call the API from another origin.
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
