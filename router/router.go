package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/controllers"
	"github.com/greenround/screengolf-usage/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	recordCtrl := controllers.NewRecordController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", authCtrl.Index)
	r.POST("/login", authCtrl.Login)
	r.GET("/logout", authCtrl.Logout)
	r.GET("/reset_password", authCtrl.ResetPasswordForm)
	r.POST("/reset_password", authCtrl.ResetPassword)
	r.GET("/admin/login", adminCtrl.LoginForm)
	r.POST("/admin/login", adminCtrl.Login)

	// ----------------------------------------------------------------
	//                      EMPLOYEE ROUTES
	// ----------------------------------------------------------------
	pages := r.Group("")
	pages.Use(middlewares.EmployeePage())
	{
		pages.GET("/dashboard", recordCtrl.Dashboard)
		pages.GET("/change_password", authCtrl.ChangePasswordForm)
		pages.POST("/change_password", authCtrl.ChangePassword)
	}

	api := r.Group("/api")
	api.Use(middlewares.EmployeeAuth())
	{
		api.POST("/record", recordCtrl.AddRecord)
		api.DELETE("/record/:record_id", recordCtrl.DeleteRecord)
		api.GET("/history", recordCtrl.History)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	adminPages := r.Group("/admin")
	adminPages.Use(middlewares.AdminPage())
	{
		adminPages.GET("", adminCtrl.Dashboard)
		adminPages.POST("/upload_employees", adminCtrl.UploadEmployees)
		adminPages.GET("/download", adminCtrl.Download)
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(middlewares.AdminAuth())
	{
		adminAPI.POST("/bulk_add", adminCtrl.BulkAdd)
		adminAPI.POST("/reset", adminCtrl.ResetData)
		adminAPI.GET("/employees", adminCtrl.ListEmployees)
	}

	return r
}
