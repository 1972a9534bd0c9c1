package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/studentdesk/internal/app/controllers"
	"github.com/yigit/studentdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	adminStudentController *controllers.AdminStudentController,
	authController *controllers.AuthController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter gin.HandlerFunc,
	uploadLimit gin.HandlerFunc,
) {
	router.GET("/ping", healthController.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthController.Health)

	// --- Student routes ---
	students := v1.Group("/students")
	{
		students.POST("/login", loginLimiter, studentController.Login)
		// Accounts are created by admins only
		students.POST("/register", authMiddleware.AdminAuth(), uploadLimit, studentController.Register)

		self := students.Group("")
		self.Use(authMiddleware.StudentAuth())
		{
			self.GET("/profile", studentController.GetProfile)
			self.PATCH("/profile", uploadLimit, studentController.UpdateProfile)
			self.DELETE("/profile/avatar", studentController.DeleteAvatar)
			self.POST("/change-password", studentController.ChangePassword)
		}
	}

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/admin/login", loginLimiter, authController.AdminLogin)
		auth.POST("/token/refresh", authController.RefreshToken)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.AdminAuth())
	{
		adminStudents := admin.Group("/students")
		adminStudents.GET("", adminStudentController.List)
		adminStudents.POST("/set-password", adminStudentController.SetPassword)
		adminStudents.GET("/:student_id", adminStudentController.Get)
		adminStudents.PATCH("/:student_id", uploadLimit, adminStudentController.Update)
		adminStudents.DELETE("/:student_id", adminStudentController.Delete)
	}
}
