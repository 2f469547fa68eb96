package handler

import (
	"github.com/gin-gonic/gin"
)

// Routes groups the handlers mounted by Register.
type Routes struct {
	Auth     *AuthHandler
	Colleges *CollegeHandler
	Programs *ProgramHandler
	Students *StudentHandler
	Metrics  *MetricsHandler

	// RequireAuth guards every entity route and the session endpoints.
	RequireAuth gin.HandlerFunc
	// ExposeMetrics mounts GET /metrics.
	ExposeMetrics bool
}

// Register mounts the API under prefix and the operational endpoints at the root.
func (rt Routes) Register(r gin.IRouter, prefix string) {
	if rt.Metrics != nil {
		r.GET("/health", rt.Metrics.Health)
		if rt.ExposeMetrics {
			r.GET("/metrics", rt.Metrics.Prometheus)
		}
	}

	api := r.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/signup", rt.Auth.Signup)
	auth.POST("/login", rt.Auth.Login)
	auth.POST("/refresh", rt.Auth.Refresh)
	auth.POST("/logout", rt.RequireAuth, rt.Auth.Logout)
	auth.GET("/me", rt.RequireAuth, rt.Auth.Me)

	secured := api.Group("")
	secured.Use(rt.RequireAuth)

	colleges := secured.Group("/colleges")
	colleges.GET("", rt.Colleges.List)
	colleges.POST("", rt.Colleges.Create)
	colleges.GET("/export", rt.Colleges.Export)
	colleges.GET("/:college_code", rt.Colleges.Get)
	colleges.PUT("/:college_code", rt.Colleges.Update)
	colleges.DELETE("/:college_code", rt.Colleges.Delete)
	colleges.GET("/:college_code/programs", rt.Colleges.Programs)

	programs := secured.Group("/programs")
	programs.GET("", rt.Programs.List)
	programs.POST("", rt.Programs.Create)
	programs.GET("/export", rt.Programs.Export)
	programs.GET("/:program_code", rt.Programs.Get)
	programs.PUT("/:program_code", rt.Programs.Update)
	programs.DELETE("/:program_code", rt.Programs.Delete)
	programs.GET("/:program_code/students", rt.Programs.Students)

	students := secured.Group("/students")
	students.GET("", rt.Students.List)
	students.POST("", rt.Students.Create)
	students.GET("/export", rt.Students.Export)
	students.GET("/:id_number", rt.Students.Get)
	students.PUT("/:id_number", rt.Students.Update)
	students.DELETE("/:id_number", rt.Students.Delete)
}
