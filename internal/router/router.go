package router

import (
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/handler/auth"
	"taskboard/internal/handler/tasks"
	"taskboard/internal/mailer"
	"taskboard/internal/middleware"
	"taskboard/internal/worker"

	"github.com/labstack/echo/v4"
)

// Setup registers every route under /api/v1.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, m *mailer.Mailer) {
	v1 := e.Group("/api/v1")

	v1.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth(rdb))

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", auth.RegisterHandler(db, wp, m))
	authGroup.POST("/login", auth.LoginHandler(db))
	authGroup.POST("/logout", auth.LogoutHandler(rdb), middleware.RequireAuth(rdb))
	authGroup.GET("/me", auth.MeHandler(db), middleware.RequireAuth(rdb))
	authGroup.GET("/users", auth.ListUsersHandler(db), middleware.RequireAuth(rdb), middleware.RequireAdmin())

	taskGroup := v1.Group("/tasks", middleware.RequireAuth(rdb))
	taskGroup.POST("", tasks.CreateTaskHandler(db))
	taskGroup.GET("", tasks.ListTasksHandler(db))
	taskGroup.GET("/admin/all", tasks.AdminListTasksHandler(db), middleware.RequireAdmin())
	taskGroup.DELETE("/admin/:id", tasks.AdminDeleteTaskHandler(db), middleware.RequireAdmin())
	taskGroup.GET("/:id", tasks.GetTaskHandler(db))
	taskGroup.PUT("/:id", tasks.UpdateTaskHandler(db))
	taskGroup.DELETE("/:id", tasks.DeleteTaskHandler(db))
}
