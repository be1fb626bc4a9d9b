package httpserver

import (
	"github.com/labstack/echo/v4"

	mwauth "github.com/MintCofee/tabshare/internal/middleware/auth"
)

type Deps struct {
	Auth   *AuthHandler
	Tabs   *TabHandler
	Songs  *SongHandler
	Users  *UserHandler
	Stats  *StatsHandler
	Search *SearchHandler
	MW     *mwauth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout)

	tabs := v1.Group("/tabs")
	tabs.GET("", d.Tabs.List)
	if d.Search != nil {
		tabs.GET("/search", d.Search.Search)
	}
	tabs.GET("/:id", d.Tabs.Get)
	tabs.POST("", d.Tabs.Create, d.MW.RequireAuth)
	tabs.PUT("/:id", d.Tabs.Update, d.MW.RequireAuth)
	tabs.DELETE("/:id", d.Tabs.Delete, d.MW.RequireAuth)
	tabs.POST("/:id/like", d.Tabs.Like, d.MW.RequireAuth)
	tabs.POST("/:id/favorite", d.Tabs.Favorite, d.MW.RequireAuth)

	songs := v1.Group("/songs")
	songs.GET("", d.Songs.List)
	songs.GET("/:id", d.Songs.Get)
	songs.POST("", d.Songs.Create, d.MW.RequireRole("admin"))
	songs.PUT("/:id", d.Songs.Update, d.MW.RequireRole("admin"))
	songs.DELETE("/:id", d.Songs.Delete, d.MW.RequireRole("admin"))

	users := v1.Group("/users", d.MW.RequireAuth)
	users.GET("/me", d.Users.Me)
	users.GET("/me/favorites", d.Users.MyFavorites)

	v1.GET("/stats", d.Stats.Get, d.MW.RequireRole("admin"))
}
