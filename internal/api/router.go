package api

import (
	"net/http"
	"strings"

	"github.com/MarlonMoe23/reportes/internal/response"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the remote store surface: the /reports collection and its
// per-id operations. Disallowed methods get a 405 with an Allow header
// listing what the endpoint supports.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogger(app.Logger()))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.Header("Allow", allowedMethods(c.Request.URL.Path))
		c.JSON(http.StatusMethodNotAllowed, response.MethodNotAllowed("method "+c.Request.Method+" not allowed"))
	})

	r.POST("/reports", PostReport(app))
	r.GET("/reports", GetReports(app))
	r.PUT("/reports/:id", PutReport(app))
	r.DELETE("/reports/:id", DeleteReport(app))

	return r
}

func allowedMethods(path string) string {
	if strings.HasPrefix(path, "/reports/") {
		return "PUT, DELETE"
	}
	return "GET, POST"
}
