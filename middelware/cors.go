package middelware

import (
	"greenroute-backend/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsHeaders = "Origin, Content-Type, Accept, Authorization, X-Requested-With"
)

// CORSMiddleware answers cross-origin requests. The public quote and booking endpoints
// are embedded on customer websites, so any origin may call them without credentials.
// Admin endpoints only answer the configured dashboard origins.
type CORSMiddleware struct {
	origins    []string
	publicPath string
}

func NewCORSMiddleware(cfg *models.Config) *CORSMiddleware {
	return &CORSMiddleware{
		origins:    cfg.CORSOrigins,
		publicPath: "/public/",
	}
}

func (m *CORSMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case origin == "":
		case strings.Contains(c.Request.URL.Path, m.publicPath):
			c.Header("Access-Control-Allow-Origin", "*")
		case m.isOriginAllowed(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", corsMethods)
		c.Header("Access-Control-Allow-Headers", corsHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// isOriginAllowed matches exact origins, "*" and "*.example.com" patterns
func (m *CORSMiddleware) isOriginAllowed(origin string) bool {
	for _, allowed := range m.origins {
		switch {
		case allowed == "*", allowed == origin:
			return true
		case strings.HasPrefix(allowed, "*."):
			if strings.HasSuffix(origin, allowed[1:]) {
				return true
			}
		}
	}
	return false
}
