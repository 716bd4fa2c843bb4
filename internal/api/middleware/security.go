package middleware

import "github.com/gin-gonic/gin"

// apiSecurityHeaders are set on every response, downloads included.
var apiSecurityHeaders = [][2]string{
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cache-Control", "no-store"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
}

const hstsValue = "max-age=31536000; includeSubDomains"

// SecurityHeaders sets apiSecurityHeaders, plus HSTS when the request
// arrived over TLS directly or through a proxy that says so.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range apiSecurityHeaders {
			c.Header(h[0], h[1])
		}
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", hstsValue)
		}
		c.Next()
	}
}
