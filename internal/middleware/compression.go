package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that gzips responses for clients that accept it.
// Paths in exclude are served uncompressed; /metrics is excluded because promhttp
// negotiates its own encoding.
func Compression(exclude ...string) gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(exclude))
}
