package handlers

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tribune/internal/cache"
	"tribune/internal/observability"
)

// PageCacheMiddleware serves anonymous requests from the page cache and
// captures cache misses on the way out. Authenticated requests bypass the
// cache entirely. The key is the full request URI, page number and query
// string included.
func PageCacheMiddleware(pages cache.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		entry, ok, err := pages.Get(c.Request.Context(), key)
		if err != nil {
			log.Printf("page cache get failed: %v", err)
		}
		if ok {
			observability.IncPageCacheHit()
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}
		observability.IncPageCacheMiss()

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		stored := cache.Entry{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := pages.Set(c.Request.Context(), key, stored, ttl); err != nil {
			log.Printf("page cache set failed: %v", err)
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
