package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheStatsHandler reports valid/expired entry counts and total size,
// recomputed at call time.
func (hb *HandlerBundle) CacheStatsHandler(c *gin.Context) {
	stats := hb.Cache.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"enabled": hb.Cache.Enabled(),
		"stats":   stats,
	})
}

// CacheCleanupHandler sweeps expired and unreadable cache records.
func (hb *HandlerBundle) CacheCleanupHandler(c *gin.Context) {
	removed := hb.Cache.Sweep(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"entries_removed": removed})
}

// CacheClearHandler removes every cache record.
func (hb *HandlerBundle) CacheClearHandler(c *gin.Context) {
	result := hb.Cache.Clear(c.Request.Context())
	c.JSON(http.StatusOK, result)
}
