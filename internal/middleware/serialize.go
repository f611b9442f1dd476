package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// Serialize funnels every request through a single mutex. The stores and
// entities carry no locking of their own, so the HTTP adapter provides the
// single-writer discipline they assume.
func Serialize() gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.Next()
	}
}
