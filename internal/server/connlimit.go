package server

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/lawnchairsociety/dungeonkit/internal/config"
)

// ConnLimiter tracks and limits connections per IP and in total.
type ConnLimiter struct {
	mu         sync.Mutex
	ipCounts   map[string]int
	totalCount int
	maxPerIP   int
	maxTotal   int
}

// NewConnLimiter creates a limiter from the server limits. Zero means unlimited.
func NewConnLimiter(cfg config.ServerConfig) *ConnLimiter {
	return &ConnLimiter{
		ipCounts: make(map[string]int),
		maxPerIP: cfg.MaxPerIP,
		maxTotal: cfg.MaxTotal,
	}
}

// TryAcquire takes a slot for ip, or reports false if a limit is reached.
func (c *ConnLimiter) TryAcquire(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxTotal > 0 && c.totalCount >= c.maxTotal {
		return false
	}
	if c.maxPerIP > 0 && c.ipCounts[ip] >= c.maxPerIP {
		return false
	}

	c.ipCounts[ip]++
	c.totalCount++
	return true
}

// Release returns a slot taken by TryAcquire.
func (c *ConnLimiter) Release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ipCounts[ip] > 0 {
		c.ipCounts[ip]--
		if c.ipCounts[ip] == 0 {
			delete(c.ipCounts, ip)
		}
		c.totalCount--
	}
}

// Stats returns the open connection count and the number of distinct IPs.
func (c *ConnLimiter) Stats() (total int, ips int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount, len(c.ipCounts)
}

// extractIP extracts the IP address from a remote address string (ip:port format).
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// getRealIP prefers the first X-Forwarded-For entry, then X-Real-IP, then
// the direct remote address.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return extractIP(r.RemoteAddr)
}
