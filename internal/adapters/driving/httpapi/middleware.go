package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/lookup/internal/logger"
)

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// requestID echoes the caller's request ID, generating one when absent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// requestLogger traces each request through the verbose logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("httpapi: %s %s -> %d in %s (request %s)",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.GetString(HeaderRequestID))
	}
}

// limiterIdle is how long a client may stay silent before its bucket is
// dropped. Buckets slower to refill than this are kept until full.
const limiterIdle = 10 * time.Minute

// clientLimiter keeps one token bucket per client IP. Idle buckets are
// swept at most once per idle period.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientBucket
}

type clientBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newClientLimiter(perSecond float64) *clientLimiter {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	idle := limiterIdle
	if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > idle {
		idle = refill
	}
	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

func (l *clientLimiter) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.seen = now
	return b.limiter
}

// sweep drops buckets idle for l.idle. Callers hold l.mu.
func (l *clientLimiter) sweep(now time.Time) {
	for client, b := range l.clients {
		if now.Sub(b.seen) >= l.idle {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if !l.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
