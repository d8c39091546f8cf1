package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_http_requests_total",
			Help: "Total number of HTTP requests processed by the service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tribune_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	pageCacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_page_cache_requests_total",
			Help: "Page cache lookups by result.",
		},
		[]string{"result"},
	)
	postsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tribune_posts_created_total",
			Help: "Total number of posts created.",
		},
	)
	commentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tribune_comments_created_total",
			Help: "Total number of comments created.",
		},
	)
	followActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_follow_actions_total",
			Help: "Follow and unfollow actions processed.",
		},
		[]string{"action"},
	)
	wsActiveConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tribune_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
		[]string{"kind"},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"kind", "event"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tribune_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		pageCacheRequestsTotal,
		postsCreatedTotal,
		commentsCreatedTotal,
		followActionsTotal,
		wsActiveConnections,
		wsEventsTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncPageCacheHit()  { pageCacheRequestsTotal.WithLabelValues("hit").Inc() }
func IncPageCacheMiss() { pageCacheRequestsTotal.WithLabelValues("miss").Inc() }

func IncPostCreated()    { postsCreatedTotal.Inc() }
func IncCommentCreated() { commentsCreatedTotal.Inc() }

func IncFollowAction(action string) {
	followActionsTotal.WithLabelValues(action).Inc()
}

func IncWSActive(kind string) {
	wsActiveConnections.WithLabelValues(kind).Inc()
}

func DecWSActive(kind string) {
	wsActiveConnections.WithLabelValues(kind).Dec()
}

func IncWSEvent(kind, event string) {
	wsEventsTotal.WithLabelValues(kind, event).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
