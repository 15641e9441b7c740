package trace

import (
	"bytes"
	"io"

	"chat-service/common/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TraceMiddleware assigns a traceId to each incoming request (unless it
// already carries one) and logs the request with sensitive fields redacted.
type TraceMiddleware struct {
	TracingHeaderParameter string
	Environment            string
	Logger                 *zap.Logger
}

func NewTraceMiddleware(environment, headerParameter string, logger *zap.Logger) *TraceMiddleware {
	service := TraceMiddleware{Environment: environment, TracingHeaderParameter: headerParameter, Logger: logger}
	return &service
}

type TraceMiddlewareInterface interface {
	EnsureTracingGin(c *gin.Context)
	LogIncomingRequestGin(c *gin.Context)
}

// EnsureTracingGin ensures that each incoming request has a traceId
func (t *TraceMiddleware) EnsureTracingGin(c *gin.Context) {
	traceId := c.GetHeader(t.TracingHeaderParameter)
	if traceId == "" {
		traceId = uuid.New().String()
		c.Request.Header.Set(t.TracingHeaderParameter, traceId)
	}
	c.Next()
}

// LogIncomingRequestGin logs the incoming request while restricting sensitive data
func (t *TraceMiddleware) LogIncomingRequestGin(c *gin.Context) {
	restrictedBody := ""
	bodyStr, err := io.ReadAll(c.Request.Body)
	if err != nil {
		restrictedBody = "Couldn't get body"
	} else {
		restrictedBody = common.RestrictRequestJson(string(bodyStr), common.Body)
		// the body has to stay readable for the handlers further down the chain
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyStr))
	}
	restrictedHeader := common.RestrictRequestJson(common.GetHeaderAsString(c.Request), common.Header)
	t.Logger.Debug("New request",
		zap.String("method", c.Request.Method),
		zap.String("url", c.Request.URL.String()),
		zap.String("client-ip", c.ClientIP()),
		zap.String("trace-id", c.Request.Header.Get(t.TracingHeaderParameter)),
		zap.String("body", restrictedBody),
		zap.String("header", restrictedHeader),
		zap.String("environment", t.Environment),
	)
}
