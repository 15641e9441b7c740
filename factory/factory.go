package factory

import (
	"chat-service/common/jwt"
	"chat-service/common/logging"
	"chat-service/common/middleware"
	"chat-service/common/sqs"
	"chat-service/common/trace"
	"chat-service/config"
	"chat-service/database"
	dbconfig "chat-service/database/config"

	"go.uber.org/zap"
)

type Factory struct {
	cfg       config.Config
	db        *database.Database
	zLog      *zap.Logger
	auth      *jwt.Authorization
	publisher *sqs.EventPublisher
	trace     *trace.TraceMiddleware
	limiter   *middleware.RateLimiter
}

type FactoryInterface interface {
	Config() config.Config
	Db() database.DatabaseInterface
	Logger() *zap.Logger
	Auth() jwt.AuthorizationInterface
	Publisher() sqs.EventPublisherInterface
	Trace() trace.TraceMiddlewareInterface
	Limiter() *middleware.RateLimiter
}

func NewFactory(cfg config.Config) (factory Factory) {
	factory.cfg = cfg
	factory.zLog = logging.NewLogger(cfg.LogMode)

	dbConfiguration := dbconfig.NewConfiguration(cfg.DbHost, cfg.DbName, cfg.DbUser, cfg.DbPassword, cfg.DbTls)
	factory.db = database.GetNewDatabaseConnection(dbConfiguration)

	factory.auth = jwt.CreateAuthorization(cfg.JwkAuthEnabled, cfg.JwkUrl, cfg.JwtSecret, factory.zLog)

	if cfg.SqsQueueUrl != "" {
		factory.publisher = sqs.NewEventPublisher(cfg.SqsQueueUrl, factory.zLog)
	}

	factory.trace = trace.NewTraceMiddleware("DEPLOYMENT", "trace-id", factory.zLog)
	factory.limiter = middleware.NewRateLimiter(cfg.RateLimitRps, cfg.RateLimitBurst)
	return
}

func (f Factory) Config() config.Config {
	return f.cfg
}

func (f Factory) Db() database.DatabaseInterface {
	return f.db
}

func (f Factory) Logger() *zap.Logger {
	return f.zLog
}

func (f Factory) Auth() jwt.AuthorizationInterface {
	return f.auth
}

func (f Factory) Publisher() sqs.EventPublisherInterface {
	if f.publisher == nil {
		return nil
	}
	return f.publisher
}

func (f Factory) Trace() trace.TraceMiddlewareInterface {
	return f.trace
}

func (f Factory) Limiter() *middleware.RateLimiter {
	return f.limiter
}
