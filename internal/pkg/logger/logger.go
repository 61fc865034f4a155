package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger 是全局的 zerolog 实例，由 Init 初始化。
var Logger zerolog.Logger

func init() {
	// 未显式 Init 时也要有可用的兜底输出
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init 配置全局 Logger，service 字段会附加到每条日志上。
func Init(serviceName string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Ctx 返回绑定了当前链路 trace_id/span_id 的 Logger，
// 方便在日志平台上与 Jaeger 链路互相跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return &Logger
	}
	l := Logger.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
	return &l
}
