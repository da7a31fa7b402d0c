package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

var log = logrus.StandardLogger()

// Setup 按配置设置全局 logrus：级别与格式（json/text）
func Setup(level, format string) {
	SetupWithOutput(level, format, os.Stdout)
}

// SetupWithOutput 同 Setup，可指定输出
func SetupWithOutput(level, format string, out io.Writer) {
	log.SetOutput(out)

	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// WithContext 返回带链路信息（trace_id, span_id）的日志 entry
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if ctx == nil {
		return entry
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		entry = entry.WithFields(logrus.Fields{
			"trace_id": spanCtx.TraceID().String(),
			"span_id":  spanCtx.SpanID().String(),
		})
	}
	return entry.WithContext(ctx)
}

// WithFields 在链路信息之外附加自定义字段
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return WithContext(ctx).WithFields(fields)
}
