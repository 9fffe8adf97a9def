package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const requestIdHeader = "X-Request-ID"

type requestIdKey struct{}

func requestIdFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}

// 沿用调用方传入的请求ID，没有时生成一个
func (s *serverImpl) requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		id := request.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		writer.Header().Set(requestIdHeader, id)
		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), requestIdKey{}, id)))
	})
}

// 记录访问日志与请求指标
func (s *serverImpl) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		route := request.URL.Path
		if current := mux.CurrentRoute(request); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		start := time.Now()
		rw := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		defer func() {
			// panic由外层的恢复中间件处理，并返回500
			p := recover()
			if p != nil {
				rw.status = http.StatusInternalServerError
			}
			duration := time.Since(start)

			s.metrics.observe(route, rw.status, duration)
			s.logger.Info("http_request",
				zap.String("method", request.Method),
				zap.String("route", route),
				zap.Int("status", rw.status),
				zap.Duration("duration", duration),
				zap.String("request_id", requestIdFrom(request.Context())),
			)

			if p != nil {
				panic(p)
			}
		}()
		next.ServeHTTP(rw, request)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type recoveryLogger struct {
	logger *zap.Logger
}

func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("处理请求时发生panic", zap.String("panic", fmt.Sprint(v...)))
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
