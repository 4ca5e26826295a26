package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eisenwinter/tokenkeep/sanitize"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerMiddleware logs every request once it has been served. Server errors are
// logged at error level, everything else at info. Headers are never logged as
// they carry credentials.
func loggerMiddleware(l *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			defer func() {
				level := zapcore.InfoLevel
				if ww.Status() >= http.StatusInternalServerError {
					level = zapcore.ErrorLevel
				}
				path := sanitize.Clean(r.URL.Path)
				if ce := l.Check(level, fmt.Sprintf("[%s] %s", r.Method, path)); ce != nil {
					ce.Write(
						zap.String("proto", r.Proto),
						zap.String("path", path),
						zap.String("remote_addr", r.RemoteAddr),
						zap.Duration("latency", time.Since(t1)),
						zap.Int("status", ww.Status()),
						zap.Int("size", ww.BytesWritten()),
						zap.String("requestID", middleware.GetReqID(r.Context())))
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
