package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func LoggingInterceptor(logger *logrus.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(startTime).Milliseconds(),
		})
		if err != nil {
			entry.Warn("gRPC call completed with error")
		} else {
			entry.Info("gRPC call completed successfully")
		}
		return resp, err
	}
}
