package grpc

import (
	"context"
	"errors"

	"marketplace_service/internal/domain"
	"marketplace_service/internal/usecase"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type MarketplaceHandler struct {
	productUseCase usecase.ProductUseCase
	viewUseCase    usecase.ViewUseCase
	log            *logrus.Logger
}

func NewMarketplaceHandler(puc usecase.ProductUseCase, vuc usecase.ViewUseCase, logger *logrus.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{
		productUseCase: puc,
		viewUseCase:    vuc,
		log:            logger,
	}
}

func mapDomainProductToStruct(prod *domain.Product) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"id":          prod.ID,
		"name":        prod.Name,
		"description": prod.Description,
		"price":       prod.Price,
		"image":       prod.Image,
	})
}

func (h *MarketplaceHandler) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	products, err := h.productUseCase.ListProducts(ctx)
	if err != nil {
		h.log.Errorf("gRPC Handler: ListProducts use case error: %v", err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	resp := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(products))}
	for i := range products {
		s, err := mapDomainProductToStruct(&products[i])
		if err != nil {
			h.log.Errorf("gRPC Handler: Could not encode product %s: %v", products[i].ID, err)
			return nil, status.Error(codes.Internal, "Internal server error")
		}
		resp.Values = append(resp.Values, structpb.NewStructValue(s))
	}

	h.log.Infof("gRPC Handler: Listed %d products successfully", len(resp.Values))
	return resp, nil
}

func (h *MarketplaceHandler) DeleteProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := req.GetValue()
	h.log.Infof("gRPC Handler: Received DeleteProduct request: ID=%s", id)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "Product ID is required")
	}

	if err := h.productUseCase.DeleteProduct(ctx, id); err != nil {
		h.log.Warnf("gRPC Handler: DeleteProduct use case error for ID %s: %v", id, err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	return structpb.NewStruct(map[string]interface{}{"message": "Product deleted successfully"})
}

func (h *MarketplaceHandler) IncrementViewCount(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	count, err := h.viewUseCase.RecordView(ctx)
	if err != nil {
		h.log.Errorf("gRPC Handler: IncrementViewCount use case error: %v", err)
		return nil, status.Error(codes.Internal, "Failed to get or update view count")
	}
	return wrapperspb.Int64(count), nil
}

func mapDomainErrorToGrpcStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, "Product not found")
	case errors.Is(err, domain.ErrImageRequired), errors.Is(err, domain.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
}
