package usecases

import (
	"context"

	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type InitProductCommand struct {
	Name        string
	Description string
}

type InitProductResult struct {
	ProviderProductID string
}

// InitProductUseCase registers the catalog product all provider plans
// attach to. It is a one-shot admin setup step; the returned id goes
// into configuration.
type InitProductUseCase struct {
	gateway BillingGateway
	logger  logger.Interface
}

func NewInitProductUseCase(gateway BillingGateway, logger logger.Interface) *InitProductUseCase {
	return &InitProductUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

func (uc *InitProductUseCase) Execute(ctx context.Context, cmd InitProductCommand) (*InitProductResult, error) {
	if cmd.Name == "" {
		return nil, apperrors.NewValidationError("product name is required")
	}

	productID, err := uc.gateway.CreateProduct(ctx, cmd.Name, cmd.Description)
	if err != nil {
		uc.logger.Errorw("failed to create provider product", "error", err)
		return nil, apperrors.NewUpstreamError("billing provider request failed")
	}

	uc.logger.Infow("provider product created", "provider_product_id", productID)
	return &InitProductResult{ProviderProductID: productID}, nil
}
