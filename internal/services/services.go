// package services defines the [Converter] contract and the HTTP client for the conversion backend
package services

import (
	"context"

	"github.com/desertthunder/trackx/internal/models"
)

// Converter sends a classified request to the conversion backend.
//
// Implementations make exactly one attempt per call.
type Converter interface {
	Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error)
}

var _ Converter = (*APIService)(nil)
