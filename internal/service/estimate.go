package service

import (
	"context"
	"fmt"

	"printshop/internal/model"
	"printshop/internal/pricing"
	"printshop/internal/repository"
)

// QuoteInput prices either a stored document or an explicit page count.
// DocumentID wins when both are set.
type QuoteInput struct {
	DocumentID string
	Pages      *int
	Settings   model.PrintSettings
	TokenType  model.TokenType
}

type EstimateService interface {
	Quote(ctx context.Context, in QuoteInput) (*model.Quote, error)
}

type estimateService struct {
	documents repository.DocumentRepository
}

func NewEstimateService(documents repository.DocumentRepository) EstimateService {
	return &estimateService{documents: documents}
}

func (s *estimateService) Quote(ctx context.Context, in QuoteInput) (*model.Quote, error) {
	if in.TokenType == "" {
		in.TokenType = model.TokenNormal
	}
	if !in.TokenType.Valid() {
		return nil, validationf("unknown token type %q", in.TokenType)
	}
	if err := ValidateSettings(in.Settings); err != nil {
		return nil, err
	}

	var pages int
	switch {
	case in.DocumentID != "":
		doc, err := s.documents.FindByID(ctx, in.DocumentID)
		if err != nil {
			return nil, notFound(err, "document")
		}
		pages = doc.EstimatedPages
	case in.Pages != nil:
		if *in.Pages < 0 {
			return nil, validationf("pages must not be negative")
		}
		pages = *in.Pages
	default:
		return nil, validationf("either documentId or pages is required")
	}
	if err := pricing.CheckTokenLimit(pages, in.TokenType); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	q := pricing.Quote(pages, in.Settings, in.TokenType)
	return &q, nil
}
