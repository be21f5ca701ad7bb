package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/model"
	"printshop/internal/pricing"
)

func TestEstimateService_Quote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.addDocument(t, "user-1", 12)
	svc := NewEstimateService(f.store.Documents)

	intPtr := func(n int) *int { return &n }
	color := defaultSettings()
	color.ColorMode = model.ColorModeColor
	color.Quality = model.QualityHigh
	color.Sides = model.SidesTwoLongEdge
	color.Copies = 2

	tests := []struct {
		name    string
		in      QuoteInput
		want    model.Quote
		wantErr error
	}{
		{
			name: "stored document",
			in:   QuoteInput{DocumentID: doc.ID, Settings: defaultSettings()},
			want: model.Quote{Pages: 12, PrintCost: 1.2, Total: 1.2, Currency: model.DefaultCurrency},
		},
		{
			name: "explicit pages with every modifier",
			in:   QuoteInput{Pages: intPtr(10), Settings: color},
			want: model.Quote{Pages: 10, PrintCost: 6.75, Total: 6.75, Currency: model.DefaultCurrency},
		},
		{
			name: "priority token fee",
			in:   QuoteInput{Pages: intPtr(10), Settings: defaultSettings(), TokenType: model.TokenPriority},
			want: model.Quote{Pages: 10, PrintCost: 1, TokenFee: 1.5, Total: 2.5, Currency: model.DefaultCurrency},
		},
		{
			name: "document wins over pages",
			in:   QuoteInput{DocumentID: doc.ID, Pages: intPtr(1), Settings: defaultSettings()},
			want: model.Quote{Pages: 12, PrintCost: 1.2, Total: 1.2, Currency: model.DefaultCurrency},
		},
		{
			name: "zero pages is free",
			in:   QuoteInput{Pages: intPtr(0), Settings: defaultSettings()},
			want: model.Quote{Currency: model.DefaultCurrency},
		},
		{
			name: "priority allows longer documents",
			in:   QuoteInput{Pages: intPtr(50), Settings: defaultSettings(), TokenType: model.TokenPriority},
			want: model.Quote{Pages: 50, PrintCost: 5, TokenFee: 1.5, Total: 6.5, Currency: model.DefaultCurrency},
		},
		{name: "over the normal page limit", in: QuoteInput{Pages: intPtr(50), Settings: defaultSettings()}, wantErr: pricing.ErrPageLimit},
		{name: "page limit is a validation error", in: QuoteInput{Pages: intPtr(21), Settings: defaultSettings()}, wantErr: ErrValidation},
		{name: "negative pages", in: QuoteInput{Pages: intPtr(-1), Settings: defaultSettings()}, wantErr: ErrValidation},
		{name: "no source", in: QuoteInput{Settings: defaultSettings()}, wantErr: ErrValidation},
		{name: "unknown document", in: QuoteInput{DocumentID: "missing", Settings: defaultSettings()}, wantErr: ErrNotFound},
		{name: "bad settings", in: QuoteInput{Pages: intPtr(1)}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Quote(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
