// Package pricing computes print costs and token fees.
//
// All arithmetic is done in decimal so identical inputs always produce the
// identical, exactly rounded price.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"printshop/internal/model"
)

var (
	colorPerPage = decimal.RequireFromString("0.25")
	monoPerPage  = decimal.RequireFromString("0.10")

	highQuality  = decimal.RequireFromString("1.5")
	draftQuality = decimal.RequireFromString("0.8")

	duplexDiscount = decimal.RequireFromString("0.9")

	priorityFee = decimal.RequireFromString("1.50")
)

// Page limits per token. Pages are counted per document, not per copy.
const (
	NormalPageLimit   = 20
	PriorityPageLimit = 80
)

// ErrPageLimit is returned when a document is too long for the chosen token.
var ErrPageLimit = errors.New("page limit exceeded for token")

// Estimate returns the price of printing pages with the given options,
// rounded to two decimal places. It never includes a token fee.
//
// Callers must pass pages >= 0 and copies >= 1.
func Estimate(pages int, color model.ColorMode, quality model.Quality, duplex bool, copies int) float64 {
	return estimate(pages, color, quality, duplex, copies).InexactFloat64()
}

func estimate(pages int, color model.ColorMode, quality model.Quality, duplex bool, copies int) decimal.Decimal {
	base := monoPerPage
	if color == model.ColorModeColor {
		base = colorPerPage
	}

	price := decimal.NewFromInt(int64(pages)).
		Mul(base).
		Mul(qualityMultiplier(quality)).
		Mul(decimal.NewFromInt(int64(copies)))
	if duplex {
		price = price.Mul(duplexDiscount)
	}
	return price.Round(2)
}

func qualityMultiplier(q model.Quality) decimal.Decimal {
	switch q {
	case model.QualityHigh:
		return highQuality
	case model.QualityDraft:
		return draftQuality
	default:
		return decimal.NewFromInt(1)
	}
}

// TokenFee returns the flat booking fee for a token type.
func TokenFee(token model.TokenType) float64 {
	return tokenFee(token).InexactFloat64()
}

func tokenFee(token model.TokenType) decimal.Decimal {
	if token == model.TokenPriority {
		return priorityFee
	}
	return decimal.Zero
}

// Quote prices a job: the estimate for the settings plus the token fee.
func Quote(pages int, s model.PrintSettings, token model.TokenType) model.Quote {
	printCost := estimate(pages, s.ColorMode, s.Quality, s.Sides.Duplex(), s.Copies)
	fee := tokenFee(token)
	return model.Quote{
		Pages:     pages,
		PrintCost: printCost.InexactFloat64(),
		TokenFee:  fee.InexactFloat64(),
		Total:     printCost.Add(fee).Round(2).InexactFloat64(),
		Currency:  model.DefaultCurrency,
	}
}

// PageLimit returns the maximum document length bookable under token.
func PageLimit(token model.TokenType) int {
	if token == model.TokenPriority {
		return PriorityPageLimit
	}
	return NormalPageLimit
}

// CheckTokenLimit reports ErrPageLimit when pages exceed the token's limit.
func CheckTokenLimit(pages int, token model.TokenType) error {
	if limit := PageLimit(token); pages > limit {
		return fmt.Errorf("%w: %d pages, %s token allows %d", ErrPageLimit, pages, token, limit)
	}
	return nil
}
