// Package advisor suggests print settings from a document's file type.
// The suggestions come from a fixed rule table; no content is inspected.
package advisor

import (
	"strings"

	"printshop/internal/model"
)

var imageTypes = []string{"jpg", "png", "jpeg", "gif"}

// Recommend returns the settings suggested for fileType, which may be a bare
// extension ("pptx") or a full file name ("slides.pptx").
func Recommend(fileType string) model.Recommendation {
	ft := strings.ToLower(fileType)

	if strings.Contains(ft, "ppt") {
		return model.Recommendation{
			ColorMode: ptr(model.ColorModeColor),
			Quality:   ptr(model.QualityHigh),
			Sides:     ptr(model.SidesOne),
			Message:   "This appears to be a presentation document.",
			Tips: []string{
				"Color printing recommended for presentations",
				"High quality ensures graphics are clear",
				"One-sided printing helps with readability",
			},
		}
	}

	for _, ext := range imageTypes {
		if strings.Contains(ft, ext) {
			return model.Recommendation{
				ColorMode: ptr(model.ColorModeColor),
				Quality:   ptr(model.QualityHigh),
				Message:   "This appears to be an image file.",
				Tips: []string{
					"Color printing recommended for images",
					"High quality ensures details are preserved",
					"Consider the right paper size for your image proportions",
				},
			}
		}
	}

	return model.Recommendation{
		ColorMode: ptr(model.ColorModeBlackWhite),
		Quality:   ptr(model.QualityStandard),
		Sides:     ptr(model.SidesTwoLongEdge),
		Message:   "This appears to be a standard document.",
		Tips: []string{
			"Two-sided printing to save paper",
			"Black & White mode (this document likely has minimal color)",
			"Standard quality is sufficient for text documents",
		},
	}
}

// Default is the eco-friendly suggestion used when a document is unknown.
func Default() model.Recommendation {
	return model.Recommendation{
		ColorMode: ptr(model.ColorModeBlackWhite),
		Quality:   ptr(model.QualityStandard),
		Sides:     ptr(model.SidesTwoLongEdge),
		Message:   "We couldn't analyze your document. These are our default eco-friendly recommendations.",
		Tips: []string{
			"Using black & white saves on color ink",
			"Two-sided printing reduces paper usage",
			"Standard quality is sufficient for most documents",
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
