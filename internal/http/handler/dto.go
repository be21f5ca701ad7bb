package handler

import (
	"strings"

	"printshop/internal/model"
	"printshop/internal/service"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=128"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Plan     string `json:"plan" validate:"omitempty,plan"`
}

type updateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,max=128"`
	Plan *string `json:"plan" validate:"omitempty,plan"`
}

// settingsRequest holds the print options. Omitted options take the shop
// defaults: one copy, black and white, A4, portrait, one-sided, standard.
type settingsRequest struct {
	Copies      *int   `json:"copies" validate:"omitempty,min=1,max=100"`
	ColorMode   string `json:"colorMode" validate:"omitempty,colormode"`
	PaperSize   string `json:"paperSize" validate:"omitempty,papersize"`
	Orientation string `json:"orientation" validate:"omitempty,orientation"`
	Sides       string `json:"sides" validate:"omitempty,sides"`
	Quality     string `json:"quality" validate:"omitempty,quality"`
}

func (r settingsRequest) toModel() model.PrintSettings {
	s := model.PrintSettings{
		Copies:      1,
		ColorMode:   model.ColorModeBlackWhite,
		PaperSize:   model.PaperA4,
		Orientation: model.OrientationPortrait,
		Sides:       model.SidesOne,
		Quality:     model.QualityStandard,
	}
	if r.Copies != nil {
		s.Copies = *r.Copies
	}
	if r.ColorMode != "" {
		s.ColorMode = model.ColorMode(r.ColorMode)
	}
	if r.PaperSize != "" {
		s.PaperSize = model.PaperSize(r.PaperSize)
	}
	if r.Orientation != "" {
		s.Orientation = model.Orientation(r.Orientation)
	}
	if r.Sides != "" {
		s.Sides = model.Sides(r.Sides)
	}
	if r.Quality != "" {
		s.Quality = model.Quality(r.Quality)
	}
	return s
}

type createPrintJobRequest struct {
	UserID     string  `json:"userId" validate:"required"`
	DocumentID string  `json:"documentId" validate:"required,uuid"`
	PrinterID  *string `json:"printerId" validate:"omitempty,uuid"`
	TokenType  string  `json:"tokenType" validate:"omitempty,tokentype"`
	settingsRequest
}

func (r createPrintJobRequest) toInput() service.CreatePrintJobInput {
	return service.CreatePrintJobInput{
		UserID:     r.UserID,
		DocumentID: r.DocumentID,
		PrinterID:  r.PrinterID,
		TokenType:  model.TokenType(r.TokenType),
		Settings:   r.settingsRequest.toModel(),
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,jobstatus"`
}

type estimateRequest struct {
	DocumentID string `json:"documentId" validate:"omitempty,uuid"`
	Pages      *int   `json:"pages" validate:"omitempty,min=0"`
	TokenType  string `json:"tokenType" validate:"omitempty,tokentype"`
	settingsRequest
}

type featuresRequest struct {
	Color          bool            `json:"color"`
	Duplex         bool            `json:"duplex"`
	MaxPaperSize   string          `json:"maxPaperSize" validate:"omitempty,papersize"`
	PagesPerMinute int             `json:"pagesPerMinute" validate:"min=0"`
	Extras         map[string]bool `json:"extras"`
}

type createPrinterRequest struct {
	Name      string          `json:"name" validate:"required,max=128"`
	Address   string          `json:"address" validate:"required,max=256"`
	Latitude  *float64        `json:"latitude" validate:"required,latitude"`
	Longitude *float64        `json:"longitude" validate:"required,longitude"`
	IsOpen    bool            `json:"isOpen"`
	Features  featuresRequest `json:"features"`
}

func (r createPrinterRequest) toInput() service.CreatePrinterInput {
	return service.CreatePrinterInput{
		Name:      r.Name,
		Address:   r.Address,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		IsOpen:    r.IsOpen,
		Features: model.PrinterFeatures{
			Color:          r.Features.Color,
			Duplex:         r.Features.Duplex,
			MaxPaperSize:   model.PaperSize(r.Features.MaxPaperSize),
			PagesPerMinute: r.Features.PagesPerMinute,
			Extras:         r.Features.Extras,
		},
	}
}

type setOpenRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}

type createPaymentRequest struct {
	UserID            string  `json:"userId" validate:"required"`
	PrintJobID        *string `json:"printJobId" validate:"omitempty,uuid"`
	Amount            float64 `json:"amount" validate:"gt=0"`
	Currency          string  `json:"currency" validate:"omitempty,len=3,alpha"`
	ExternalPaymentID string  `json:"externalPaymentId" validate:"max=128"`
}

// paymentCallbackRequest is sent by the payment gateway. razorpayId is the
// field name older gateway integrations use for the external id.
type paymentCallbackRequest struct {
	ExternalPaymentID string `json:"externalPaymentId" validate:"max=128"`
	RazorpayID        string `json:"razorpayId" validate:"max=128"`
	Status            string `json:"status" validate:"required,oneof=completed cancelled"`
}

func (r paymentCallbackRequest) externalID() string {
	if r.ExternalPaymentID != "" {
		return r.ExternalPaymentID
	}
	return r.RazorpayID
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r contactRequest) toInput() service.ContactInput {
	return service.ContactInput{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}
