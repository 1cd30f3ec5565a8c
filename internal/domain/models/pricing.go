package models

import "github.com/shopspring/decimal"

// AdditionalService is an operator-entered price line not tied to a day.
type AdditionalService struct {
	Name  string          `json:"name" validate:"required,max=200"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// PricingOptions is the per-itinerary pricing blob. It is persisted beside
// the itinerary and never alters stored cost lines.
type PricingOptions struct {
	TaxPercentage      decimal.Decimal     `json:"taxPercentage" validate:"gte=0,lte=100"`
	AgentCharges       decimal.Decimal     `json:"agentCharges" validate:"gte=0"`
	AdditionalServices []AdditionalService `json:"additionalServices" validate:"dive"`
	ShowPerPersonPrice bool                `json:"showPerPersonPrice"`
}

// DefaultPricingOptions returns the only defaults the core applies.
func DefaultPricingOptions() PricingOptions {
	return PricingOptions{
		TaxPercentage:      decimal.Zero,
		AgentCharges:       decimal.Zero,
		AdditionalServices: []AdditionalService{},
	}
}

// AgencySettings are process-wide operator settings used when summarizing
// and rendering.
type AgencySettings struct {
	CompanyName    string `json:"company_name"`
	CurrencySymbol string `json:"currency_symbol"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	FooterNote     string `json:"footer_note,omitempty"`
}

// DefaultAgencySettings is used when no settings row exists.
func DefaultAgencySettings() AgencySettings {
	return AgencySettings{
		CompanyName:    "Travel Desk",
		CurrencySymbol: "Rs.",
	}
}
