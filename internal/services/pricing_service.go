package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidatePricingOptions checks operator input before it is persisted.
func ValidatePricingOptions(opts models.PricingOptions) error {
	err := optionsValidator.Struct(opts)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.ValidationError{Field: fieldPath(fe.Namespace()), Msg: fmt.Sprintf("failed %s", fe.Tag()), Err: err}
	}
	return domain.ValidationError{Field: "pricing_options", Msg: err.Error(), Err: err}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// PricingService builds priced itinerary views.
type PricingService struct {
	Itineraries ItineraryStore
	Activities  ActivityStore
	Options     PricingOptionsStore
	Settings    *SettingsCache
	RequestID   string
}

// GetOptions returns stored options, or the defaults when none exist.
func (s PricingService) GetOptions(ctx context.Context, itineraryID int64) (models.PricingOptions, error) {
	opts, found, err := pricingOptionsStoreOr(s.Options).GetPricingOptions(ctx, itineraryID)
	if err != nil {
		return models.PricingOptions{}, err
	}
	if !found {
		return models.DefaultPricingOptions(), nil
	}
	if opts.AdditionalServices == nil {
		opts.AdditionalServices = []models.AdditionalService{}
	}
	return opts, nil
}

func (s PricingService) SaveOptions(ctx context.Context, itineraryID int64, opts models.PricingOptions) (models.PricingOptions, error) {
	if opts.AdditionalServices == nil {
		opts.AdditionalServices = []models.AdditionalService{}
	}
	for i := range opts.AdditionalServices {
		opts.AdditionalServices[i].Name = utils.NormalizeSpace(opts.AdditionalServices[i].Name)
	}
	if err := ValidatePricingOptions(opts); err != nil {
		return models.PricingOptions{}, err
	}
	if _, err := itineraryStoreOr(s.Itineraries).GetItinerary(ctx, itineraryID); err != nil {
		return models.PricingOptions{}, err
	}
	if err := pricingOptionsStoreOr(s.Options).SavePricingOptions(ctx, itineraryID, opts); err != nil {
		utils.LogFailure(s.RequestID, "pricing", "save_options", err)
		return models.PricingOptions{}, err
	}
	utils.LogEvent(s.RequestID, "pricing", "save_options", fmt.Sprintf("itinerary_id=%d services=%d", itineraryID, len(opts.AdditionalServices)))
	return opts, nil
}

// Summary prices an itinerary from its stored days and options.
func (s PricingService) Summary(ctx context.Context, itineraryID int64) (models.PricingSummary, error) {
	view, err := s.ItineraryView(ctx, itineraryID)
	if err != nil {
		return models.PricingSummary{}, err
	}
	return view.PricingSummary, nil
}

// ItineraryView assembles everything a renderer needs in one value.
func (s PricingService) ItineraryView(ctx context.Context, itineraryID int64) (models.ItineraryView, error) {
	days, err := DayService{Itineraries: s.Itineraries, RequestID: s.RequestID}.ListDays(ctx, itineraryID)
	if err != nil {
		return models.ItineraryView{}, err
	}
	it, err := itineraryStoreOr(s.Itineraries).GetItinerary(ctx, itineraryID)
	if err != nil {
		return models.ItineraryView{}, err
	}
	acts, err := ActivityService{Activities: s.Activities, RequestID: s.RequestID}.ListActivities(ctx, itineraryID)
	if err != nil {
		return models.ItineraryView{}, err
	}
	opts, err := s.GetOptions(ctx, itineraryID)
	if err != nil {
		return models.ItineraryView{}, err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return models.ItineraryView{}, err
	}

	it.Days = days
	summary := domain.PricingAggregator{Settings: settings}.Summarize(days, opts, it.TravelerCount())
	return models.ItineraryView{
		Itinerary:      it,
		Days:           days,
		Activities:     acts,
		PricingSummary: summary,
	}, nil
}
