package services

import (
	"fmt"
	"greenroute-backend/models"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Default prices used whenever a setting is missing or zero
var (
	defaultSizePrices = models.SizePrices{Small: 25, Medium: 35, Large: 50, Estate: 80}
	defaultExtras     = models.ExtraPrices{Fertilizer: 15, Edging: 10, Weeding: 25, LeafCleanup: 20}
)

const defaultPricePerSqMetre = 0.05

// Baseline durations for the size-based branch; not derived from price
var sizeDurations = map[models.LawnSize]int{
	models.LawnSizeSmall:  30,
	models.LawnSizeMedium: 45,
	models.LawnSizeLarge:  90,
	models.LawnSizeEstate: 180,
}

type extraCategory struct {
	match string
	price func(models.ExtraPrices) float64
}

// Checked in order; an extra counts towards the first category it matches
var extraCategories = []extraCategory{
	{"fertili", func(p models.ExtraPrices) float64 { return p.Fertilizer }},
	{"edg", func(p models.ExtraPrices) float64 { return p.Edging }},
	{"weed", func(p models.ExtraPrices) float64 { return p.Weeding }},
	{"leaf", func(p models.ExtraPrices) float64 { return p.LeafCleanup }},
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func sizePrice(size models.LawnSize, prices models.SizePrices) float64 {
	switch size {
	case models.LawnSizeSmall:
		return orDefault(prices.Small, defaultSizePrices.Small)
	case models.LawnSizeLarge:
		return orDefault(prices.Large, defaultSizePrices.Large)
	case models.LawnSizeEstate:
		return orDefault(prices.Estate, defaultSizePrices.Estate)
	default:
		return orDefault(prices.Medium, defaultSizePrices.Medium)
	}
}

func normalizeSize(size models.LawnSize) models.LawnSize {
	if _, ok := sizeDurations[size]; ok {
		return size
	}
	return models.LawnSizeMedium
}

func frequencyDiscountPct(freq models.Frequency, d models.FrequencyDiscount) float64 {
	var pct float64
	switch freq {
	case models.FrequencyWeekly:
		pct = d.Weekly
	case models.FrequencyFortnightly:
		pct = d.Fortnightly
	case models.FrequencyMonthly:
		pct = d.Monthly
	}
	return math.Max(0, math.Min(100, pct))
}

// ExtrasTotal sums the flat price of every recognised extra. Unrecognised names add nothing.
func ExtrasTotal(extras []string, prices models.ExtraPrices) decimal.Decimal {
	defaults := defaultExtras
	total := decimal.Zero
	for _, extra := range extras {
		name := strings.ToLower(extra)
		for _, cat := range extraCategories {
			if strings.Contains(name, cat.match) {
				total = total.Add(decimal.NewFromFloat(orDefault(cat.price(prices), cat.price(defaults))))
				break
			}
		}
	}
	return total
}

// AreaDuration is the duration estimate for a measured lawn
func AreaDuration(area float64) int {
	return int(math.Max(15, math.Round(area/10)+15))
}

// UsesAreaPricing reports which branch ComputeQuote takes for req
func UsesAreaPricing(req *models.QuoteRequest, settings *models.BusinessSettings) bool {
	return req != nil && settings != nil && settings.UseAreaPricing && req.LawnArea > 0
}

// ComputeQuote prices a request. It never fails; nil or zero settings fall back to defaults.
func ComputeQuote(req *models.QuoteRequest, settings *models.BusinessSettings) models.QuoteResponse {
	if req == nil {
		req = &models.QuoteRequest{}
	}
	if settings == nil {
		settings = &models.BusinessSettings{}
	}

	var (
		base     decimal.Decimal
		duration int
		label    string
	)
	if UsesAreaPricing(req, settings) {
		rate := orDefault(settings.PricePerSqMetre, defaultPricePerSqMetre)
		base = decimal.NewFromFloat(req.LawnArea).Mul(decimal.NewFromFloat(rate))
		duration = AreaDuration(req.LawnArea)
		label = fmt.Sprintf("%.0f m² lawn", req.LawnArea)
	} else {
		size := normalizeSize(req.LawnSize)
		base = decimal.NewFromFloat(sizePrice(size, settings.Prices))
		duration = sizeDurations[size]
		label = fmt.Sprintf("%s lawn", capitalize(string(size)))
	}

	extras := ExtrasTotal(req.Extras, settings.ExtraPrices)

	surcharges := decimal.Zero
	if settings.ApplySurcharges {
		if settings.OvergrownDurationThreshold > 0 && duration > settings.OvergrownDurationThreshold {
			surcharges = surcharges.Add(decimal.NewFromFloat(settings.OvergrownSurcharge))
		}
		if settings.FuelSurchargeRadiusKm > 0 && req.DistanceKm > settings.FuelSurchargeRadiusKm {
			surcharges = surcharges.Add(decimal.NewFromFloat(settings.FuelSurcharge))
		}
	}

	pct := frequencyDiscountPct(req.Frequency, settings.FrequencyDiscounts)
	discount := base.Add(extras).Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))

	total := base.Add(extras).Add(surcharges).Sub(discount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	breakdown := models.PriceBreakdown{
		Base:       base.Round(2).InexactFloat64(),
		Extras:     extras.Round(2).InexactFloat64(),
		Surcharges: surcharges.Round(2).InexactFloat64(),
		Discount:   discount.Round(2).InexactFloat64(),
	}

	return models.QuoteResponse{
		EstimatedPrice:           total.InexactFloat64(),
		EstimatedDurationMinutes: duration,
		Explanation:              explainQuote(label, duration, req.Frequency, pct, breakdown, total),
		PriceBreakdown:           breakdown,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func explainQuote(label string, duration int, freq models.Frequency, pct float64, b models.PriceBreakdown, total decimal.Decimal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (about %d minutes) from %.2f", label, duration, b.Base)
	if b.Extras > 0 {
		fmt.Fprintf(&sb, ", plus %.2f for extras", b.Extras)
	}
	if b.Surcharges > 0 {
		fmt.Fprintf(&sb, ", plus %.2f in surcharges", b.Surcharges)
	}
	if b.Discount > 0 {
		fmt.Fprintf(&sb, ", less %.2f (%s%% %s discount)", b.Discount, decimal.NewFromFloat(pct).String(), strings.ReplaceAll(string(freq), "_", "-"))
	}
	fmt.Fprintf(&sb, ". Estimated total %s.", total.StringFixed(2))
	return sb.String()
}
