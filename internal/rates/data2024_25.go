package rates

import (
	"sync"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE TABLE ASSUMPTIONS (2024-25):
//
// 1. FIRB fees: four flat tiers per category, thresholds at $1m, $2m and $3m.
//    Company and trust purchasers pay the company variant of the same schedule.
// 2. Transfer duty: general (non-concessional) rates. NT's quadratic formula below
//    $525k is approximated by chords at $100k steps; its higher $3m/$5m flat rates
//    are not modelled. ACT's flat 4.54% rate above $1.455m is not modelled.
// 3. Land tax surcharge: property value is used as the land value proxy.
// 4. Bracket bases are derived from the marginal rates so every schedule is
//    continuous, except where a statutory step exists (VIC at $960k, WA at $725k).
// 5. Fixed fees are indicative estimates, not quotes.

var (
	defaultOnce  sync.Once
	defaultTable *domain.RateTable
)

// Default returns the compiled-in 2024-25 rate table. Each call returns a fresh
// copy so the shared table can never be modified.
func Default() *domain.RateTable {
	defaultOnce.Do(func() {
		defaultTable = build2024_25()
	})
	return defaultTable.Clone()
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func upTo(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func tiers(fees ...int64) []domain.FeeTier {
	thresholds := []int64{1_000_000, 2_000_000, 3_000_000}
	out := make([]domain.FeeTier, len(fees))
	for i, fee := range fees {
		out[i] = domain.FeeTier{Fee: d(fee)}
		if i < len(thresholds) && i < len(fees)-1 {
			out[i].Below = upTo(thresholds[i])
		}
	}
	return out
}

func bracket(min int64, max int64, rate string, base string) domain.Bracket {
	b := domain.Bracket{Min: d(min), Rate: pct(rate), Base: pct(base)}
	if max > 0 {
		b.Max = upTo(max)
	}
	return b
}

func build2024_25() *domain.RateTable {
	return &domain.RateTable{
		Metadata: domain.RateMetadata{
			FinancialYear: "2024-25",
			LastUpdated:   "2024-07-01",
			Description:   "Foreign purchaser fees, duties and surcharges for the 2024-25 financial year",
		},
		FIRB: domain.FIRBFees{
			Established: domain.FIRBTable{
				Individual: tiers(15_200, 30_400, 60_800, 91_200),
				Company:    tiers(30_400, 60_800, 121_600, 182_400),
			},
			NewDwelling: domain.FIRBTable{
				Individual: tiers(13_200, 26_400, 52_800, 79_200),
				Company:    tiers(26_400, 52_800, 105_600, 158_400),
			},
			VacantLand: domain.FIRBTable{
				Individual: tiers(5_500, 11_000, 22_000, 33_000),
				Company:    tiers(11_000, 22_000, 44_000, 66_000),
			},
		},
		States: map[domain.State]domain.StateRates{
			domain.StateNSW: {
				Name:               "New South Wales",
				StampDutySurcharge: pct("0.08"),
				LandTaxSurcharge:   pct("0.04"),
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 17_000, "0.0125", "0"),
					bracket(17_000, 36_000, "0.015", "212.5"),
					bracket(36_000, 97_000, "0.0175", "497.5"),
					bracket(97_000, 364_000, "0.035", "1565"),
					bracket(364_000, 1_212_000, "0.045", "10910"),
					bracket(1_212_000, 3_636_000, "0.055", "49070"),
					bracket(3_636_000, 0, "0.07", "182390"),
				},
			},
			domain.StateVIC: {
				Name:               "Victoria",
				StampDutySurcharge: pct("0.08"),
				LandTaxSurcharge:   pct("0.04"),
				LandTaxThreshold:   d(50_000),
				TransferDuty: []domain.Bracket{
					bracket(0, 25_000, "0.014", "0"),
					bracket(25_000, 130_000, "0.024", "350"),
					bracket(130_000, 960_000, "0.06", "2870"),
					// 5.5% of the whole value from $960k, a statutory step of $130
					bracket(960_000, 2_000_000, "0.055", "52800"),
					bracket(2_000_000, 0, "0.065", "110000"),
				},
			},
			domain.StateQLD: {
				Name:               "Queensland",
				StampDutySurcharge: pct("0.08"),
				LandTaxSurcharge:   pct("0.03"),
				LandTaxThreshold:   d(350_000),
				TransferDuty: []domain.Bracket{
					bracket(0, 5_000, "0", "0"),
					bracket(5_000, 75_000, "0.015", "0"),
					bracket(75_000, 540_000, "0.035", "1050"),
					bracket(540_000, 1_000_000, "0.045", "17325"),
					bracket(1_000_000, 0, "0.0575", "38025"),
				},
			},
			domain.StateSA: {
				Name:               "South Australia",
				StampDutySurcharge: pct("0.07"),
				LandTaxSurcharge:   decimal.Zero,
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 12_000, "0.01", "0"),
					bracket(12_000, 30_000, "0.02", "120"),
					bracket(30_000, 50_000, "0.03", "480"),
					bracket(50_000, 100_000, "0.035", "1080"),
					bracket(100_000, 200_000, "0.04", "2830"),
					bracket(200_000, 250_000, "0.0425", "6830"),
					bracket(250_000, 300_000, "0.0475", "8955"),
					bracket(300_000, 500_000, "0.05", "11330"),
					bracket(500_000, 0, "0.055", "21330"),
				},
			},
			domain.StateWA: {
				Name:               "Western Australia",
				StampDutySurcharge: pct("0.07"),
				LandTaxSurcharge:   decimal.Zero,
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 120_000, "0.019", "0"),
					bracket(120_000, 150_000, "0.0285", "2280"),
					bracket(150_000, 360_000, "0.038", "3135"),
					bracket(360_000, 725_000, "0.0475", "11115"),
					bracket(725_000, 0, "0.0515", "28453"),
				},
			},
			domain.StateTAS: {
				Name:               "Tasmania",
				StampDutySurcharge: pct("0.08"),
				LandTaxSurcharge:   pct("0.02"),
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 3_000, "0", "50"),
					bracket(3_000, 25_000, "0.0175", "50"),
					bracket(25_000, 75_000, "0.0225", "435"),
					bracket(75_000, 200_000, "0.035", "1560"),
					bracket(200_000, 375_000, "0.04", "5935"),
					bracket(375_000, 725_000, "0.0425", "12935"),
					bracket(725_000, 0, "0.045", "27810"),
				},
			},
			domain.StateACT: {
				Name:               "Australian Capital Territory",
				StampDutySurcharge: decimal.Zero,
				LandTaxSurcharge:   pct("0.0075"),
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 200_000, "0.012", "0"),
					bracket(200_000, 300_000, "0.022", "2400"),
					bracket(300_000, 500_000, "0.034", "4600"),
					bracket(500_000, 750_000, "0.0432", "11400"),
					bracket(750_000, 1_000_000, "0.059", "22200"),
					bracket(1_000_000, 0, "0.064", "36950"),
				},
			},
			domain.StateNT: {
				Name:               "Northern Territory",
				StampDutySurcharge: decimal.Zero,
				LandTaxSurcharge:   decimal.Zero,
				LandTaxThreshold:   decimal.Zero,
				TransferDuty: []domain.Bracket{
					bracket(0, 100_000, "0.0215714", "0"),
					bracket(100_000, 200_000, "0.0347144", "2157.14"),
					bracket(200_000, 300_000, "0.0478572", "5628.58"),
					bracket(300_000, 400_000, "0.0610001", "10414.30"),
					bracket(400_000, 525_000, "0.07578552", "16514.31"),
					bracket(525_000, 0, "0.0495", "25987.50"),
				},
			},
		},
		Fallback: domain.FallbackRates{
			StampDutySurcharge: pct("0.08"),
			StandardDuty:       pct("0.04"),
		},
		Vacancy: domain.VacancyRules{AnnualFee: d(11_490)},
		LMI: domain.LMIRules{
			MaxLVR:        pct("0.80"),
			MinLoanAmount: d(100_000),
			Rate:          pct("0.02"),
		},
		Ancillary: domain.AncillaryFees{
			Legal:              d(2_500),
			TransferFee:        d(350),
			TitleSearch:        d(50),
			BuildingInspection: d(600),
			Conveyancing:       d(1_800),
			LoanApplication:    d(600),
			CouncilRates:       d(2_500),
			WaterRates:         d(1_200),
			Insurance:          d(1_500),
		},
	}
}
