package calculation

import (
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/rates"
)

// FeeEngine orchestrates all fee calculations for a single rate table
type FeeEngine struct {
	Table         *domain.RateTable
	FIRBCalc      *FIRBFeeCalculator
	StampDutyCalc *StampDutyCalculator
	LandTaxCalc   *LandTaxCalculator
	AncillaryCalc *AncillaryCalculator
	logger        Logger
}

// NewFeeEngine creates a fee engine over the built-in rate table
func NewFeeEngine() *FeeEngine {
	return NewFeeEngineWithTable(rates.Default())
}

// NewFeeEngineWithTable creates a fee engine over the given table. The table is
// cloned so later changes by the caller cannot affect results.
func NewFeeEngineWithTable(table *domain.RateTable) *FeeEngine {
	if table == nil {
		table = rates.Default()
	}
	t := table.Clone()
	return &FeeEngine{
		Table:         t,
		FIRBCalc:      NewFIRBFeeCalculator(t.FIRB),
		StampDutyCalc: NewStampDutyCalculator(t.States, t.Fallback),
		LandTaxCalc:   NewLandTaxCalculator(t.States),
		AncillaryCalc: NewAncillaryCalculator(t.Vacancy, t.LMI, t.Ancillary),
		logger:        NopLogger{},
	}
}

// SetLogger sets the logger used for diagnostics. A nil logger disables output.
func (fe *FeeEngine) SetLogger(l Logger) {
	if l == nil {
		fe.logger = NopLogger{}
		return
	}
	fe.logger = l
}

// FinancialYear returns the financial year of the engine's rate table
func (fe *FeeEngine) FinancialYear() string {
	return fe.Table.Metadata.FinancialYear
}

// CalculateAllFees validates the descriptor and produces the full breakdown.
// The result depends only on the descriptor and the rate table.
func (fe *FeeEngine) CalculateAllFees(d domain.PropertyDescriptor) (domain.FeeBreakdown, error) {
	if err := d.Validate(); err != nil {
		return domain.FeeBreakdown{}, err
	}

	b := domain.FeeBreakdown{
		Descriptor:    d,
		FinancialYear: fe.Table.Metadata.FinancialYear,
		LoanAmount:    d.LoanAmount(),
	}

	b.FIRBFee = fe.FIRBCalc.Calculate(d)

	var surchargeFallback, dutyFallback bool
	b.StampDutySurcharge, surchargeFallback = fe.StampDutyCalc.CalculateSurcharge(d.State, d.PropertyValue)
	b.StandardStampDuty, dutyFallback = fe.StampDutyCalc.CalculateStandardDuty(d.State, d.PropertyValue)
	b.StateFallback = surchargeFallback || dutyFallback
	if b.StateFallback {
		fe.logger.Warnf("state %q not in rate table %s, using fallback rates", d.State, b.FinancialYear)
	}

	b.LandTaxSurcharge = fe.LandTaxCalc.CalculateSurcharge(d.State, d.PropertyValue)
	b.VacancyFee, b.VacancyFeeContingent = fe.AncillaryCalc.CalculateVacancyFee(d)
	b.LendersMortgageInsurance = fe.AncillaryCalc.CalculateLMI(d)

	fees := fe.AncillaryCalc.Fees
	b.LegalFee = fees.Legal
	b.TransferFee = fees.TransferFee
	b.TitleSearch = fees.TitleSearch
	b.BuildingInspection = fees.BuildingInspection
	b.Conveyancing = fees.Conveyancing
	b.LoanApplicationFee = fees.LoanApplication
	b.CouncilRates = fees.CouncilRates
	b.WaterRates = fees.WaterRates
	b.Insurance = fees.Insurance

	b.ForeignTotal = b.FIRBFee.Add(b.StampDutySurcharge).Add(b.LegalFee)
	b.StandardTotal = b.StandardStampDuty.
		Add(b.LendersMortgageInsurance).
		Add(b.TransferFee).
		Add(b.TitleSearch).
		Add(b.BuildingInspection).
		Add(b.Conveyancing).
		Add(b.LoanApplicationFee)
	b.GrandTotal = b.ForeignTotal.Add(b.StandardTotal)
	b.AnnualTotal = b.VacancyFee.
		Add(b.LandTaxSurcharge).
		Add(b.CouncilRates).
		Add(b.WaterRates).
		Add(b.Insurance)
	b.FirstYearTotal = b.GrandTotal.Add(b.AnnualTotal)

	fe.logger.Debugf("fees for %s: upfront=%s annual=%s", d.Key(), b.GrandTotal.StringFixed(2), b.AnnualTotal.StringFixed(2))
	return b, nil
}

// MustCalculate is CalculateAllFees for descriptors already known to be valid
func (fe *FeeEngine) MustCalculate(d domain.PropertyDescriptor) domain.FeeBreakdown {
	b, err := fe.CalculateAllFees(d)
	if err != nil {
		panic(fmt.Sprintf("calculation: %v", err))
	}
	return b
}
