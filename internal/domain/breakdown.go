package domain

import "github.com/shopspring/decimal"

// FeeCategory groups a line item for rendering and totals
type FeeCategory string

const (
	CategoryForeign  FeeCategory = "foreign"  // one-off, foreign-buyer specific
	CategoryStandard FeeCategory = "standard" // one-off, paid by every buyer
	CategoryAnnual   FeeCategory = "annual"   // recurring each year
)

// FeeBreakdown is the result of one fee calculation. Amounts are unrounded AUD.
type FeeBreakdown struct {
	Descriptor    PropertyDescriptor `json:"descriptor" yaml:"descriptor"`
	FinancialYear string             `json:"financialYear" yaml:"financial_year"`

	// Foreign-buyer one-off costs
	FIRBFee            decimal.Decimal `json:"firbFee" yaml:"firb_fee"`
	StampDutySurcharge decimal.Decimal `json:"stampDutySurcharge" yaml:"stamp_duty_surcharge"`
	LegalFee           decimal.Decimal `json:"legal" yaml:"legal"`

	// Standard one-off costs
	StandardStampDuty        decimal.Decimal `json:"standardStampDuty" yaml:"standard_stamp_duty"`
	LendersMortgageInsurance decimal.Decimal `json:"lendersMortgageInsurance" yaml:"lenders_mortgage_insurance"`
	TransferFee              decimal.Decimal `json:"transferFee" yaml:"transfer_fee"`
	TitleSearch              decimal.Decimal `json:"titleSearch" yaml:"title_search"`
	BuildingInspection       decimal.Decimal `json:"buildingInspection" yaml:"building_inspection"`
	Conveyancing             decimal.Decimal `json:"conveyancing" yaml:"conveyancing"`
	LoanApplicationFee       decimal.Decimal `json:"loanApplicationFee" yaml:"loan_application_fee"`

	// Annual costs
	VacancyFee       decimal.Decimal `json:"vacancyFee" yaml:"vacancy_fee"`
	LandTaxSurcharge decimal.Decimal `json:"landTaxSurcharge" yaml:"land_tax_surcharge"`
	CouncilRates     decimal.Decimal `json:"councilRates" yaml:"council_rates"`
	WaterRates       decimal.Decimal `json:"waterRates" yaml:"water_rates"`
	Insurance        decimal.Decimal `json:"insurance" yaml:"insurance"`

	// VacancyFeeContingent is set when occupancy was not stated and the vacancy
	// fee is included only as a potential liability.
	VacancyFeeContingent bool            `json:"vacancyFeeContingent" yaml:"vacancy_fee_contingent"`
	LoanAmount           decimal.Decimal `json:"loanAmount" yaml:"loan_amount"`
	StateFallback        bool            `json:"stateFallback" yaml:"state_fallback"`

	ForeignTotal   decimal.Decimal `json:"foreignTotal" yaml:"foreign_total"`
	StandardTotal  decimal.Decimal `json:"standardTotal" yaml:"standard_total"`
	GrandTotal     decimal.Decimal `json:"grandTotal" yaml:"grand_total"`
	AnnualTotal    decimal.Decimal `json:"annualTotal" yaml:"annual_total"`
	FirstYearTotal decimal.Decimal `json:"firstYearTotal" yaml:"first_year_total"`
}

// LineItem is one labelled amount of a breakdown
type LineItem struct {
	Key        string          `json:"key"`
	Label      string          `json:"label"`
	Category   FeeCategory     `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Contingent bool            `json:"contingent,omitempty"`
}

// LineItems returns the breakdown's fees in display order
func (b FeeBreakdown) LineItems() []LineItem {
	vacancyLabel := "Vacancy fee"
	if b.VacancyFeeContingent {
		vacancyLabel = "Vacancy fee (if vacant)"
	}
	return []LineItem{
		{Key: "firb", Label: "FIRB application fee", Category: CategoryForeign, Amount: b.FIRBFee},
		{Key: "stampDutySurcharge", Label: "Foreign buyer duty surcharge", Category: CategoryForeign, Amount: b.StampDutySurcharge},
		{Key: "legal", Label: "Legal fees", Category: CategoryForeign, Amount: b.LegalFee},
		{Key: "standardStampDuty", Label: "Transfer (stamp) duty", Category: CategoryStandard, Amount: b.StandardStampDuty},
		{Key: "lendersMortgageInsurance", Label: "Lenders mortgage insurance (est.)", Category: CategoryStandard, Amount: b.LendersMortgageInsurance},
		{Key: "transferFee", Label: "Title transfer fee", Category: CategoryStandard, Amount: b.TransferFee},
		{Key: "titleSearch", Label: "Title search", Category: CategoryStandard, Amount: b.TitleSearch},
		{Key: "buildingInspection", Label: "Building & pest inspection", Category: CategoryStandard, Amount: b.BuildingInspection},
		{Key: "conveyancing", Label: "Conveyancing", Category: CategoryStandard, Amount: b.Conveyancing},
		{Key: "loanApplicationFee", Label: "Loan application fee", Category: CategoryStandard, Amount: b.LoanApplicationFee},
		{Key: "vacancyFee", Label: vacancyLabel, Category: CategoryAnnual, Amount: b.VacancyFee, Contingent: b.VacancyFeeContingent},
		{Key: "landTaxSurcharge", Label: "Land tax surcharge", Category: CategoryAnnual, Amount: b.LandTaxSurcharge},
		{Key: "councilRates", Label: "Council rates", Category: CategoryAnnual, Amount: b.CouncilRates},
		{Key: "waterRates", Label: "Water rates", Category: CategoryAnnual, Amount: b.WaterRates},
		{Key: "insurance", Label: "Building insurance", Category: CategoryAnnual, Amount: b.Insurance},
	}
}

// FiveYearCost is the upfront cost plus five years of recurring charges
func (b FeeBreakdown) FiveYearCost() decimal.Decimal {
	return b.GrandTotal.Add(b.AnnualTotal.Mul(decimal.NewFromInt(5)))
}
