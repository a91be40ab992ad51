package output

// DefaultAssumptions lists key modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"FIRB fees: flat tier for the whole value, thresholds at $1m, $2m and $3m",
	"Foreign buyer duty surcharge: flat share of the whole value (unknown states: 8%)",
	"Transfer duty: general rates, no concessions (unknown states: 4% flat)",
	"Land tax surcharge: property value used as the land value",
	"LMI: 2% of value when LVR exceeds 80% and the loan exceeds $100,000 (estimate only)",
	"Vacancy fee: dwellings only; included as contingent when occupancy is not stated",
	"Legal, conveyancing, inspection and holding costs are indicative estimates",
}
