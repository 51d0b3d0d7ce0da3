package services

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"farm-tracker/internal/domain"
)

// Fixed agronomic bands used by the status rules.
const (
	phGoodMin    = 6.0
	phGoodMax    = 7.5
	phWarningMin = 5.5
	phWarningMax = 8.0

	organicMatterPoor = 2.0
	organicMatterGood = 3.0

	phosphorusAdequate = 15.0
	potassiumAdequate  = 100.0
	cecAdequate        = 10.0

	// DefaultRecentTestDays is how old a test may be and still count as current.
	DefaultRecentTestDays = 1095
)

// PHStatus rates pH: good in [6.0, 7.5], warning in [5.5, 6.0) or
// (7.5, 8.0], poor otherwise.
func PHStatus(ph float64) domain.HealthStatus {
	switch {
	case ph >= phGoodMin && ph <= phGoodMax:
		return domain.StatusGood
	case ph >= phWarningMin && ph < phGoodMin, ph > phGoodMax && ph <= phWarningMax:
		return domain.StatusWarning
	default:
		return domain.StatusPoor
	}
}

// OrganicMatterStatus rates organic matter percent.
func OrganicMatterStatus(om float64) domain.HealthStatus {
	switch {
	case om >= organicMatterGood:
		return domain.StatusGood
	case om >= organicMatterPoor:
		return domain.StatusWarning
	default:
		return domain.StatusPoor
	}
}

// OverallNutrientStatus counts how many of phosphorus, potassium and CEC
// reach their adequate level: all three is good, none is poor.
func OverallNutrientStatus(p, k, cec float64) domain.HealthStatus {
	score := 0
	if p >= phosphorusAdequate {
		score++
	}
	if k >= potassiumAdequate {
		score++
	}
	if cec >= cecAdequate {
		score++
	}

	switch score {
	case 3:
		return domain.StatusGood
	case 0:
		return domain.StatusPoor
	default:
		return domain.StatusWarning
	}
}

// SoilBiologyStatus combines organic matter and pH: good when both are in
// their good range, warning when one is, poor when neither is.
func SoilBiologyStatus(om, ph float64) domain.HealthStatus {
	okOM := om >= organicMatterGood
	okPH := ph >= phGoodMin && ph <= phGoodMax

	switch {
	case okOM && okPH:
		return domain.StatusGood
	case okOM || okPH:
		return domain.StatusWarning
	default:
		return domain.StatusPoor
	}
}

// TestAgeOf measures whole local days from testDate to now.
func TestAgeOf(testDate, now time.Time) domain.TestAge {
	from := domain.StartOfDay(testDate)
	to := domain.StartOfDay(now)
	days := int(math.Round(to.Sub(from).Hours() / 24))

	if days == 0 {
		return domain.TestAge{Days: 0, Display: "Today"}
	}
	return domain.TestAge{Days: days, Display: humanize.RelTime(from, to, "ago", "from now")}
}

// SoilInterpreter turns soil test values into statuses, levels and advice.
// It holds only configuration and is safe for concurrent use.
type SoilInterpreter struct {
	tables         NutrientTables
	recentTestDays int
}

// NewSoilInterpreter creates an interpreter. Nil tables use the defaults and
// a non-positive recentTestDays uses DefaultRecentTestDays.
func NewSoilInterpreter(tables NutrientTables, recentTestDays int) *SoilInterpreter {
	if tables == nil {
		tables = DefaultNutrientTables()
	}
	if recentTestDays <= 0 {
		recentTestDays = DefaultRecentTestDays
	}
	return &SoilInterpreter{tables: tables, recentTestDays: recentTestDays}
}

// NutrientLevel classifies value using the nutrient's table
func (si *SoilInterpreter) NutrientLevel(value float64, nutrient domain.Nutrient) domain.NutrientLevel {
	table, ok := si.tables[nutrient]
	if !ok {
		return domain.LevelUnknown
	}
	return table.Classify(value)
}

// IsRecentTest reports whether the test is at most the configured number of days old
func (si *SoilInterpreter) IsRecentTest(testDate, now time.Time) bool {
	return TestAgeOf(testDate, now).Days <= si.recentTestDays
}

// Interpret produces the full report for a soil test as of now
func (si *SoilInterpreter) Interpret(test domain.SoilTest, now time.Time) domain.SoilReport {
	report := domain.SoilReport{
		Test:           test,
		PHStatus:       PHStatus(test.PH),
		OrganicMatter:  OrganicMatterStatus(test.OrganicMatter),
		NutrientStatus: OverallNutrientStatus(test.Phosphorus, test.Potassium, test.CEC),
		BiologyStatus:  SoilBiologyStatus(test.OrganicMatter, test.PH),
		NutrientLevels: map[domain.Nutrient]domain.NutrientLevel{
			domain.Phosphorus: si.NutrientLevel(test.Phosphorus, domain.Phosphorus),
			domain.Potassium:  si.NutrientLevel(test.Potassium, domain.Potassium),
			domain.CEC:        si.NutrientLevel(test.CEC, domain.CEC),
		},
		Age:         TestAgeOf(test.TestDate, now),
		GeneratedAt: now,
	}
	report.IsRecent = report.Age.Days <= si.recentTestDays

	report.Interpretation = si.interpretation(report)
	report.Recommendations = si.recommendations(report)
	return report
}

func (si *SoilInterpreter) interpretation(r domain.SoilReport) []string {
	t := r.Test
	lines := []string{phText(t.PH, r.PHStatus)}

	switch r.OrganicMatter {
	case domain.StatusGood:
		lines = append(lines, fmt.Sprintf("Organic matter at %.1f%% supports good structure and water holding.", t.OrganicMatter))
	case domain.StatusWarning:
		lines = append(lines, fmt.Sprintf("Organic matter at %.1f%% is moderate.", t.OrganicMatter))
	default:
		lines = append(lines, fmt.Sprintf("Organic matter at %.1f%% is low.", t.OrganicMatter))
	}

	lines = append(lines,
		fmt.Sprintf("Phosphorus %s (%.0f ppm).", r.NutrientLevels[domain.Phosphorus], t.Phosphorus),
		fmt.Sprintf("Potassium %s (%.0f ppm).", r.NutrientLevels[domain.Potassium], t.Potassium),
		fmt.Sprintf("CEC %s (%.1f meq/100g).", r.NutrientLevels[domain.CEC], t.CEC),
	)
	return lines
}

func phText(ph float64, status domain.HealthStatus) string {
	switch {
	case status == domain.StatusGood:
		return fmt.Sprintf("pH %.1f is in the optimal range.", ph)
	case ph < phGoodMin && status == domain.StatusWarning:
		return fmt.Sprintf("pH %.1f is slightly acidic.", ph)
	case ph < phGoodMin:
		return fmt.Sprintf("pH %.1f is strongly acidic.", ph)
	case status == domain.StatusWarning:
		return fmt.Sprintf("pH %.1f is slightly alkaline.", ph)
	default:
		return fmt.Sprintf("pH %.1f is strongly alkaline.", ph)
	}
}

func (si *SoilInterpreter) recommendations(r domain.SoilReport) []string {
	t := r.Test
	var recs []string

	switch {
	case t.PH < phGoodMin:
		recs = append(recs, "Apply agricultural lime to raise pH toward 6.5.")
	case t.PH > phGoodMax:
		recs = append(recs, "Apply elemental sulfur or an acidifying fertilizer to lower pH.")
	}
	if r.OrganicMatter != domain.StatusGood {
		recs = append(recs, "Incorporate compost or plant cover crops to build organic matter.")
	}
	if r.NutrientLevels[domain.Phosphorus] == domain.LevelLow {
		recs = append(recs, "Apply a phosphate fertilizer before planting.")
	}
	if r.NutrientLevels[domain.Potassium] == domain.LevelLow {
		recs = append(recs, "Apply potash to correct low potassium.")
	}
	if r.NutrientLevels[domain.CEC] == domain.LevelLow {
		recs = append(recs, "Low CEC limits nutrient holding; split fertilizer into smaller applications.")
	}
	if !r.IsRecent {
		recs = append(recs, fmt.Sprintf("This test is %s; resample the field.", r.Age.Display))
	}

	if len(recs) == 0 {
		recs = append(recs, "No corrective action needed. Maintain current practices.")
	}
	return recs
}
