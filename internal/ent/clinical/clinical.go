// Package clinical describes patient-level clinical data and the rules
// for deriving survival related fields.
package clinical

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is the sentinel used by clinical tables for unknown values.
const NotAvailable = "[Not Available]"

// ErrNotAvailable is returned when a required value is absent.
var ErrNotAvailable = errors.New("value is not available")

// Patient contains clinical attributes of one patient.
type Patient struct {
	// ID is a 12-character TCGA barcode of the patient.
	ID string

	// CancerLoc is the cancer type the clinical table belongs to.
	CancerLoc string

	// VitalStatus is 1 for deceased, 0 for living, NaN when unknown.
	VitalStatus float64

	// SurvivalDays is the overall survival in days.
	SurvivalDays float64

	// AgeAtDiagnosis is the age in years.
	AgeAtDiagnosis int
}

// Loader provides clinical data for a list of cancer types.
type Loader interface {
	// Patients returns patients of all cancer types, grouped by cancer
	// type in the given order.
	Patients(cancerLocs []string) ([]Patient, error)
}

// VitalStatus converts OS_STATUS text to a binary value.
func VitalStatus(s string) float64 {
	switch strings.TrimSpace(s) {
	case "DECEASED":
		return 1
	case "LIVING":
		return 0
	default:
		return math.NaN()
	}
}

// SurvivalDays converts OS_MONTHS to days using 30.5 days per month. An
// empty or NA cell gives NaN.
func SurvivalDays(months string) (float64, error) {
	months = strings.TrimSpace(months)
	switch months {
	case NotAvailable:
		return 0, ErrNotAvailable
	case "", "NA", "NaN", "nan":
		return math.NaN(), nil
	}
	m, err := strconv.ParseFloat(months, 64)
	if err != nil {
		return 0, err
	}
	return 30.5 * m, nil
}

// AgeAtDiagnosis converts DAYS_TO_BIRTH (a negative number of days) to
// years. Halves are rounded to the even number.
func AgeAtDiagnosis(daysToBirth string) (int, error) {
	daysToBirth = strings.TrimSpace(daysToBirth)
	if daysToBirth == NotAvailable {
		return 0, ErrNotAvailable
	}
	d, err := strconv.ParseFloat(daysToBirth, 64)
	if err != nil {
		return 0, err
	}
	return int(math.RoundToEven(-d / 365)), nil
}
