package sqlite

import "time"

// Worker is the stored form of a farm worker.
type Worker struct {
	ID        string
	Name      string
	Position  string
	Phone     string
	Email     string
	HireDate  *time.Time
	IsActive  bool
	CreatedAt time.Time
}

// TimeBlock is one clock-in/clock-out interval.
// BlockDate holds the calendar day as YYYY-MM-DD.
type TimeBlock struct {
	ID           string
	WorkerID     string
	BlockDate    string
	BlockNumber  int
	ClockInTime  time.Time
	ClockOutTime *time.Time // nil while the block is open
	HoursWorked  float64
	IsActive     bool
	WeekNumber   int
	Year         int
}

// Farm is the stored form of a farm.
type Farm struct {
	ID        string
	Name      string
	OwnerName string
	Address   string
	Acreage   float64
	CreatedAt time.Time
}

// Field is a parcel of a farm; it owns soil tests.
type Field struct {
	ID        string
	FarmID    string
	Name      string
	Acreage   float64
	CropType  string
	SoilType  string
	CreatedAt time.Time
}

// SoilTest is a point-in-time chemistry sample for a field.
type SoilTest struct {
	ID            string
	FieldID       string
	LabReference  *string
	TestDate      time.Time
	PH            float64
	OrganicMatter float64
	Phosphorus    float64
	Potassium     float64
	CEC           float64
	Notes         string
	CreatedAt     time.Time
}
