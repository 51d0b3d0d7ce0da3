package domain

import (
	"fmt"

	"farm-tracker/internal/repository/sqlite"
)

// WorkerMapper handles conversion between domain and database Worker models.
type WorkerMapper struct{}

// NewWorkerMapper creates a new WorkerMapper instance.
func NewWorkerMapper() *WorkerMapper {
	return &WorkerMapper{}
}

// ToDatabase converts a domain Worker to a database Worker.
func (m *WorkerMapper) ToDatabase(w Worker) sqlite.Worker {
	return sqlite.Worker{
		ID:        w.ID,
		Name:      w.Name,
		Position:  w.Position,
		Phone:     w.Phone,
		Email:     w.Email,
		HireDate:  w.HireDate,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

// FromDatabase converts a database Worker to a domain Worker.
func (m *WorkerMapper) FromDatabase(w sqlite.Worker) Worker {
	return Worker{
		ID:        w.ID,
		Name:      w.Name,
		Position:  w.Position,
		Phone:     w.Phone,
		Email:     w.Email,
		HireDate:  w.HireDate,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Workers to domain Workers.
func (m *WorkerMapper) FromDatabaseSlice(dbWorkers []*sqlite.Worker) []Worker {
	workers := make([]Worker, len(dbWorkers))
	for i, w := range dbWorkers {
		workers[i] = m.FromDatabase(*w)
	}
	return workers
}

// TimeBlockMapper handles conversion between domain and database TimeBlock models.
type TimeBlockMapper struct{}

// NewTimeBlockMapper creates a new TimeBlockMapper instance.
func NewTimeBlockMapper() *TimeBlockMapper {
	return &TimeBlockMapper{}
}

// ToDatabase converts a domain TimeBlock to a database TimeBlock.
func (m *TimeBlockMapper) ToDatabase(b TimeBlock) sqlite.TimeBlock {
	return sqlite.TimeBlock{
		ID:           b.ID,
		WorkerID:     b.WorkerID,
		BlockDate:    sqlite.FormatDateForDB(b.Date),
		BlockNumber:  b.BlockNumber,
		ClockInTime:  b.ClockInTime,
		ClockOutTime: b.ClockOutTime,
		HoursWorked:  b.HoursWorked,
		IsActive:     b.IsActive,
		WeekNumber:   b.WeekNumber,
		Year:         b.Year,
	}
}

// FromDatabase converts a database TimeBlock to a domain TimeBlock.
func (m *TimeBlockMapper) FromDatabase(b sqlite.TimeBlock) (TimeBlock, error) {
	date, err := sqlite.ParseDateFromDB(b.BlockDate)
	if err != nil {
		return TimeBlock{}, fmt.Errorf("time block %s has invalid date %q: %w", b.ID, b.BlockDate, err)
	}
	return TimeBlock{
		ID:           b.ID,
		WorkerID:     b.WorkerID,
		Date:         date,
		BlockNumber:  b.BlockNumber,
		ClockInTime:  b.ClockInTime,
		ClockOutTime: b.ClockOutTime,
		HoursWorked:  b.HoursWorked,
		IsActive:     b.IsActive,
		WeekNumber:   b.WeekNumber,
		Year:         b.Year,
	}, nil
}

// FromDatabaseSlice converts a slice of database TimeBlocks to domain TimeBlocks.
func (m *TimeBlockMapper) FromDatabaseSlice(dbBlocks []*sqlite.TimeBlock) ([]TimeBlock, error) {
	blocks := make([]TimeBlock, len(dbBlocks))
	for i, b := range dbBlocks {
		block, err := m.FromDatabase(*b)
		if err != nil {
			return nil, err
		}
		blocks[i] = block
	}
	return blocks, nil
}

// FarmMapper handles conversion of farms and fields.
type FarmMapper struct{}

// NewFarmMapper creates a new FarmMapper instance.
func NewFarmMapper() *FarmMapper {
	return &FarmMapper{}
}

func (m *FarmMapper) FarmToDatabase(f Farm) sqlite.Farm {
	return sqlite.Farm{
		ID:        f.ID,
		Name:      f.Name,
		OwnerName: f.OwnerName,
		Address:   f.Address,
		Acreage:   f.Acreage,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FarmMapper) FarmFromDatabase(f sqlite.Farm) Farm {
	return Farm{
		ID:        f.ID,
		Name:      f.Name,
		OwnerName: f.OwnerName,
		Address:   f.Address,
		Acreage:   f.Acreage,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FarmMapper) FarmsFromDatabase(dbFarms []*sqlite.Farm) []Farm {
	farms := make([]Farm, len(dbFarms))
	for i, f := range dbFarms {
		farms[i] = m.FarmFromDatabase(*f)
	}
	return farms
}

func (m *FarmMapper) FieldToDatabase(f Field) sqlite.Field {
	return sqlite.Field{
		ID:        f.ID,
		FarmID:    f.FarmID,
		Name:      f.Name,
		Acreage:   f.Acreage,
		CropType:  f.CropType,
		SoilType:  f.SoilType,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FarmMapper) FieldFromDatabase(f sqlite.Field) Field {
	return Field{
		ID:        f.ID,
		FarmID:    f.FarmID,
		Name:      f.Name,
		Acreage:   f.Acreage,
		CropType:  f.CropType,
		SoilType:  f.SoilType,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FarmMapper) FieldsFromDatabase(dbFields []*sqlite.Field) []Field {
	fields := make([]Field, len(dbFields))
	for i, f := range dbFields {
		fields[i] = m.FieldFromDatabase(*f)
	}
	return fields
}

// SoilTestMapper handles conversion between domain and database SoilTest models.
type SoilTestMapper struct{}

// NewSoilTestMapper creates a new SoilTestMapper instance.
func NewSoilTestMapper() *SoilTestMapper {
	return &SoilTestMapper{}
}

// ToDatabase converts a domain SoilTest to a database SoilTest.
func (m *SoilTestMapper) ToDatabase(st SoilTest) sqlite.SoilTest {
	return sqlite.SoilTest{
		ID:            st.ID,
		FieldID:       st.FieldID,
		LabReference:  st.LabReference,
		TestDate:      st.TestDate,
		PH:            st.PH,
		OrganicMatter: st.OrganicMatter,
		Phosphorus:    st.Phosphorus,
		Potassium:     st.Potassium,
		CEC:           st.CEC,
		Notes:         st.Notes,
		CreatedAt:     st.CreatedAt,
	}
}

// FromDatabase converts a database SoilTest to a domain SoilTest.
func (m *SoilTestMapper) FromDatabase(st sqlite.SoilTest) SoilTest {
	return SoilTest{
		ID:            st.ID,
		FieldID:       st.FieldID,
		LabReference:  st.LabReference,
		TestDate:      st.TestDate,
		PH:            st.PH,
		OrganicMatter: st.OrganicMatter,
		Phosphorus:    st.Phosphorus,
		Potassium:     st.Potassium,
		CEC:           st.CEC,
		Notes:         st.Notes,
		CreatedAt:     st.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database SoilTests to domain SoilTests.
func (m *SoilTestMapper) FromDatabaseSlice(dbTests []*sqlite.SoilTest) []SoilTest {
	tests := make([]SoilTest, len(dbTests))
	for i, st := range dbTests {
		tests[i] = m.FromDatabase(*st)
	}
	return tests
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Worker    *WorkerMapper
	TimeBlock *TimeBlockMapper
	Farm      *FarmMapper
	SoilTest  *SoilTestMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Worker:    NewWorkerMapper(),
		TimeBlock: NewTimeBlockMapper(),
		Farm:      NewFarmMapper(),
		SoilTest:  NewSoilTestMapper(),
	}
}
