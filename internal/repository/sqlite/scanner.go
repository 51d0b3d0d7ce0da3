package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanAll scans every remaining row with scan.
func ScanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	results := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanWorker scans a single worker from a database row
func ScanWorker(scanner Scanner) (*Worker, error) {
	w := &Worker{}
	var hireDate sql.NullString
	var createdAt string

	err := scanner.Scan(&w.ID, &w.Name, &w.Position, &w.Phone, &w.Email, &hireDate, &w.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}

	if hireDate.Valid {
		t, err := ParseTimeFromDB(hireDate.String)
		if err != nil {
			return nil, err
		}
		w.HireDate = &t
	}
	if w.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return w, nil
}

// ScanTimeBlock scans a single time block from a database row
func ScanTimeBlock(scanner Scanner) (*TimeBlock, error) {
	b := &TimeBlock{}
	var clockIn string
	var clockOut sql.NullString

	err := scanner.Scan(
		&b.ID,
		&b.WorkerID,
		&b.BlockDate,
		&b.BlockNumber,
		&clockIn,
		&clockOut,
		&b.HoursWorked,
		&b.IsActive,
		&b.WeekNumber,
		&b.Year,
	)
	if err != nil {
		return nil, err
	}

	if b.ClockInTime, err = ParseTimeFromDB(clockIn); err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t, err := ParseTimeFromDB(clockOut.String)
		if err != nil {
			return nil, err
		}
		b.ClockOutTime = &t
	}

	return b, nil
}

// ScanFarm scans a single farm from a database row
func ScanFarm(scanner Scanner) (*Farm, error) {
	f := &Farm{}
	var createdAt string

	err := scanner.Scan(&f.ID, &f.Name, &f.OwnerName, &f.Address, &f.Acreage, &createdAt)
	if err != nil {
		return nil, err
	}
	if f.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return f, nil
}

// ScanField scans a single field from a database row
func ScanField(scanner Scanner) (*Field, error) {
	f := &Field{}
	var createdAt string

	err := scanner.Scan(&f.ID, &f.FarmID, &f.Name, &f.Acreage, &f.CropType, &f.SoilType, &createdAt)
	if err != nil {
		return nil, err
	}
	if f.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return f, nil
}

// ScanSoilTest scans a single soil test from a database row
func ScanSoilTest(scanner Scanner) (*SoilTest, error) {
	st := &SoilTest{}
	var labRef sql.NullString
	var testDate, createdAt string

	err := scanner.Scan(
		&st.ID,
		&st.FieldID,
		&labRef,
		&testDate,
		&st.PH,
		&st.OrganicMatter,
		&st.Phosphorus,
		&st.Potassium,
		&st.CEC,
		&st.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if labRef.Valid {
		ref := labRef.String
		st.LabReference = &ref
	}
	if st.TestDate, err = ParseTimeFromDB(testDate); err != nil {
		return nil, err
	}
	if st.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return st, nil
}
