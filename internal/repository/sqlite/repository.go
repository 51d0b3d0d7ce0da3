package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// TimeBlockSearchOptions filters time blocks. From and To bound the block
// date as a half-open range [From, To); either may be nil.
type TimeBlockSearchOptions struct {
	WorkerID   string
	From       *time.Time
	To         *time.Time
	ActiveOnly bool
}

// Repository defines the interface for database operations
type Repository interface {
	// Workers
	CreateWorker(ctx context.Context, worker *Worker) error
	GetWorker(ctx context.Context, id string) (*Worker, error)
	ListWorkers(ctx context.Context, activeOnly bool) ([]*Worker, error)
	UpdateWorker(ctx context.Context, worker *Worker) error

	// Time blocks
	CreateTimeBlock(ctx context.Context, block *TimeBlock) error
	GetTimeBlock(ctx context.Context, id string) (*TimeBlock, error)
	SearchTimeBlocks(ctx context.Context, opts TimeBlockSearchOptions) ([]*TimeBlock, error)
	UpdateTimeBlock(ctx context.Context, block *TimeBlock) error

	// Farms and fields
	CreateFarm(ctx context.Context, farm *Farm) error
	GetFarm(ctx context.Context, id string) (*Farm, error)
	ListFarms(ctx context.Context) ([]*Farm, error)
	CreateField(ctx context.Context, field *Field) error
	GetField(ctx context.Context, id string) (*Field, error)
	ListFields(ctx context.Context, farmID string) ([]*Field, error)
	UpdateField(ctx context.Context, field *Field) error

	// Soil tests
	CreateSoilTest(ctx context.Context, test *SoilTest) error
	GetSoilTest(ctx context.Context, id string) (*SoilTest, error)
	ListSoilTests(ctx context.Context, fieldID string) ([]*SoilTest, error)
	UpdateSoilTest(ctx context.Context, test *SoilTest) error

	// Utility
	Close() error
}

// Options tunes a repository. Zero timeouts leave the caller's context alone.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository with the given timeouts.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: SQLite serializes writers anyway, and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

const workerColumns = `id, name, position, phone, email, hire_date, is_active, created_at`

// CreateWorker inserts a new worker
func (r *SQLiteRepository) CreateWorker(ctx context.Context, worker *Worker) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO workers (` + workerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, "create worker", query,
		worker.ID, worker.Name, worker.Position, worker.Phone, worker.Email,
		FormatTimePtrForDB(worker.HireDate), worker.IsActive, FormatTimeForDB(worker.CreatedAt))
}

// GetWorker retrieves a worker by ID
func (r *SQLiteRepository) GetWorker(ctx context.Context, id string) (*Worker, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanWorker, "worker", id, id)
}

// ListWorkers retrieves workers ordered by name
func (r *SQLiteRepository) ListWorkers(ctx context.Context, activeOnly bool) ([]*Worker, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + workerColumns + ` FROM workers`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanWorker, "workers")
}

// UpdateWorker updates an existing worker
func (r *SQLiteRepository) UpdateWorker(ctx context.Context, worker *Worker) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE workers
	SET name = ?, position = ?, phone = ?, email = ?, hire_date = ?, is_active = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "worker", worker.ID,
		worker.Name, worker.Position, worker.Phone, worker.Email,
		FormatTimePtrForDB(worker.HireDate), worker.IsActive, worker.ID)
}

const timeBlockColumns = `id, worker_id, block_date, block_number, clock_in_time, clock_out_time, hours_worked, is_active, week_number, year`

// CreateTimeBlock inserts a new time block
func (r *SQLiteRepository) CreateTimeBlock(ctx context.Context, block *TimeBlock) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO time_blocks (` + timeBlockColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, "create time block", query,
		block.ID, block.WorkerID, block.BlockDate, block.BlockNumber,
		FormatTimeForDB(block.ClockInTime), FormatTimePtrForDB(block.ClockOutTime),
		block.HoursWorked, block.IsActive, block.WeekNumber, block.Year)
}

// GetTimeBlock retrieves a time block by ID
func (r *SQLiteRepository) GetTimeBlock(ctx context.Context, id string) (*TimeBlock, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeBlock, "time block", id, id)
}

// SearchTimeBlocks returns blocks matching opts ordered by date then block number
func (r *SQLiteRepository) SearchTimeBlocks(ctx context.Context, opts TimeBlockSearchOptions) ([]*TimeBlock, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}

	if opts.WorkerID != "" {
		conditions = append(conditions, "worker_id = ?")
		args = append(args, opts.WorkerID)
	}
	if opts.From != nil {
		conditions = append(conditions, "block_date >= ?")
		args = append(args, FormatDateForDB(*opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "block_date < ?")
		args = append(args, FormatDateForDB(*opts.To))
	}
	if opts.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY block_date ASC, block_number ASC"

	return QueryMultiple(ctx, r.db, query, ScanTimeBlock, "time blocks", args...)
}

// UpdateTimeBlock updates an existing time block
func (r *SQLiteRepository) UpdateTimeBlock(ctx context.Context, block *TimeBlock) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE time_blocks
	SET clock_in_time = ?, clock_out_time = ?, hours_worked = ?, is_active = ?, week_number = ?, year = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time block", block.ID,
		FormatTimeForDB(block.ClockInTime), FormatTimePtrForDB(block.ClockOutTime),
		block.HoursWorked, block.IsActive, block.WeekNumber, block.Year, block.ID)
}

const farmColumns = `id, name, owner_name, address, acreage, created_at`

// CreateFarm inserts a new farm
func (r *SQLiteRepository) CreateFarm(ctx context.Context, farm *Farm) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO farms (` + farmColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, "create farm", query,
		farm.ID, farm.Name, farm.OwnerName, farm.Address, farm.Acreage, FormatTimeForDB(farm.CreatedAt))
}

// GetFarm retrieves a farm by ID
func (r *SQLiteRepository) GetFarm(ctx context.Context, id string) (*Farm, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanFarm, "farm", id, id)
}

// ListFarms retrieves all farms ordered by name
func (r *SQLiteRepository) ListFarms(ctx context.Context) ([]*Farm, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanFarm, "farms")
}

const fieldColumns = `id, farm_id, name, acreage, crop_type, soil_type, created_at`

// CreateField inserts a new field
func (r *SQLiteRepository) CreateField(ctx context.Context, field *Field) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO fields (` + fieldColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, "create field", query,
		field.ID, field.FarmID, field.Name, field.Acreage, field.CropType, field.SoilType, FormatTimeForDB(field.CreatedAt))
}

// GetField retrieves a field by ID
func (r *SQLiteRepository) GetField(ctx context.Context, id string) (*Field, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanField, "field", id, id)
}

// ListFields retrieves fields, optionally restricted to one farm
func (r *SQLiteRepository) ListFields(ctx context.Context, farmID string) ([]*Field, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + fieldColumns + ` FROM fields`
	var args []interface{}
	if farmID != "" {
		query += ` WHERE farm_id = ?`
		args = append(args, farmID)
	}
	query += ` ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanField, "fields", args...)
}

// UpdateField updates an existing field
func (r *SQLiteRepository) UpdateField(ctx context.Context, field *Field) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE fields
	SET name = ?, acreage = ?, crop_type = ?, soil_type = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "field", field.ID,
		field.Name, field.Acreage, field.CropType, field.SoilType, field.ID)
}

const soilTestColumns = `id, field_id, lab_reference, test_date, ph, organic_matter, phosphorus, potassium, cec, notes, created_at`

// CreateSoilTest inserts a new soil test
func (r *SQLiteRepository) CreateSoilTest(ctx context.Context, test *SoilTest) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO soil_tests (` + soilTestColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, "create soil test", query,
		test.ID, test.FieldID, nullableString(test.LabReference), FormatTimeForDB(test.TestDate),
		test.PH, test.OrganicMatter, test.Phosphorus, test.Potassium, test.CEC,
		test.Notes, FormatTimeForDB(test.CreatedAt))
}

// GetSoilTest retrieves a soil test by ID
func (r *SQLiteRepository) GetSoilTest(ctx context.Context, id string) (*SoilTest, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + soilTestColumns + ` FROM soil_tests WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanSoilTest, "soil test", id, id)
}

// ListSoilTests retrieves a field's soil tests, newest first
func (r *SQLiteRepository) ListSoilTests(ctx context.Context, fieldID string) ([]*SoilTest, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + soilTestColumns + ` FROM soil_tests WHERE field_id = ? ORDER BY test_date DESC, created_at DESC`
	return QueryMultiple(ctx, r.db, query, ScanSoilTest, "soil tests", fieldID)
}

// UpdateSoilTest updates an existing soil test
func (r *SQLiteRepository) UpdateSoilTest(ctx context.Context, test *SoilTest) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE soil_tests
	SET lab_reference = ?, test_date = ?, ph = ?, organic_matter = ?, phosphorus = ?, potassium = ?, cec = ?, notes = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "soil test", test.ID,
		nullableString(test.LabReference), FormatTimeForDB(test.TestDate),
		test.PH, test.OrganicMatter, test.Phosphorus, test.Potassium, test.CEC,
		test.Notes, test.ID)
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
