package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

func init() {
	RegisterGoMigration(3, Up_000003_backfill_time_block_weeks, Down_000003_backfill_time_block_weeks)
}

// Up_000003_backfill_time_block_weeks fills week_number and year for blocks
// recorded before those columns existed. The ISO week is taken from the
// clock-in time in the process's local zone, matching how new blocks are tagged.
func Up_000003_backfill_time_block_weeks(tx *sql.Tx) error {
	type block struct {
		id      string
		clockIn string
	}
	var blocks []block

	// Read everything first; the connection is shared with the updates below.
	rows, err := tx.Query("SELECT id, clock_in_time FROM time_blocks WHERE year = 0")
	if err != nil {
		return fmt.Errorf("failed to query time blocks: %w", err)
	}
	for rows.Next() {
		var b block
		if err := rows.Scan(&b.id, &b.clockIn); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan time block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating time blocks: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE time_blocks SET year = ?, week_number = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare week update statement: %w", err)
	}
	defer stmt.Close()

	for _, b := range blocks {
		clockIn, err := time.Parse(time.RFC3339, b.clockIn)
		if err != nil {
			return fmt.Errorf("time block %s has unparseable clock-in %q: %w", b.id, b.clockIn, err)
		}
		year, week := clockIn.Local().ISOWeek()
		if _, err := stmt.Exec(year, week, b.id); err != nil {
			return fmt.Errorf("failed to update time block %s: %w", b.id, err)
		}
	}

	return nil
}

// Down_000003_backfill_time_block_weeks resets the backfilled tags.
func Down_000003_backfill_time_block_weeks(tx *sql.Tx) error {
	_, err := tx.Exec("UPDATE time_blocks SET year = 0, week_number = 0")
	return err
}
