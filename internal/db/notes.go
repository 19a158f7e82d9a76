package db

import (
	"database/sql"
	"fmt"
	"time"
)

// TimeLayout is the storage format for due_at. Lexicographic order matches
// chronological order, so SQL string comparison is safe.
const TimeLayout = "2006-01-02 15:04:05"

type Note struct {
	ID        int64
	Owner     string
	Content   string
	CreatedAt string
	DueAt     *time.Time
}

// InsertNote appends a note. A nil dueAt makes it a simple note; a non-nil
// dueAt makes it a reminder. Returns the assigned id.
func (d *DB) InsertNote(owner, content string, dueAt *time.Time) (int64, error) {
	var due any
	if dueAt != nil {
		due = dueAt.In(d.loc).Format(TimeLayout)
	}
	res, err := d.conn.Exec(
		"INSERT INTO notes (owner, content, due_at) VALUES (?, ?, ?)",
		owner, content, due,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting note: %w", err)
	}
	return res.LastInsertId()
}

// ListPending returns the owner's reminders with due_at strictly after now,
// soonest first.
func (d *DB) ListPending(owner string, now time.Time) ([]Note, error) {
	rows, err := d.conn.Query(
		"SELECT id, owner, content, created_at, due_at FROM notes WHERE owner = ? AND due_at IS NOT NULL AND due_at > ? ORDER BY due_at ASC",
		owner, d.nowString(now),
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending notes: %w", err)
	}
	defer rows.Close()
	return d.scanNotes(rows)
}

// ListCompleted returns the owner's reminders with due_at at or before now,
// most recent first.
func (d *DB) ListCompleted(owner string, now time.Time) ([]Note, error) {
	rows, err := d.conn.Query(
		"SELECT id, owner, content, created_at, due_at FROM notes WHERE owner = ? AND due_at IS NOT NULL AND due_at <= ? ORDER BY due_at DESC",
		owner, d.nowString(now),
	)
	if err != nil {
		return nil, fmt.Errorf("listing completed notes: %w", err)
	}
	defer rows.Close()
	return d.scanNotes(rows)
}

// ListSimple returns the owner's notes with no due time, newest first.
func (d *DB) ListSimple(owner string) ([]Note, error) {
	rows, err := d.conn.Query(
		"SELECT id, owner, content, created_at, due_at FROM notes WHERE owner = ? AND due_at IS NULL ORDER BY id DESC",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("listing simple notes: %w", err)
	}
	defer rows.Close()
	return d.scanNotes(rows)
}

// PendingReminders returns reminders across all owners with due_at after now.
// The scheduler rebuilds its timer set from this at startup.
func (d *DB) PendingReminders(now time.Time) ([]Note, error) {
	rows, err := d.conn.Query(
		"SELECT id, owner, content, created_at, due_at FROM notes WHERE due_at IS NOT NULL AND due_at > ? ORDER BY due_at ASC",
		d.nowString(now),
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending reminders: %w", err)
	}
	defer rows.Close()
	return d.scanNotes(rows)
}

// GetNote returns the note with the given id, or nil if it does not exist.
func (d *DB) GetNote(id int64) (*Note, error) {
	row := d.conn.QueryRow(
		"SELECT id, owner, content, created_at, due_at FROM notes WHERE id = ?", id,
	)
	var n Note
	var due sql.NullString
	err := row.Scan(&n.ID, &n.Owner, &n.Content, &n.CreatedAt, &due)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting note %d: %w", id, err)
	}
	if err := d.parseDue(due, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote removes a note by id. Deleting an id that does not exist is a
// no-op, not an error.
func (d *DB) DeleteNote(id int64) error {
	if _, err := d.conn.Exec("DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	return nil
}

// nowString renders an instant as stored wall time. due_at strings are wall
// time in d.loc, so a comparison instant must be converted there first or a
// process running in another zone misclassifies pending and completed rows.
func (d *DB) nowString(now time.Time) string {
	return now.In(d.loc).Format(TimeLayout)
}

func (d *DB) scanNotes(rows *sql.Rows) ([]Note, error) {
	var out []Note
	for rows.Next() {
		var n Note
		var due sql.NullString
		if err := rows.Scan(&n.ID, &n.Owner, &n.Content, &n.CreatedAt, &due); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if err := d.parseDue(due, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (d *DB) parseDue(due sql.NullString, n *Note) error {
	if !due.Valid {
		return nil
	}
	t, err := time.ParseInLocation(TimeLayout, due.String, d.loc)
	if err != nil {
		return fmt.Errorf("parsing due_at of note %d: %w", n.ID, err)
	}
	n.DueAt = &t
	return nil
}
