package ranking

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache stores parsed ranking editions in SQLite so the CSV tables only
// need parsing once. The CSV tables stay the source of truth; the cache can
// be rebuilt at any time.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a ranking cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ranking cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS core_rankings (
			edition INTEGER NOT NULL,
			position INTEGER NOT NULL,
			venue TEXT NOT NULL,
			acronym TEXT NOT NULL,
			rank TEXT NOT NULL,
			PRIMARY KEY (edition, position)
		);

		CREATE INDEX IF NOT EXISTS idx_core_rankings_acronym ON core_rankings(edition, acronym);
	`
	_, err := db.Exec(schema)
	return err
}

// Store replaces the cached rows of every given edition. Editions not in
// the argument are left untouched. Returns the number of rows written.
func (c *Cache) Store(editions []Edition) (int, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO core_rankings (edition, position, venue, acronym, rank)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, ed := range editions {
		if _, err := tx.Exec(`DELETE FROM core_rankings WHERE edition = ?`, ed.Year); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", ed.Label(), err)
		}
		for i, row := range ed.Rows {
			if _, err := stmt.Exec(ed.Year, i, row.Venue, row.Acronym, row.Rank); err != nil {
				return 0, fmt.Errorf("inserting %s row %d: %w", ed.Label(), i, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return count, nil
}

// Load reads every cached edition, rows in their original table order.
func (c *Cache) Load() ([]Edition, error) {
	rows, err := c.db.Query(`
		SELECT edition, venue, acronym, rank
		FROM core_rankings
		ORDER BY edition DESC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rankings: %w", err)
	}
	defer rows.Close()

	var editions []Edition
	for rows.Next() {
		var year int
		var row Row
		if err := rows.Scan(&year, &row.Venue, &row.Acronym, &row.Rank); err != nil {
			return nil, fmt.Errorf("scanning ranking row: %w", err)
		}
		if n := len(editions); n == 0 || editions[n-1].Year != year {
			editions = append(editions, Edition{Year: year})
		}
		last := &editions[len(editions)-1]
		last.Rows = append(last.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ranking rows: %w", err)
	}
	return editions, nil
}

// EditionCount is the number of rows cached for one edition.
type EditionCount struct {
	Year int `json:"year"`
	Rows int `json:"rows"`
}

// Counts returns the cached row count per edition, most recent first.
func (c *Cache) Counts() ([]EditionCount, error) {
	rows, err := c.db.Query(`
		SELECT edition, COUNT(*)
		FROM core_rankings
		GROUP BY edition
		ORDER BY edition DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("counting rankings: %w", err)
	}
	defer rows.Close()

	var counts []EditionCount
	for rows.Next() {
		var ec EditionCount
		if err := rows.Scan(&ec.Year, &ec.Rows); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts = append(counts, ec)
	}
	return counts, rows.Err()
}

// LoadResolver builds a resolver from the cached editions.
func (c *Cache) LoadResolver() (*Resolver, error) {
	editions, err := c.Load()
	if err != nil {
		return nil, err
	}
	return NewResolver(editions...), nil
}
