package mirror

import (
	"database/sql"
	"fmt"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Icon is a bitmap known to the icon catalogue.
type Icon struct {
	// Name is the weather icon code, such as "01d".
	Name string
	// Path is the bitmap's location within the icon filesystem.
	Path         string
	SHA1         string
	Width        int
	Height       int
	BitsPerPixel int
}

// IconDB is the icon catalogue.
type IconDB struct {
	db *sql.DB
}

// NewIconDB opens or creates the catalogue stored in file.
func NewIconDB(file string) (*IconDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS icon (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, path TEXT NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, bpp INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &IconDB{
		db: db,
	}, nil
}

// Close closes the catalogue.
func (db *IconDB) Close() error {
	return db.db.Close()
}

// AddIcon adds or replaces the icon with the same name.
func (db *IconDB) AddIcon(icon Icon) error {
	if _, err := db.db.Exec("INSERT INTO icon (name, path, sha1, width, height, bpp) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET path = excluded.path, sha1 = excluded.sha1, width = excluded.width, height = excluded.height, bpp = excluded.bpp", icon.Name, icon.Path, icon.SHA1, icon.Width, icon.Height, icon.BitsPerPixel); err != nil {
		return err
	}
	return nil
}

// FindIcon returns the named icon, or nil if there is no such icon.
func (db *IconDB) FindIcon(name string) (*Icon, error) {
	icon := Icon{Name: name}
	switch err := db.db.QueryRow("SELECT path, sha1, width, height, bpp FROM icon WHERE name = ?", name).Scan(&icon.Path, &icon.SHA1, &icon.Width, &icon.Height, &icon.BitsPerPixel); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &icon, nil
	default:
		return nil, err
	}
}

// Icons returns every icon ordered by name.
func (db *IconDB) Icons() ([]Icon, error) {
	rows, err := db.db.Query("SELECT name, path, sha1, width, height, bpp FROM icon ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var icons []Icon
	for rows.Next() {
		var icon Icon
		if err := rows.Scan(&icon.Name, &icon.Path, &icon.SHA1, &icon.Width, &icon.Height, &icon.BitsPerPixel); err != nil {
			return nil, err
		}
		icons = append(icons, icon)
	}

	return icons, rows.Err()
}

// RemoveIcon deletes the named icon.
func (db *IconDB) RemoveIcon(name string) error {
	_, err := db.db.Exec("DELETE FROM icon WHERE name = ?", name)
	return err
}
