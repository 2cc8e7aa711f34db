// Package dbtest provides a seeded SQLite catalogue for tests that need a real store.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Schema creates the catalogue tables and the normalized fitment view.
var Schema = []string{
	`CREATE TABLE make (make_id INTEGER PRIMARY KEY, make_name TEXT NOT NULL)`,
	`CREATE TABLE model (model_id INTEGER PRIMARY KEY, model_name TEXT NOT NULL, make_id INTEGER NOT NULL)`,
	`CREATE TABLE trim (trim_id INTEGER PRIMARY KEY, trim_name TEXT NOT NULL, model_id INTEGER NOT NULL,
		make_id INTEGER NOT NULL, year INTEGER)`,
	`CREATE TABLE part_type (part_type_id INTEGER PRIMARY KEY, parttype_name TEXT NOT NULL)`,
	`CREATE TABLE position (position_id INTEGER PRIMARY KEY, position_code TEXT NOT NULL)`,
	`CREATE TABLE drive_train (drive_id INTEGER PRIMARY KEY, drive_code TEXT NOT NULL)`,
	`CREATE TABLE brand (brand_id INTEGER PRIMARY KEY, brand_name TEXT NOT NULL)`,
	`CREATE TABLE listing (listing_id INTEGER PRIMARY KEY, listing_title TEXT NOT NULL, price REAL,
		trim_id INTEGER, brand_id INTEGER, part_type_id INTEGER, position_id INTEGER, drive_id INTEGER, mpn TEXT)`,
	`CREATE TABLE brand_alias (alias_text TEXT NOT NULL, canonical_value TEXT)`,
	`CREATE VIEW view_normalizedfitment AS
		SELECT mk.make_id, mk.make_name, md.model_id, md.model_name, t.year, t.trim_id, t.trim_name,
			b.brand_id, b.brand_name, pt.part_type_id, pt.parttype_name, p.position_id, p.position_code,
			d.drive_id, d.drive_code, l.listing_id, l.listing_title, l.price
		FROM listing l
		JOIN trim t ON l.trim_id = t.trim_id
		JOIN model md ON t.model_id = md.model_id
		JOIN make mk ON t.make_id = mk.make_id
		LEFT JOIN brand b ON l.brand_id = b.brand_id
		LEFT JOIN part_type pt ON l.part_type_id = pt.part_type_id
		LEFT JOIN position p ON l.position_id = p.position_id
		LEFT JOIN drive_train d ON l.drive_id = d.drive_id`,
}

// Rows seeds five listings; listing 4 has no trim and never appears in the view.
var Rows = []string{
	`INSERT INTO make VALUES (1, 'Ford'), (2, 'Honda')`,
	`INSERT INTO model VALUES (10, 'F-150', 1), (20, 'Civic', 2)`,
	`INSERT INTO trim VALUES (100, 'XL', 10, 1, 2019), (101, 'Lariat', 10, 1, 2020), (200, 'LX', 20, 2, 2018)`,
	`INSERT INTO part_type VALUES (1, 'Brake Pad'), (2, 'Rotor')`,
	`INSERT INTO position VALUES (1, 'FRONT'), (2, 'REAR')`,
	`INSERT INTO drive_train VALUES (1, '4WD'), (2, 'FWD')`,
	`INSERT INTO brand VALUES (1, 'MOOG'), (2, 'Bosch'), (3, 'OEM Direct')`,
	`INSERT INTO listing VALUES
		(1, 'Front brake pads', 49.99, 100, 1, 1, 1, 1, 'MPN-1'),
		(2, 'OEM rotor', 89.5, 101, 2, 2, 1, 1, NULL),
		(3, 'Rear pads', 25, 200, 1, 1, 2, 2, 'MPN-3'),
		(4, 'Orphan pad', 10, NULL, 2, 1, 1, 1, NULL),
		(5, 'OEM style pads', 30, 100, 3, 1, 1, 1, 'MPN-5')`,
	`INSERT INTO brand_alias VALUES ('MOOG', 'Moog Inc'), ('MOOG', 'Federal-Mogul'), ('BOSCH', 'Robert Bosch'),
		('ACDELCO', 'ACDelco')`,
}

// Open creates a SQLite file under t.TempDir, runs statements in order and returns the handle and
// the file path. The handle is closed when the test ends.
func Open(t *testing.T, statements ...[]string) (*gorm.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fitment.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	for _, group := range statements {
		for _, stmt := range group {
			require.NoError(t, db.Exec(stmt).Error, stmt)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, path
}

// OpenSeeded opens a store with Schema and Rows applied.
func OpenSeeded(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	return Open(t, Schema, Rows)
}
