// Package store inspects the governance database written by the
// external relational setup program. Access is read-only: the schema
// belongs to the backend, this tool only judges readiness.
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Info summarizes a governance database for readiness checks.
type Info struct {
	Tables  int
	Systems int // registered AI systems; -1 when the registry table is absent
}

// Probe opens the database read-only and counts its tables and
// registered AI systems.
func Probe(path string) (Info, error) {
	if _, err := os.Stat(path); err != nil {
		return Info{}, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return Info{}, fmt.Errorf("open governance db: %w", err)
	}
	defer db.Close()

	var info Info
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`).Scan(&info.Tables); err != nil {
		return Info{}, fmt.Errorf("count tables: %w", err)
	}

	info.Systems = -1
	var systems int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ai_systems`).Scan(&systems); err == nil {
		info.Systems = systems
	}

	return info, nil
}
