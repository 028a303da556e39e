//go:build integration

package testhelpers

import (
	"context"
	"testing"
)

func TestTestDB_Connection(t *testing.T) {
	testDB := GetTestDB(t)

	var result int
	if err := testDB.Pool.QueryRow(context.Background(), "SELECT 1").Scan(&result); err != nil {
		t.Fatalf("failed to query test database: %v", err)
	}
	if result != 1 {
		t.Errorf("expected 1, got %d", result)
	}
}

func TestTestDB_ConfigMap(t *testing.T) {
	testDB := GetTestDB(t)

	m := testDB.ConfigMap()
	if m["database"] != testDatabase {
		t.Errorf("expected database %q, got %v", testDatabase, m["database"])
	}
	if m["port"] != testDB.Port {
		t.Errorf("expected port %d, got %v", testDB.Port, m["port"])
	}
}
