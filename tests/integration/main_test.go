package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
)

var (
	testDB     *TestDB
	testServer *TestServer
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	db, err := SetupTestDatabase(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up test database: %v\n", err)
		os.Exit(1)
	}
	testDB = db
	testServer = NewTestServer(db.DB)

	code := m.Run()

	testServer.Close()
	testDB.Teardown(ctx)
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	if err := testDB.CleanupTables(context.Background()); err != nil {
		t.Fatalf("failed to clean up tables: %v", err)
	}
}
