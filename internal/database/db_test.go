package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("app", "s3cret", "db.local", "3306", "campaign")
	want := "app:s3cret@tcp(db.local:3306)/campaign?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true"
	if got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn("app", "", "localhost", "3306", "campaign")
	if strings.Contains(got, ":@") {
		t.Errorf("dsn %q should omit the colon when the password is empty", got)
	}
	if !strings.HasPrefix(got, "app@tcp(") {
		t.Errorf("dsn %q should start with the bare username", got)
	}
}

// An inventory reset to the current quantity must still count as a matched
// row, otherwise it is indistinguishable from an unknown prize.
func TestDSNReportsMatchedRows(t *testing.T) {
	if !strings.Contains(dsn("a", "", "h", "p", "n"), "clientFoundRows=true") {
		t.Error("dsn must enable clientFoundRows")
	}
}
