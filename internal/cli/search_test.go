package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calsearch/internal/store"
)

// createSearchDB creates a calendar database with two events:
// 1 "Standup" attended by user 7, 2 "Sprint review" in folder 11.
func createSearchDB(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "calendar.db")

	st, err := store.Open(path, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	defer st.Close()

	start := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	standup, err := st.InsertEvent(ctx, store.Event{
		Folder:    10,
		Summary:   "Standup",
		Location:  "Room 1",
		Status:    "CONFIRMED",
		StartDate: start,
		EndDate:   start.Add(15 * time.Minute),
	})
	require.NoError(t, err)
	_, err = st.InsertAttendee(ctx, standup, store.Attendee{Entity: 7, URI: "7", PartStat: "ACCEPTED"})
	require.NoError(t, err)

	_, err = st.InsertEvent(ctx, store.Event{
		Folder:    11,
		Summary:   "Sprint review",
		Status:    "TENTATIVE",
		StartDate: start.Add(24 * time.Hour),
		EndDate:   start.Add(25 * time.Hour),
	})
	require.NoError(t, err)

	return path
}

func executeSearch(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewSearchCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSearchCEL(t *testing.T) {
	db := createSearchDB(t)

	output, err := executeSearch(t, "text", "--db", db, "--cel", "attendee.uri == 7")
	require.NoError(t, err)
	assert.Contains(t, output, "1 event(s)")
	assert.Contains(t, output, "2026-10-17T09:00:00Z")
	assert.Contains(t, output, "Standup")
	assert.NotContains(t, output, "Sprint review")
}

func TestSearchDocumentJSON(t *testing.T) {
	db := createSearchDB(t)
	doc := writeQuery(t, "folders.yaml", `
dialect: mysql
query: {op: in, field: folder, values: [10, 11]}
`)

	output, err := executeSearch(t, "json", "--db", db, doc)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []EventResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Standup", resp.Data[0].Summary)
	assert.Equal(t, "CONFIRMED", resp.Data[0].Status)
	assert.Equal(t, "Sprint review", resp.Data[1].Summary)
	assert.NotEmpty(t, resp.Data[0].UID)
}

func TestSearchWildcardAndNoMatches(t *testing.T) {
	db := createSearchDB(t)

	output, err := executeSearch(t, "text", "--db", db, "--cel", `summary == "Sprint*"`)
	require.NoError(t, err)
	assert.Contains(t, output, "1 event(s)")
	assert.Contains(t, output, "Sprint review")

	output, err = executeSearch(t, "text", "--db", db, "--cel", `summary == "Lunch"`, "--no-fold")
	require.NoError(t, err)
	assert.Equal(t, "0 event(s)\n", output)
}

func TestSearchErrors(t *testing.T) {
	db := createSearchDB(t)

	_, err := executeSearch(t, "text", "--cel", "folder == 10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)

	output, err := executeSearch(t, "text", "--db", filepath.Join(t.TempDir(), "missing.db"), "--cel", "folder == 10")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, output, "Error [E002]")

	output, err = executeSearch(t, "text", "--db", db, "--cel", "colour == 'red'")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "Error [E101]")
}
