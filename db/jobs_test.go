package db

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/corebit/img2dataurl/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(logger.LevelError, io.Discard)
	os.Exit(m.Run())
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	d, err := NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}

func TestSaveAndGetJob(t *testing.T) {
	d := newTestDatabase(t)

	job := &Job{
		Requester:    "alice",
		MediaType:    "image/jpeg",
		Format:       "image/png",
		TargetWidth:  400,
		TargetHeight: 200,
		Status:       StatusOK,
		DurationMs:   12,
	}

	require.NoError(t, d.SaveJob(job))
	assert.Greater(t, job.ID, 0)

	got, err := d.GetJob(job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Requester)
	assert.Equal(t, "image/jpeg", got.MediaType)
	assert.Equal(t, 400, got.TargetWidth)
	assert.Equal(t, 200, got.TargetHeight)
	assert.Equal(t, StatusOK, got.Status)
}

func TestGetJobMissing(t *testing.T) {
	d := newTestDatabase(t)

	got, err := d.GetJob(12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListJobsNewestFirst(t *testing.T) {
	d := newTestDatabase(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.SaveJob(&Job{
			Requester: "bob",
			MediaType: "image/png",
			Format:    "image/png",
			Status:    StatusOK,
			CreatedAt: time.Now().UTC(),
		}))
	}
	require.NoError(t, d.SaveJob(&Job{
		Requester: "bob",
		MediaType: "text/plain",
		Format:    "image/png",
		Status:    StatusError,
		Detail:    "invalid type: text/plain",
	}))

	jobs, err := d.ListJobs(3)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	// Newest first: the failed job was saved last.
	assert.Equal(t, StatusError, jobs[0].Status)
	assert.Equal(t, "invalid type: text/plain", jobs[0].Detail)
	assert.Greater(t, jobs[0].ID, jobs[1].ID)
}

func TestDatabaseLogsWithComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(logger.LevelInfo, &buf)
	defer logger.InitWithWriter(logger.LevelError, io.Discard)

	d, err := NewDatabase(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = d.Close()
	}()

	assert.Contains(t, buf.String(), "component=")
	assert.Contains(t, buf.String(), "job history database initialized")
}

func TestResetJobs(t *testing.T) {
	d := newTestDatabase(t)

	require.NoError(t, d.SaveJob(&Job{Requester: "x", MediaType: "image/png", Format: "image/png", Status: StatusOK}))
	require.NoError(t, d.ResetJobs())

	jobs, err := d.ListJobs(10)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
