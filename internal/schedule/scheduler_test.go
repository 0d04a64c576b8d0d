package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type blockingJob struct {
	runs    atomic.Int32
	release chan struct{}
	started chan struct{}
	err     error
}

func (j *blockingJob) Name() string {
	return "blocking"
}

func (j *blockingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	if j.started != nil {
		j.started <- struct{}{}
	}
	if j.release != nil {
		<-j.release
	}
	return j.err
}

func TestAddJob_Validation(t *testing.T) {
	s := NewCronScheduler()
	require.Error(t, s.AddJob(&blockingJob{}, "not a spec"))
	require.Error(t, s.AddJob(&blockingJob{}, "* * * * * *"))
	require.NoError(t, s.AddJob(&blockingJob{}, "*/10 * * * *"))
	require.Error(t, s.AddJob(&blockingJob{}, "0 3 * * *"))
}

func TestTrigger_SkipsOverlappingRuns(t *testing.T) {
	s := NewCronScheduler()
	job := &blockingJob{release: make(chan struct{}), started: make(chan struct{}, 1)}
	require.NoError(t, s.AddJob(job, "0 3 * * *"))
	s.Start(context.Background())
	defer s.Stop()

	done := make(chan bool)
	go func() { done <- s.Trigger("blocking") }()
	select {
	case <-job.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not start")
	}
	require.False(t, s.Trigger("blocking"))
	close(job.release)
	require.True(t, <-done)
	require.Equal(t, int32(1), job.runs.Load())
	require.False(t, s.Trigger("unknown"))
}

func TestTrigger_JobError(t *testing.T) {
	s := NewCronScheduler()
	job := &blockingJob{err: errors.New("db down")}
	require.NoError(t, s.AddJob(job, "0 3 * * *"))
	require.True(t, s.Trigger("blocking"))
	require.True(t, s.Trigger("blocking"))
	require.Equal(t, int32(2), job.runs.Load())
}
