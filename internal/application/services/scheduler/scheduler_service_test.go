package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJob_RejectsInvalidSpec(t *testing.T) {
	s := NewSchedulerService()
	err := s.AddJob(Job{Name: "bad", Spec: "every minute", Run: func() {}})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestAddJob_ReplacesSameName(t *testing.T) {
	s := NewSchedulerService()
	require.NoError(t, s.AddJob(Job{Name: "sweep", Spec: "* * * * *", Run: func() {}}))
	require.NoError(t, s.AddJob(Job{Name: "sweep", Spec: "*/5 * * * *", Run: func() {}}))
	require.NoError(t, s.AddJob(Job{Name: "digest", Spec: "0 9 * * *", Run: func() {}}))

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "digest", jobs[0].Name)
	assert.Equal(t, "*/5 * * * *", jobs[1].Spec)

	s.RemoveJob("digest")
	assert.Len(t, s.Jobs(), 1)
}

func TestStartStop(t *testing.T) {
	s := NewSchedulerService()
	require.NoError(t, s.Start())
	assert.Error(t, s.Start())

	jobs := s.Jobs()
	assert.Empty(t, jobs)

	require.NoError(t, s.AddJob(Job{Name: "sweep", Spec: "* * * * *", Run: func() {}}))
	assert.False(t, s.Jobs()[0].NextRun.IsZero(), "next run is computed once the scheduler runs")
	s.Stop()
	s.Stop()
}
