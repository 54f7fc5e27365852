package jobs

import "fmt"

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager running the deferral sweep.
func NewJobManager(deferralExpiryJob *DeferralExpiryJob) *JobManager {
	jm := &JobManager{}
	if deferralExpiryJob != nil {
		jm.Add("deferral expiry", deferralExpiryJob)
	}
	return jm
}

// Add registers another job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) {
	if job == nil {
		return
	}
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs.
// If a job fails to start, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
