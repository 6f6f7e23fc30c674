package systems

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
)

/** @brief Describes a type of job */
type JobType int

const (
	/**
	 * @brief A general job that does not have any specific thread requirements.
	 */
	JOB_TYPE_GENERAL JobType = 0x02
	/**
	 * @brief A resource loading job, such as reading and decoding a file.
	 */
	JOB_TYPE_RESOURCE_LOAD JobType = 0x04
)

func (t JobType) String() string {
	if t == JOB_TYPE_RESOURCE_LOAD {
		return "resource load"
	}
	return "general"
}

/**
 * @brief Describes a job to be run. Jobs never touch the GPU: device calls
 * stay on the thread owning the context.
 */
type Job struct {
	/** @brief Shown in logs. */
	Name    string
	JobType JobType
	/** @brief Invoked on a worker. Required. */
	EntryPoint func() error
	/** @brief Invoked on the worker after EntryPoint succeeds. Optional. */
	OnSuccess func()
	/** @brief Invoked on the worker after EntryPoint fails. Optional. */
	OnFail func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan Job
	wg         sync.WaitGroup

	mu       sync.RWMutex
	isClosed bool
}

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemClosed     = errors.New("job system is shut down")
)

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job Job) {
	if err := job.EntryPoint(); err != nil {
		core.LogError("%s job %q failed: %s", job.JobType, job.Name, err)
		if job.OnFail != nil {
			job.OnFail(err)
		}
		return
	}
	if job.OnSuccess != nil {
		job.OnSuccess()
	}
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 */
func (js *JobSystem) Submit(job Job) error {
	if job.EntryPoint == nil {
		return errors.Errorf("job %q has no entry point", job.Name)
	}
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.isClosed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- job
	return nil
}

// RunAll submits jobs and waits for all of them. It returns the error of the
// first job in the list that failed.
func (js *JobSystem) RunAll(jobs ...Job) error {
	var wg sync.WaitGroup
	errs := make([]error, len(jobs))

	for i := range jobs {
		i, job := i, jobs[i]
		onSuccess, onFail := job.OnSuccess, job.OnFail
		job.OnSuccess = func() {
			if onSuccess != nil {
				onSuccess()
			}
			wg.Done()
		}
		job.OnFail = func(err error) {
			errs[i] = errors.WithMessage(err, job.Name)
			if onFail != nil {
				onFail(err)
			}
			wg.Done()
		}

		wg.Add(1)
		if err := js.Submit(job); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

/**
 * @brief Shuts the job system down. Queued jobs still run.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.isClosed {
		js.mu.Unlock()
		return nil
	}
	js.isClosed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}
