package cleanup

import (
	"errors"
	"log"
	"sync"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in reverse order, so resources opened later
// are released before the ones they depend on. Jobs are forgotten after the
// run and every job runs even if an earlier one failed.
func CleanUp() error {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()
	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		log.Printf("Cleanup job %s started...", j.Name)
		err := j.F()
		if err != nil {
			log.Printf("Job finished with error: %v", err)
			errs = append(errs, errors.New(j.Name+": "+err.Error()))
		} else {
			log.Println("Cleaned")
		}
	}
	return errors.Join(errs...)
}
