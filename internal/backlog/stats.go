package backlog

import "fmt"

// Stats are the counters of one scan. A fresh value is created per run and
// read once the run is over.
type Stats struct {
	FilesScanned int
	TasksFound   int
	TasksOpen    int
	TasksDone    int

	// DuplicateIDs counts tasks whose uid was already taken in the same run
	// and had to be disambiguated, almost always a repeated explicit id.
	DuplicateIDs int

	Errors []string
}

func (s *Stats) addTask(status Status) {
	s.TasksFound++

	if status == StatusDone {
		s.TasksDone++
	} else {
		s.TasksOpen++
	}
}

func (s *Stats) addError(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}
