package pipeline

// Result is the completion token one worker emits per URL. Unlike a bare
// path, it keeps success, skip, and failure distinguishable.
type Result struct {
	URL     string
	Path    string // target path; on failure the derived but absent path
	Skipped bool   // artifact already existed, no backend call made
	Err     error
}

// Summary aggregates every Result of a run, in arrival order.
type Summary struct {
	Completed []Result
	Skipped   []Result
	Failed    []Result
}

func (s *Summary) add(res Result) {
	switch {
	case res.Err != nil:
		s.Failed = append(s.Failed, res)
	case res.Skipped:
		s.Skipped = append(s.Skipped, res)
	default:
		s.Completed = append(s.Completed, res)
	}
}

// Total is the number of dispatched URLs that reported back.
func (s *Summary) Total() int {
	return len(s.Completed) + len(s.Skipped) + len(s.Failed)
}
