package viewstate

// Submission guards a form against being submitted twice at once. The host
// calls End once the result of the submission arrives, whatever it is.
type Submission struct {
	inFlight bool
}

// Begin reports false when a submission is already in flight.
func (s *Submission) Begin() bool {
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Submission) End() {
	s.inFlight = false
}

func (s *Submission) InFlight() bool {
	return s.inFlight
}
