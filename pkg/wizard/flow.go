package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/pfjetdev/pfgrouptravel/pkg/client"
)

var (
	// ErrIncomplete is returned when the current step's required fields are missing
	ErrIncomplete = errors.New("required fields are missing")

	// ErrSubmissionInFlight is returned by Submit while an earlier call is pending
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrWrongStep is returned when an action is not available on the current step
	ErrWrongStep = errors.New("action not available on this step")

	// ErrSegmentLimit is returned when adding or removing a segment would leave
	// the itinerary outside 2..5 segments
	ErrSegmentLimit = errors.New("multi-city itineraries have between 2 and 5 flights")

	// ErrNoSegment is returned for an unknown segment index or id
	ErrNoSegment = errors.New("no such segment")
)

// Submitter sends a payload to an intake endpoint and returns the stored id.
// *client.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, endpoint string, payload interface{}) (string, error)
}

// form is the type-specific part of a wizard. Every method is called with
// the flow lock held.
type form interface {
	detailsComplete() bool
	contactComplete() bool
	payload() (endpoint string, payload interface{}, err error)
	clear()
}

// flow is the Details -> Contact -> Submitted state machine shared by every
// wizard
type flow struct {
	mu          sync.Mutex
	step        Step
	submitting  bool
	feedback    string
	submittedID string
	submitter   Submitter
	form        form
}

func (f *flow) init(submitter Submitter, fm form) {
	f.step = StepDetails
	f.submitter = submitter
	f.form = fm
}

// Step returns the current step
func (f *flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// CanAdvance reports whether Next would succeed with the current field values
func (f *flow) CanAdvance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step == StepDetails && f.form.detailsComplete()
}

// Next moves from the details step to the contact step
func (f *flow) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDetails {
		return ErrWrongStep
	}
	if !f.form.detailsComplete() {
		return ErrIncomplete
	}
	f.step = StepContact
	return nil
}

// Back returns from the contact step to the details step, keeping all data.
// It is ignored while a submission is pending.
func (f *flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepContact && !f.submitting {
		f.step = StepDetails
	}
}

// CanSubmit reports whether the submit action should be enabled
func (f *flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step == StepContact && !f.submitting &&
		f.form.detailsComplete() && f.form.contactComplete()
}

// Submitting reports whether a submission is pending
func (f *flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Feedback returns the message of the last failed submission
func (f *flow) Feedback() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feedback
}

// DismissFeedback clears the failure message
func (f *flow) DismissFeedback() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = ""
}

// SubmittedID returns the id assigned by the server after a successful submit
func (f *flow) SubmittedID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submittedID
}

// Submit sends the collected data. On failure the wizard stays on the contact
// step with Feedback set; on success it moves to StepSubmitted.
func (f *flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.step != StepContact {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if !f.form.detailsComplete() || !f.form.contactComplete() {
		f.mu.Unlock()
		return ErrIncomplete
	}
	endpoint, payload, err := f.form.payload()
	if err != nil {
		f.feedback = err.Error()
		f.mu.Unlock()
		return err
	}
	f.submitting = true
	f.feedback = ""
	f.mu.Unlock()

	id, err := f.submitter.Submit(ctx, endpoint, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.feedback = feedbackFor(err)
		return err
	}
	f.step = StepSubmitted
	f.submittedID = id
	return nil
}

// Reset clears every field back to its default and returns to the details
// step. It is ignored while a submission is pending.
func (f *flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return
	}
	f.form.clear()
	f.step = StepDetails
	f.feedback = ""
	f.submittedID = ""
}

// edit runs fn under the flow lock
func (f *flow) edit(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func feedbackFor(err error) string {
	var serr *client.SubmissionError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	return client.MessageTransport
}
