package inspection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleet-inspector/internal/checklist"
	"fleet-inspector/internal/domain"
)

// timestampLayout is the wire format for the inspection start time.
const timestampLayout = "2006-01-02 15:04:05"

// ErrNotEditable is returned when a mutation reaches a session that is not
// in progress.
var ErrNotEditable = errors.New("inspection is not editable")

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("inspection already started")

// Session is one inspection report being assembled: exactly one truck
// entity, zero or more trailer entities, and the report metadata. It moves
// not_started -> in_progress -> submitted, or in_progress -> abandoned;
// both ends are terminal.
type Session struct {
	mu          sync.Mutex
	id          string
	state       domain.ReportState
	carrier     string
	address     string
	inspectedAt string
	truckNumber string
	odometer    int
	truck       *checklist.Entity
	trailers    []*checklist.Entity
	now         func() time.Time
}

// New creates a session in not_started state with an initialized truck
// checklist for the given truck number.
func New(truckNumber string) (*Session, error) {
	truck, err := checklist.NewEntity(domain.EntityKindTruck, truckNumber)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:          uuid.NewString(),
		state:       domain.ReportStateNotStarted,
		truckNumber: truckNumber,
		truck:       truck,
		now:         time.Now,
	}, nil
}

// Start moves the session to in_progress and captures the inspection
// timestamp in local time. The location fix is requested by the caller as a
// best-effort side channel; its failure never blocks this transition.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateNotStarted {
		return ErrAlreadyStarted
	}

	s.state = domain.ReportStateInProgress
	s.inspectedAt = s.now().Format(timestampLayout)
	return nil
}

// ID returns the client-local draft identity of the report.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() domain.ReportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetCarrier records the carrier name.
func (s *Session) SetCarrier(carrier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return ErrNotEditable
	}
	s.carrier = carrier
	return nil
}

// SetAddress records the inspection address, whether derived from a
// geolocation fix or entered manually.
func (s *Session) SetAddress(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return ErrNotEditable
	}
	s.address = address
	return nil
}

// SetOdometer records the odometer reading, clamping negative input to 0
// rather than rejecting it. Returns the stored value.
func (s *Session) SetOdometer(reading int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return 0, ErrNotEditable
	}
	if reading < 0 {
		reading = 0
	}
	s.odometer = reading
	return reading, nil
}

// Carrier returns the recorded carrier name.
func (s *Session) Carrier() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carrier
}

// Address returns the recorded inspection address.
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// InspectedAt returns the captured start timestamp, empty before Start.
func (s *Session) InspectedAt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inspectedAt
}

// TruckNumber returns the truck identifier the session was created with.
func (s *Session) TruckNumber() string {
	return s.truckNumber
}

// Odometer returns the recorded odometer reading.
func (s *Session) Odometer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.odometer
}

// Truck returns the session's truck entity.
func (s *Session) Truck() *checklist.Entity {
	return s.truck
}

// AddTrailer appends a trailer entity with its own initialized item set and
// returns its position.
func (s *Session) AddTrailer(identifier string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return 0, ErrNotEditable
	}

	trailer, err := checklist.NewEntity(domain.EntityKindTrailer, identifier)
	if err != nil {
		return 0, err
	}

	s.trailers = append(s.trailers, trailer)
	return len(s.trailers) - 1, nil
}

// RemoveTrailer removes the trailer at the given position. Later trailers
// shift down by one. The removed entity is returned so the caller can
// release its evidence; the removal itself has no undo.
func (s *Session) RemoveTrailer(index int) (*checklist.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return nil, ErrNotEditable
	}
	if index < 0 || index >= len(s.trailers) {
		return nil, fmt.Errorf("trailer index %d out of range (%d trailers)", index, len(s.trailers))
	}

	removed := s.trailers[index]
	s.trailers = append(s.trailers[:index], s.trailers[index+1:]...)
	return removed, nil
}

// Trailer returns the trailer entity at the given position.
func (s *Session) Trailer(index int) (*checklist.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.trailers) {
		return nil, fmt.Errorf("trailer index %d out of range (%d trailers)", index, len(s.trailers))
	}
	return s.trailers[index], nil
}

// Trailers returns a snapshot of the trailer entities in order.
func (s *Session) Trailers() []*checklist.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*checklist.Entity, len(s.trailers))
	copy(out, s.trailers)
	return out
}

// MarkSubmitted freezes the session after a successful submission. The
// session is immutable from here on.
func (s *Session) MarkSubmitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ReportStateInProgress {
		return fmt.Errorf("cannot submit from state %s", s.state)
	}
	s.state = domain.ReportStateSubmitted
	return nil
}

// Abandon discards the session without network effect.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case domain.ReportStateNotStarted, domain.ReportStateInProgress:
		s.state = domain.ReportStateAbandoned
		return nil
	default:
		return fmt.Errorf("cannot abandon from state %s", s.state)
	}
}
