package view

import (
	"strings"

	"go.uber.org/zap"

	"autosphere-api/internal/model"
)

// Status is the search axis of the UI state
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Slot is a piece of state owned by one kind of request
type Slot int

const (
	SlotFeatured Slot = iota
	SlotSearch
	numSlots
)

// Ticket identifies one outstanding request. Seq grows per slot.
type Ticket struct {
	Slot Slot
	Seq  uint64
}

// Session holds the UI state. It is not safe for concurrent use; callers
// apply completions from a single loop.
type Session struct {
	Query    string
	Err      string
	Featured []model.Car
	Results  []model.Car
	Selected *model.Car

	// DiscardStale drops completions that are not the newest for their slot.
	// Off, the last completion to arrive wins.
	DiscardStale bool

	seq     [numSlots]uint64
	pending [numSlots]map[uint64]struct{}
	logger  *zap.Logger
}

func NewSession(discardStale bool, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{DiscardStale: discardStale, logger: logger}
}

func (s *Session) begin(slot Slot) Ticket {
	s.seq[slot]++
	if s.pending[slot] == nil {
		s.pending[slot] = make(map[uint64]struct{})
	}
	s.pending[slot][s.seq[slot]] = struct{}{}
	return Ticket{Slot: slot, Seq: s.seq[slot]}
}

// finish settles t and reports whether its result may be applied. A ticket
// settles once; foreign or already settled tickets are ignored.
func (s *Session) finish(t Ticket, slot Slot) bool {
	if t.Slot != slot {
		return false
	}
	if _, ok := s.pending[slot][t.Seq]; !ok {
		return false
	}
	delete(s.pending[slot], t.Seq)
	if s.DiscardStale && t.Seq != s.seq[slot] {
		s.logger.Debug("discarding stale completion",
			zap.Int("slot", int(slot)),
			zap.Uint64("seq", t.Seq),
			zap.Uint64("latest", s.seq[slot]),
		)
		return false
	}
	return true
}

// BeginFeatured starts the featured load
func (s *Session) BeginFeatured() Ticket {
	return s.begin(SlotFeatured)
}

// FinishFeatured applies a featured load. A failure is logged only and the
// previous featured set stays. Reports whether state changed.
func (s *Session) FinishFeatured(t Ticket, cars []model.Car, err error) bool {
	if !s.finish(t, SlotFeatured) {
		return false
	}
	if err != nil {
		s.logger.Warn("failed to load featured cars", zap.Error(err))
		return false
	}
	s.Featured = cars
	return true
}

func (s *Session) SetQuery(q string) {
	s.Query = q
}

// BeginSearch starts a search for the current query. A blank query is
// ignored and no transition happens.
func (s *Session) BeginSearch() (Ticket, bool) {
	if strings.TrimSpace(s.Query) == "" {
		return Ticket{}, false
	}
	s.Err = ""
	return s.begin(SlotSearch), true
}

// FinishSearch applies a search result. Success replaces Results with the
// single car; failure sets Err and leaves Results untouched.
func (s *Session) FinishSearch(t Ticket, car *model.Car, err error) bool {
	if !s.finish(t, SlotSearch) {
		return false
	}
	if err != nil || car == nil {
		s.Err = model.LookupFailedMessage
		return true
	}
	s.Results = []model.Car{*car}
	return true
}

// ClearResults drops the search results and any error. Featured cars stay.
func (s *Session) ClearResults() {
	s.Results = nil
	s.Err = ""
}

func (s *Session) Select(car model.Car) {
	s.Selected = &car
}

func (s *Session) Deselect() {
	s.Selected = nil
}

// Loading reports whether any request is outstanding
func (s *Session) Loading() bool {
	return len(s.pending[SlotFeatured]) > 0 || len(s.pending[SlotSearch]) > 0
}

// Searching reports whether a search is outstanding
func (s *Session) Searching() bool {
	return len(s.pending[SlotSearch]) > 0
}

func (s *Session) Status() Status {
	switch {
	case s.Loading():
		return StatusLoading
	case s.Err != "":
		return StatusError
	default:
		return StatusIdle
	}
}
