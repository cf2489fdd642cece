package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"autosphere-api/internal/model"
)

func car(make, carModel string, year int) model.Car {
	c := model.Car{Make: make, Model: carModel, Year: year}
	c.Derive()
	return c
}

func TestSessionInitialState(t *testing.T) {
	s := NewSession(false, nil)
	assert.Equal(t, StatusIdle, s.Status())
	assert.False(t, s.Loading())
	assert.Nil(t, s.Selected)
}

func TestSessionBlankQueryDoesNotTransition(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	s.Err = "previous"

	for _, q := range []string{"", " ", "\t\n"} {
		s.SetQuery(q)
		_, ok := s.BeginSearch()
		assert.False(t, ok)
	}
	assert.False(t, s.Loading())
	assert.Equal(t, "previous", s.Err)
}

func TestSessionSearchSuccess(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	s.Err = model.LookupFailedMessage
	s.SetQuery("1998 Toyota Supra")

	ticket, ok := s.BeginSearch()
	require.True(t, ok)
	assert.Equal(t, StatusLoading, s.Status())
	assert.Empty(t, s.Err)
	assert.True(t, s.Searching())

	supra := car("Toyota", "Supra", 1998)
	assert.True(t, s.FinishSearch(ticket, &supra, nil))
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, []model.Car{supra}, s.Results)
}

func TestSessionSearchFailureKeepsResults(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	prev := car("Honda", "Civic", 2023)
	s.Results = []model.Car{prev}

	s.SetQuery("flux capacitor")
	ticket, ok := s.BeginSearch()
	require.True(t, ok)

	assert.True(t, s.FinishSearch(ticket, nil, errors.New("lookup failed")))
	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, "Failed to find car details. Try a different model.", s.Err)
	assert.Equal(t, []model.Car{prev}, s.Results)
}

func TestSessionFeaturedFailureKeepsPrevious(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	first := []model.Car{car("Toyota", "RAV4", 2024), car("Tesla", "Model Y", 2024)}

	ticket := s.BeginFeatured()
	assert.Equal(t, StatusLoading, s.Status())
	assert.True(t, s.FinishFeatured(ticket, first, nil))
	assert.Equal(t, first, s.Featured)

	ticket = s.BeginFeatured()
	assert.False(t, s.FinishFeatured(ticket, nil, errors.New("boom")))
	assert.Equal(t, first, s.Featured)
	assert.Empty(t, s.Err, "featured failures never surface")
	assert.Equal(t, StatusIdle, s.Status())
}

func TestSessionLoadingCountsBothSlots(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))

	featured := s.BeginFeatured()
	s.SetQuery("supra")
	search, ok := s.BeginSearch()
	require.True(t, ok)

	supra := car("Toyota", "Supra", 1998)
	s.FinishSearch(search, &supra, nil)
	assert.True(t, s.Loading(), "featured load still outstanding")
	assert.False(t, s.Searching())

	s.FinishFeatured(featured, nil, nil)
	assert.False(t, s.Loading())
}

func TestSessionLastCompletionWins(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))

	s.SetQuery("old")
	older, _ := s.BeginSearch()
	s.SetQuery("new")
	newer, _ := s.BeginSearch()

	newCar := car("New", "Car", 2024)
	oldCar := car("Old", "Car", 1990)
	assert.True(t, s.FinishSearch(newer, &newCar, nil))
	assert.True(t, s.FinishSearch(older, &oldCar, nil))

	assert.Equal(t, []model.Car{oldCar}, s.Results)
	assert.False(t, s.Loading())
}

func TestSessionDiscardStale(t *testing.T) {
	s := NewSession(true, zaptest.NewLogger(t))

	s.SetQuery("old")
	older, _ := s.BeginSearch()
	s.SetQuery("new")
	newer, _ := s.BeginSearch()

	newCar := car("New", "Car", 2024)
	oldCar := car("Old", "Car", 1990)
	assert.True(t, s.FinishSearch(newer, &newCar, nil))
	assert.False(t, s.FinishSearch(older, &oldCar, nil))

	assert.Equal(t, []model.Car{newCar}, s.Results)
	assert.False(t, s.Loading())
}

func TestSessionDiscardStaleFeatured(t *testing.T) {
	s := NewSession(true, zaptest.NewLogger(t))

	older := s.BeginFeatured()
	newer := s.BeginFeatured()
	fresh := []model.Car{car("Kia", "EV6", 2024)}

	assert.True(t, s.FinishFeatured(newer, fresh, nil))
	assert.False(t, s.FinishFeatured(older, []model.Car{car("Ford", "Model T", 1908)}, nil))
	assert.Equal(t, fresh, s.Featured)
}

func TestSessionRejectsForeignTickets(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	featured := s.BeginFeatured()

	supra := car("Toyota", "Supra", 1998)
	assert.False(t, s.FinishSearch(featured, &supra, nil))
	assert.False(t, s.FinishSearch(Ticket{}, &supra, nil))
	assert.Empty(t, s.Results)
	assert.True(t, s.Loading())
}

func TestSessionTicketSettlesOnce(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	s.SetQuery("Toyota Supra")
	first, ok := s.BeginSearch()
	require.True(t, ok)
	second, ok := s.BeginSearch()
	require.True(t, ok)

	supra := car("Toyota", "Supra", 1998)
	assert.True(t, s.FinishSearch(first, &supra, nil))
	assert.False(t, s.FinishSearch(first, &supra, nil))
	assert.True(t, s.Searching(), "second search is still outstanding")

	assert.True(t, s.FinishSearch(second, &supra, nil))
	assert.False(t, s.Searching())
	assert.False(t, s.FinishSearch(second, &supra, nil))
}

func TestSessionClearResultsKeepsFeatured(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	s.Featured = []model.Car{car("Toyota", "RAV4", 2024)}
	s.Results = []model.Car{car("Toyota", "Supra", 1998)}
	s.Err = model.LookupFailedMessage

	s.ClearResults()
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Err)
	assert.Len(t, s.Featured, 1)
	assert.Equal(t, StatusIdle, s.Status())
}

func TestSessionSelectionIsIndependent(t *testing.T) {
	s := NewSession(false, zaptest.NewLogger(t))
	supra := car("Toyota", "Supra", 1998)

	s.SetQuery("x")
	_, _ = s.BeginSearch()
	s.Select(supra)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "toyota-supra-1998", s.Selected.ID)
	assert.Equal(t, StatusLoading, s.Status())

	s.Deselect()
	assert.Nil(t, s.Selected)
	assert.Equal(t, StatusLoading, s.Status())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "error", StatusError.String())
}
