package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarID(t *testing.T) {
	tests := []struct {
		name  string
		make  string
		model string
		year  int
		want  string
	}{
		{"simple", "Toyota", "Supra", 1998, "toyota-supra-1998"},
		{"multi word model", "Tesla", "Model 3", 2024, "tesla-model-3-2024"},
		{"leading space in model", "Toyota", " Land Cruiser", 2020, "toyota-land-cruiser-2020"},
		{"whitespace runs collapse", "Land  Rover", "Range\tRover", 2023, "land-rover-range-rover-2023"},
		{"non breaking space", "Mercedes\u00a0Benz", "C-Class", 2022, "mercedes-benz-c-class-2022"},
		{"already lowercase", "kia", "ev6", 2023, "kia-ev6-2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CarID(tt.make, tt.model, tt.year))
		})
	}
}

func TestCarIDIsPure(t *testing.T) {
	first := CarID("Honda", "Civic Type R", 2021)
	second := CarID("Honda", "Civic Type R", 2021)
	assert.Equal(t, first, second)
}

func TestImageURL(t *testing.T) {
	got := ImageURL("Toyota", "Supra")
	assert.Equal(t, "https://picsum.photos/seed/ToyotaSupra/800/600", got)

	spaced := ImageURL("Land Rover", "Defender")
	assert.True(t, strings.HasPrefix(spaced, "https://picsum.photos/seed/"))
	assert.Contains(t, spaced, "Land%20RoverDefender")
}

func TestDerive(t *testing.T) {
	c := Car{ID: "forged", ImageURL: "http://evil", Make: "BMW", Model: "M3", Year: 2019}
	c.Derive()

	assert.Equal(t, "bmw-m3-2019", c.ID)
	assert.Equal(t, "https://picsum.photos/seed/BMWM3/800/600", c.ImageURL)
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyMedium.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("easy").Valid())
	assert.False(t, Difficulty("Expert").Valid())
	assert.False(t, Difficulty("").Valid())
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"oracle call: Error 429, Message: Resource exhausted", ErrorTypeRateLimit},
		{"dial tcp: lookup generativelanguage.googleapis.com: no such host", ErrorTypeNetwork},
		{"context deadline exceeded", ErrorTypeNetwork},
		{`missing field "diyFixes"`, ErrorTypeSchema},
		{"invalid character 'S' looking for beginning of value", ErrorTypeParse},
		{"gemini returned an empty response", ErrorTypeOracle},
		{"something odd", ErrorTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.msg))
		})
	}
}
