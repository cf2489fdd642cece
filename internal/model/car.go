package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const imageBaseURL = "https://picsum.photos/seed/"

// Image size requested from the placeholder service
const (
	ImageWidth  = 800
	ImageHeight = 600
)

// Difficulty is the repair tier of a DIY fix
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the accepted tiers in ascending order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known tiers
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// DIYFix is one home-repairable problem. Steps are read in order.
type DIYFix struct {
	Problem     string     `json:"problem"`
	Difficulty  Difficulty `json:"difficulty"`
	ToolsNeeded []string   `json:"toolsNeeded"`
	Steps       []string   `json:"steps"`
}

// Car is a normalized vehicle record. ID and ImageURL are derived locally,
// everything else comes from the oracle.
type Car struct {
	ID              string   `json:"id"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Category        string   `json:"category"`
	MarketPrice     float64  `json:"marketPrice"`
	Currency        string   `json:"currency"`
	LicenseRequired string   `json:"licenseRequired"`
	Description     string   `json:"description"`
	DIYFixes        []DIYFix `json:"diyFixes"`
	ImageURL        string   `json:"imageUrl,omitempty"`
}

// whitespace matches the same runs a browser's \s would, including NBSP,
// line/paragraph separators and BOM.
var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// CarID builds the deterministic id for a make/model/year triple:
// "Toyota", "Land Cruiser", 2020 -> "toyota-land-cruiser-2020"
func CarID(make, carModel string, year int) string {
	id := fmt.Sprintf("%s-%s-%d", strings.TrimSpace(make), strings.TrimSpace(carModel), year)
	id = strings.ToLower(id)
	return whitespace.ReplaceAllString(id, "-")
}

// ImageURL returns the placeholder image for a car, seeded with make and
// model concatenated as-is.
func ImageURL(make, carModel string) string {
	return fmt.Sprintf("%s%s/%d/%d", imageBaseURL, url.PathEscape(make+carModel), ImageWidth, ImageHeight)
}

// Derive fills the locally computed fields, overwriting whatever was there.
func (c *Car) Derive() {
	c.ID = CarID(c.Make, c.Model, c.Year)
	c.ImageURL = ImageURL(c.Make, c.Model)
}
