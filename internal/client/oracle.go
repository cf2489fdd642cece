package client

import "context"

// Shape is the JSON document the oracle is asked to produce
type Shape int

const (
	// ShapeCar asks for a single car object
	ShapeCar Shape = iota
	// ShapeCarList asks for an array of car objects
	ShapeCarList
)

func (s Shape) String() string {
	if s == ShapeCarList {
		return "car_list"
	}
	return "car"
}

// Request is one prompt plus the shape the answer must follow
type Request struct {
	Prompt string
	Shape  Shape
}

// Oracle is a text-generation backend that answers a prompt with a JSON
// document of the requested shape. Implementations return the raw text; they
// do not validate it.
type Oracle interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Name identifies provider and model, e.g. "gemini:gemini-3-flash-preview"
	Name() string

	Close() error
}

// Ensure both clients implement Oracle
var _ Oracle = (*GeminiClient)(nil)
var _ Oracle = (*OpenAIClient)(nil)
