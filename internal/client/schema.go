package client

import (
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"autosphere-api/internal/model"
)

// Required keys of a car object and of each DIY fix, in prompt order
var (
	carRequired = []string{
		"make", "model", "year", "category", "marketPrice",
		"currency", "licenseRequired", "description", "diyFixes",
	}
	fixRequired = []string{"problem", "difficulty", "toolsNeeded", "steps"}
)

// carDocument is the wire shape requested from the oracle. It
// has no id or imageUrl: those are derived locally.
type carDocument struct {
	Make            string        `json:"make"`
	Model           string        `json:"model"`
	Year            int           `json:"year" jsonschema:"description=Model year"`
	Category        string        `json:"category" jsonschema:"description=Segment such as SUV or Sedan or Electric"`
	MarketPrice     float64       `json:"marketPrice" jsonschema:"description=Current market price as a plain number"`
	Currency        string        `json:"currency" jsonschema:"description=ISO 4217 currency code"`
	LicenseRequired string        `json:"licenseRequired" jsonschema:"description=Driving license class needed"`
	Description     string        `json:"description"`
	DIYFixes        []fixDocument `json:"diyFixes"`
}

type fixDocument struct {
	Problem     string   `json:"problem"`
	Difficulty  string   `json:"difficulty" jsonschema:"enum=Easy,enum=Medium,enum=Hard"`
	ToolsNeeded []string `json:"toolsNeeded"`
	Steps       []string `json:"steps" jsonschema:"description=Ordered repair steps"`
}

// carListDocument wraps a list for providers whose schema root must be an object
type carListDocument struct {
	Cars []carDocument `json:"cars"`
}

func reflectSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	return reflector.Reflect(v)
}

// jsonSchemaFor returns the JSON Schema used for OpenAI structured output
func jsonSchemaFor(shape Shape) *jsonschema.Schema {
	if shape == ShapeCarList {
		return reflectSchema(&carListDocument{})
	}
	return reflectSchema(&carDocument{})
}

func difficultyEnum() []string {
	out := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		out = append(out, string(d))
	}
	return out
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// genaiCarSchema mirrors carDocument for Gemini's responseSchema
func genaiCarSchema() *genai.Schema {
	fix := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"problem":     {Type: genai.TypeString},
			"difficulty":  {Type: genai.TypeString, Format: "enum", Enum: difficultyEnum()},
			"toolsNeeded": stringList(),
			"steps":       stringList(),
		},
		Required:         fixRequired,
		PropertyOrdering: fixRequired,
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"make":            {Type: genai.TypeString},
			"model":           {Type: genai.TypeString},
			"year":            {Type: genai.TypeInteger},
			"category":        {Type: genai.TypeString},
			"marketPrice":     {Type: genai.TypeNumber},
			"currency":        {Type: genai.TypeString},
			"licenseRequired": {Type: genai.TypeString},
			"description":     {Type: genai.TypeString},
			"diyFixes":        {Type: genai.TypeArray, Items: fix},
		},
		Required:         carRequired,
		PropertyOrdering: carRequired,
	}
}

func genaiSchemaFor(shape Shape) *genai.Schema {
	if shape == ShapeCarList {
		return &genai.Schema{Type: genai.TypeArray, Items: genaiCarSchema()}
	}
	return genaiCarSchema()
}
