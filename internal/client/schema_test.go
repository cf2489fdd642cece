package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestJSONSchemaCar(t *testing.T) {
	schema := jsonSchemaFor(ShapeCar)

	assert.Equal(t, carRequired, schema.Required)

	fixes, ok := schema.Properties.Get("diyFixes")
	require.True(t, ok)
	require.NotNil(t, fixes.Items)
	assert.Equal(t, fixRequired, fixes.Items.Required)

	difficulty, ok := fixes.Items.Properties.Get("difficulty")
	require.True(t, ok)
	assert.Equal(t, []any{"Easy", "Medium", "Hard"}, difficulty.Enum)

	raw, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "imageUrl")
	assert.NotContains(t, string(raw), `"id"`)
	assert.Contains(t, string(raw), `"additionalProperties":false`)
}

func TestJSONSchemaCarList(t *testing.T) {
	schema := jsonSchemaFor(ShapeCarList)

	assert.Equal(t, []string{"cars"}, schema.Required)
	cars, ok := schema.Properties.Get("cars")
	require.True(t, ok)
	assert.Equal(t, "array", cars.Type)
	require.NotNil(t, cars.Items)
	assert.Equal(t, carRequired, cars.Items.Required)
}

func TestGenAISchema(t *testing.T) {
	car := genaiSchemaFor(ShapeCar)
	assert.Equal(t, genai.TypeObject, car.Type)
	assert.Equal(t, carRequired, car.Required)
	assert.Len(t, car.Properties, len(carRequired))
	assert.Equal(t, genai.TypeInteger, car.Properties["year"].Type)
	assert.Equal(t, genai.TypeNumber, car.Properties["marketPrice"].Type)

	fix := car.Properties["diyFixes"].Items
	require.NotNil(t, fix)
	assert.Equal(t, fixRequired, fix.Required)
	assert.Equal(t, []string{"Easy", "Medium", "Hard"}, fix.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeArray, fix.Properties["steps"].Type)

	list := genaiSchemaFor(ShapeCarList)
	assert.Equal(t, genai.TypeArray, list.Type)
	require.NotNil(t, list.Items)
	assert.Equal(t, carRequired, list.Items.Required)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "car", ShapeCar.String())
	assert.Equal(t, "car_list", ShapeCarList.String())
}
