package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedPayload = `{
	"version": "1.2.3",
	"devices": [
		{
			"id": "udm",
			"sysid": "ea11",
			"sku": "UDM-US",
			"product": {"name": "Dream Machine", "abbrev": "UDM"},
			"line": {"id": "unifi", "name": "UniFi"},
			"shortnames": ["UDM"],
			"icon": {"id": "abc123", "resolutions": [[32, 32], [64, 64]]}
		},
		{
			"id": "nbe",
			"product": {"name": "NanoBeam 5AC", "abbrev": "NBE"},
			"line": {"id": "airmax", "name": "airMAX"}
		}
	]
}`

func TestValidateWellFormedPayload(t *testing.T) {
	result := Validate([]byte(wellFormedPayload))

	require.Len(t, result.Devices, 2)
	assert.False(t, result.HadErrors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "1.2.3", result.Version)

	udm := result.Devices[0]
	assert.Equal(t, "udm", udm.ID)
	assert.Equal(t, "Dream Machine", udm.Name)
	assert.Equal(t, "UDM", udm.Abbrev)
	assert.Equal(t, "UniFi", udm.LineName)
	assert.Equal(t, []string{"UDM"}, udm.ShortNames)
	assert.Equal(t, "abc123", udm.Icon.ID)
	assert.Equal(t, [][2]int{{32, 32}, {64, 64}}, udm.Icon.Resolutions)

	// Optional fields degrade to zero values, never fail.
	nbe := result.Devices[1]
	assert.Empty(t, nbe.SKU)
	assert.Empty(t, nbe.ShortNames)
	assert.Empty(t, nbe.Icon.ID)
}

func TestValidateMissingIDSynthesizesPlaceholder(t *testing.T) {
	payload := `{
		"version": "1",
		"devices": [
			{"id": "a", "product": {"name": "Alpha"}},
			{"product": {"name": "No ID"}, "line": {"name": "UniFi"}},
			{"id": "c", "product": {"name": "Gamma"}}
		]
	}`

	result := Validate([]byte(payload))

	require.Len(t, result.Devices, 3)
	assert.True(t, result.HadErrors)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "record 1")

	placeholder := result.Devices[1]
	assert.Equal(t, "unknown-device-1", placeholder.ID)
	// Defensive extraction still recovers the readable fields.
	assert.Equal(t, "No ID", placeholder.Name)
	assert.Equal(t, "UniFi", placeholder.LineName)
}

func TestValidateWrongTypedFieldsFallBackPerField(t *testing.T) {
	payload := `{
		"version": "1",
		"devices": [
			{"id": "a", "sku": 42, "product": {"name": "Alpha"}, "shortnames": ["A", 7, "AL"]}
		]
	}`

	result := Validate([]byte(payload))

	require.Len(t, result.Devices, 1)
	assert.True(t, result.HadErrors)

	rec := result.Devices[0]
	assert.Equal(t, "a", rec.ID)
	assert.Equal(t, "Alpha", rec.Name)
	assert.Empty(t, rec.SKU)
	assert.Equal(t, []string{"A", "AL"}, rec.ShortNames)
}

func TestValidateDevicesNotAnArray(t *testing.T) {
	result := Validate([]byte(`{"version": "1", "devices": "oops"}`))

	assert.Empty(t, result.Devices)
	assert.NotNil(t, result.Devices)
	assert.True(t, result.HadErrors)
	assert.Equal(t, "1", result.Version)
}

func TestValidateNonObjectDocument(t *testing.T) {
	for _, body := range []string{`[1, 2, 3]`, `"hello"`, `not json at all`} {
		result := Validate([]byte(body))
		assert.Empty(t, result.Devices, "body %q", body)
		assert.True(t, result.HadErrors, "body %q", body)
	}
}

func TestValidateLooseEnvelopeRecoversRecords(t *testing.T) {
	// Non-string version breaks the strict envelope; records must still
	// come through the per-record pass.
	payload := `{
		"version": 7,
		"devices": [
			{"id": "a", "product": {"name": "Alpha"}},
			{"product": {"name": "No ID"}}
		]
	}`

	result := Validate([]byte(payload))

	require.Len(t, result.Devices, 2)
	assert.Equal(t, "a", result.Devices[0].ID)
	assert.Equal(t, "Alpha", result.Devices[0].Name)
	assert.Equal(t, "unknown-device-1", result.Devices[1].ID)
	assert.True(t, result.HadErrors)
}

func TestValidateLargePayloadKeepsLength(t *testing.T) {
	devices := ""
	for i := 0; i < 250; i++ {
		if i > 0 {
			devices += ","
		}
		devices += fmt.Sprintf(`{"id": "dev-%d", "product": {"name": "Device %d"}}`, i, i)
	}
	payload := `{"version": "1", "devices": [` + devices + `]}`

	result := Validate([]byte(payload))

	assert.Len(t, result.Devices, 250)
	assert.False(t, result.HadErrors)
}

func TestSafeLookupBrokenChains(t *testing.T) {
	tree := map[string]any{
		"product": map[string]any{"name": "Alpha"},
		"line":    "not an object",
		"icon": map[string]any{
			"resolutions": []any{
				[]any{float64(32), float64(32)},
				[]any{float64(64)},
				"junk",
			},
		},
	}

	assert.Equal(t, "Alpha", str(tree, "product", "name"))
	assert.Empty(t, str(tree, "product", "missing"))
	assert.Empty(t, str(tree, "line", "name"))
	assert.Empty(t, str(tree, "missing", "deeply", "nested"))
	assert.Nil(t, obj(tree, "line"))
	assert.Equal(t, [][2]int{{32, 32}}, resolutions(tree, "icon", "resolutions"))
	assert.Nil(t, resolutions(tree, "icon", "missing"))
}
