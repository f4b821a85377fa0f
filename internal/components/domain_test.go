package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantValid(t *testing.T) {
	for _, v := range Variants {
		assert.True(t, v.Valid(), "variant %q", v)
	}
	assert.False(t, Variant("video").Valid())
	assert.False(t, Variant("").Valid())
}

func TestDecodeProps_Text(t *testing.T) {
	p, err := DecodeProps(VariantText, map[string]interface{}{
		"content":  "hello",
		"fontSize": float64(18),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Content)
	assert.Equal(t, float64(18), p.Extra["fontSize"])
}

func TestDecodeProps_Image(t *testing.T) {
	p, err := DecodeProps(VariantImage, map[string]interface{}{
		"src": "/logo.png",
		"alt": "Logo",
	})
	require.NoError(t, err)
	assert.Equal(t, "/logo.png", p.Src)
	assert.Equal(t, "Logo", p.Alt)
	assert.Empty(t, p.Content)
}

func TestDecodeProps_Link(t *testing.T) {
	p, err := DecodeProps(VariantLink, map[string]interface{}{
		"content": "Docs",
		"href":    "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Docs", p.Content)
	assert.Equal(t, "https://example.com", p.Href)
}

func TestDecodeProps_Form(t *testing.T) {
	p, err := DecodeProps(VariantForm, map[string]interface{}{
		"submitText": "Send",
		"fields": []interface{}{
			map[string]interface{}{"name": "email", "type": "email", "placeholder": "you@example.com"},
			map[string]interface{}{"name": "message", "type": "textarea"},
			"garbage",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Send", p.SubmitText)
	require.Len(t, p.Fields, 2)
	assert.Equal(t, FormField{Name: "email", Type: "email", Placeholder: "you@example.com"}, p.Fields[0])
	assert.Equal(t, FormField{Name: "message", Type: "textarea"}, p.Fields[1])
}

func TestDecodeProps_SchemaKeysOutsideVariantGoToExtra(t *testing.T) {
	// "src" belongs to the image schema; for a text component it is opaque.
	p, err := DecodeProps(VariantText, map[string]interface{}{
		"content": "hi",
		"src":     "/logo.png",
	})
	require.NoError(t, err)
	assert.Empty(t, p.Src)
	assert.Equal(t, "/logo.png", p.Extra["src"])
}

func TestDecodeProps_UnknownVariant(t *testing.T) {
	_, err := DecodeProps(Variant("carousel"), map[string]interface{}{})
	require.ErrorIs(t, err, ErrUnknownVariant)
}
