package components

import (
	"errors"
	"fmt"
)

// Variant discriminates a component's rendering behavior.
type Variant string

const (
	VariantText      Variant = "text"
	VariantImage     Variant = "image"
	VariantContainer Variant = "container"
	VariantButton    Variant = "button"
	VariantLink      Variant = "link"
	VariantForm      Variant = "form"
)

// Variants lists every declared variant in a fixed order.
var Variants = []Variant{
	VariantText,
	VariantImage,
	VariantContainer,
	VariantButton,
	VariantLink,
	VariantForm,
}

func (v Variant) Valid() bool {
	switch v {
	case VariantText, VariantImage, VariantContainer, VariantButton, VariantLink, VariantForm:
		return true
	}
	return false
}

var ErrUnknownVariant = errors.New("unknown component variant")

type FormField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Props is the typed view of a component's free-form props payload, keyed by
// variant. Keys a variant does not understand are preserved in Extra so
// forward-compatible payloads survive a round trip.
type Props struct {
	Content    string                 `json:"content,omitempty"`
	Src        string                 `json:"src,omitempty"`
	Alt        string                 `json:"alt,omitempty"`
	Href       string                 `json:"href,omitempty"`
	Fields     []FormField            `json:"fields,omitempty"`
	SubmitText string                 `json:"submit_text,omitempty"`
	Extra      map[string]interface{} `json:"-"`
}

// DecodeProps interprets a raw props map according to the variant's schema.
func DecodeProps(v Variant, raw map[string]interface{}) (Props, error) {
	if !v.Valid() {
		return Props{}, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	p := Props{Extra: map[string]interface{}{}}
	for key, val := range raw {
		switch {
		case key == "content" && (v == VariantText || v == VariantButton || v == VariantLink):
			p.Content, _ = val.(string)
		case key == "src" && v == VariantImage:
			p.Src, _ = val.(string)
		case key == "alt" && v == VariantImage:
			p.Alt, _ = val.(string)
		case key == "href" && (v == VariantButton || v == VariantLink):
			p.Href, _ = val.(string)
		case key == "submitText" && v == VariantForm:
			p.SubmitText, _ = val.(string)
		case key == "fields" && v == VariantForm:
			p.Fields = decodeFields(val)
		default:
			p.Extra[key] = val
		}
	}
	return p, nil
}

func decodeFields(val interface{}) []FormField {
	items, ok := val.([]interface{})
	if !ok {
		return nil
	}
	out := make([]FormField, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var f FormField
		f.Name, _ = m["name"].(string)
		f.Type, _ = m["type"].(string)
		f.Placeholder, _ = m["placeholder"].(string)
		out = append(out, f)
	}
	return out
}
