// Package search keeps three representations of a product search mutually
// consistent: the in-memory filter state, the shareable URL query string, and
// the server search payload. It also de-duplicates identical consecutive
// queries so no redundant request is issued.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phonomarket/phono/internal/client/api"
)

// Condition is the listing condition facet.
type Condition string

const (
	ConditionAny  Condition = ""
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// FilterState holds the user-visible search facets. All values are kept as
// strings, exactly as they arrive from user input or the URL; coercion to
// API types happens only in Payload. FilterState has no server identity and
// must survive a lossless round trip through a URL query string.
type FilterState struct {
	Search    string
	Region    string
	TopOnly   bool
	Condition Condition
	Brand     string
	Model     string
	Memory    string
	Color     string
	PriceFrom string
	PriceTo   string
}

// IsEmpty reports whether no text and no facet is set. An empty search
// performs no request.
func (f FilterState) IsEmpty() bool {
	return f == FilterState{}
}

// SetBrand switches the brand facet. The dependent model facet is reset
// unconditionally whenever the brand changes.
func (f *FilterState) SetBrand(brand string) {
	if f.Brand != brand {
		f.Model = ""
	}
	f.Brand = brand
}

// isHexColor reports whether v is a legacy hex color literal rather than a
// numeric color id. Such values are never coerced into ids.
func isHexColor(v string) bool {
	return strings.HasPrefix(v, "#")
}

// QueryValues serializes the state for the URL bar. Unset facets are omitted.
// The condition facet appears under the frontend-only key "is_new", which is
// not part of the server payload, and the memory facet keeps its plain
// "memory" key (the payload maps it to memory_from).
func (f FilterState) QueryValues() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Region != "" {
		v.Set("region_id", f.Region)
	}
	if f.TopOnly {
		v.Set("top", "true")
	}
	switch f.Condition {
	case ConditionNew:
		v.Set("is_new", "true")
	case ConditionUsed:
		v.Set("is_new", "false")
	}
	if f.Brand != "" {
		v.Set("brand_id", f.Brand)
	}
	if f.Model != "" {
		v.Set("model_id", f.Model)
	}
	if f.Memory != "" {
		v.Set("memory", f.Memory)
	}
	if f.Color != "" {
		v.Set("color_id", f.Color)
	}
	if f.PriceFrom != "" {
		v.Set("price_from", f.PriceFrom)
	}
	if f.PriceTo != "" {
		v.Set("price_to", f.PriceTo)
	}
	return v
}

// ParseQuery restores a FilterState from URL query values. It is the inverse
// of QueryValues: ParseQuery(f.QueryValues()) == f for every state.
func ParseQuery(v url.Values) FilterState {
	f := FilterState{
		Search:    v.Get("search"),
		Region:    v.Get("region_id"),
		TopOnly:   v.Get("top") == "true",
		Brand:     v.Get("brand_id"),
		Model:     v.Get("model_id"),
		Memory:    v.Get("memory"),
		Color:     v.Get("color_id"),
		PriceFrom: v.Get("price_from"),
		PriceTo:   v.Get("price_to"),
	}
	switch v.Get("is_new") {
	case "true":
		f.Condition = ConditionNew
	case "false":
		f.Condition = ConditionUsed
	}
	return f
}

// Payload builds the server search request. Only truthy facets are copied,
// numeric strings are coerced, and the condition facet is dropped entirely:
// is_new stays a frontend-only URL key. Hex color leftovers are skipped
// rather than coerced into ids. Unparseable numbers are treated as unset.
func (f FilterState) Payload() api.SearchRequest {
	req := api.SearchRequest{Search: f.Search}

	if n, err := strconv.ParseInt(f.Region, 10, 64); err == nil && f.Region != "" {
		req.RegionID = n
	}
	if f.TopOnly {
		req.Top = true
	}
	if n, err := strconv.ParseInt(f.Brand, 10, 64); err == nil && f.Brand != "" {
		req.BrandID = n
	}
	if n, err := strconv.ParseInt(f.Model, 10, 64); err == nil && f.Model != "" {
		req.ModelID = n
	}
	if n, err := strconv.Atoi(f.Memory); err == nil && f.Memory != "" {
		req.MemoryFrom = n
	}
	if f.Color != "" && !isHexColor(f.Color) {
		if n, err := strconv.ParseInt(f.Color, 10, 64); err == nil {
			req.ColorID = n
		}
	}
	if n, err := strconv.ParseInt(f.PriceFrom, 10, 64); err == nil && f.PriceFrom != "" {
		req.PriceFrom = n
	}
	if n, err := strconv.ParseInt(f.PriceTo, 10, 64); err == nil && f.PriceTo != "" {
		req.PriceTo = n
	}
	return req
}
