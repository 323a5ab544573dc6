package model

// Swatch is a named palette colour. Name is the stable persisted key.
type Swatch struct {
	Name string
	Hex  string
}

// BackgroundPalette holds the main background choices; the first is the default.
var BackgroundPalette = []Swatch{
	{Name: "sky", Hex: "#E6F2FF"},
	{Name: "mint", Hex: "#E6FFF2"},
	{Name: "blush", Hex: "#FFF2F2"},
	{Name: "lilac", Hex: "#F2E6FF"},
	{Name: "cream", Hex: "#FFFAE6"},
	{Name: "pearl", Hex: "#FAFAFA"},
}

// CardPalette holds the card background choices; the first is the default.
var CardPalette = []Swatch{
	{Name: "ivory", Hex: "#FAFAF5"},
	{Name: "azure", Hex: "#EBF5FF"},
	{Name: "seafoam", Hex: "#EBFFF5"},
	{Name: "rose", Hex: "#FFF5F5"},
	{Name: "apricot", Hex: "#FFFAEB"},
	{Name: "lavender", Hex: "#F5EBFF"},
}

// LookupSwatch finds a swatch by name.
func LookupSwatch(palette []Swatch, name string) (Swatch, bool) {
	for _, s := range palette {
		if s.Name == name {
			return s, true
		}
	}
	return Swatch{}, false
}
