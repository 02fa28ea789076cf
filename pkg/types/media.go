package types

// Image is a stored media reference. URLs may be relative to the public base.
type Image struct {
	ID  int    `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Images is an ordered image list persisted as a JSON column.
type Images []Image

// First returns the first image or nil when the list is empty.
func (i Images) First() *Image {
	if len(i) == 0 {
		return nil
	}
	img := i[0]
	return &img
}

// File is a downloadable asset reference.
type File struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// SavedAddress is a customer address book entry.
type SavedAddress struct {
	Label     string `json:"label,omitempty"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}
