package model

// LibraryItem describes one candidate audio sample from the manifest.
type LibraryItem struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// DisplayTitle prefers the title, falling back to the file name.
func (i LibraryItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}
