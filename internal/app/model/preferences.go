package model

// Preferences is the lightweight session state kept between runs.
type Preferences struct {
	Tab      string   `json:"tab"`
	APIBase  string   `json:"api_base"`
	User     *User    `json:"user,omitempty"`
	Project  *Project `json:"project,omitempty"`
	AudioURL string   `json:"audio_url,omitempty"`
}

// DefaultTab is the view selected when nothing was stored.
const DefaultTab = "home"

// Bootstrapped reports whether both identity and project are known.
func (p Preferences) Bootstrapped() bool {
	return p.User != nil && p.User.ID != "" && p.Project != nil && p.Project.ID != ""
}
