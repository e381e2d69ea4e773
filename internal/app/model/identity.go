package model

// User is the owning identity created during bootstrap.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// UserCreate is the body of POST /users.
type UserCreate struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	PwdHash string `json:"pwd_hash"`
	Role    string `json:"role"`
}

// Project is the container audio files are registered under.
type Project struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// ProjectCreate is the body of POST /projects.
type ProjectCreate struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// Audio is a registered remote audio reference.
type Audio struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	S3URI     string    `json:"s3_uri,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// AudioCreate is the body of POST /audio.
type AudioCreate struct {
	ProjectID string `json:"project_id"`
	S3URI     string `json:"s3_uri"`
}

// HealthStatus is the freeform payload of GET /health.
type HealthStatus struct {
	Status string `json:"status"`
	DB     any    `json:"db,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the service declared itself healthy.
func (h *HealthStatus) OK() bool {
	return h != nil && h.Status == "ok"
}
