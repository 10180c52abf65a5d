package domain

// Team groups users working on tasks together. Name is unique.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
}

// Project is a container tasks are filed under.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tag is a free-form label.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
