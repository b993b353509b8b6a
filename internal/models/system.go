package models

// Health — ответ GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Version — ответ GET /version.
type Version struct {
	Version string `json:"version"`
	API     string `json:"api"`
}
