package models

// ============================================================
// Archive Models
// ============================================================

// Client — CAD-клиент, которому разрешено складывать сборки.
type Client struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// BuildRecord — строка журнала сборок.
type BuildRecord struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	Project    string `json:"project"`
	FileName   string `json:"file_name"`
	Valid      bool   `json:"valid"`
	Violations int    `json:"violations"`
	Walls      int    `json:"walls"`
	CreatedAt  string `json:"created_at"`
}
