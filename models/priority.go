package models

// Priority is a seeded lookup row for issue priorities.
// Rank 1 is the most urgent; listings order by rank ascending.
type Priority struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Color string `json:"color"`
}
