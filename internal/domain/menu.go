package domain

// MenuItem is a read-only catalog entry shown on the menu.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"img"`
}
