package domain

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"` // URL path of the stored image
}

type ViewCount struct {
	Count int64 `json:"count"`
}
