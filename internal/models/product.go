package models

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Model         string   `json:"model,omitempty"`
	SerialNumber  string   `json:"serialNumber,omitempty"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Stock         int      `json:"stock"`
	Image         string   `json:"image,omitempty"`
	Category      string   `json:"category,omitempty"`
	Material      string   `json:"material,omitempty"`
	Color         string   `json:"color,omitempty"`
	MainCategory  []string `json:"mainCategory,omitempty"`
	Warranty      string   `json:"warranty,omitempty"`
	Distributor   string   `json:"distributor,omitempty"`
	Rating        float64  `json:"rating,omitempty"`

	// Client-side computed fields. Not authoritative: real stock lives on
	// the server, the local inventory ledger only compensates offline.
	AvailableStock int     `json:"availableStock"`
	AverageRating  float64 `json:"averageRating"`
	RatingCount    int     `json:"ratingCount"`
	HasDiscount    bool    `json:"hasDiscount"`
	DiscountLabel  string  `json:"discountLabel,omitempty"`
}

type CartItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Image          string  `json:"image,omitempty"`
	Quantity       int     `json:"quantity"`
	AvailableStock int     `json:"availableStock"`
}

type WishlistItem struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Image   string  `json:"image,omitempty"`
	AddedAt string  `json:"added_at,omitempty"`
}
