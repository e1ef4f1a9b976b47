package analytics

import "github.com/google/uuid"

// TopProductResponse is a product ranked by revenue
type TopProductResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Revenue   float64   `json:"revenue"`
}

// RatedProductResponse is a product ranked by average rating
type RatedProductResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	AvgRating    float64   `json:"avg_rating"`
	ReviewsCount int64     `json:"reviews_count"`
}

// DailyResponse is one calendar day of sales
type DailyResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// StatusCountResponse counts products per publication state
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// SellerReport is the seller dashboard payload
type SellerReport struct {
	ProductsCount     int64                  `json:"products_count"`
	PublishedCount    int64                  `json:"published_count"`
	DraftCount        int64                  `json:"draft_count"`
	PublishedByStatus []StatusCountResponse  `json:"published_by_status"`
	OrdersCount       int64                  `json:"orders_count"`
	PendingOrders     int64                  `json:"pending_orders"`
	TotalRevenue      float64                `json:"total_revenue"`
	RevenueByStatus   map[string]float64     `json:"revenue_by_status"`
	TopProducts       []TopProductResponse   `json:"top_products"`
	Daily             []DailyResponse        `json:"daily"`
	ReviewsCount      int64                  `json:"reviews_count"`
	AvgRating         float64                `json:"avg_rating"`
	BestProducts      []RatedProductResponse `json:"best_products"`
	WorstProducts     []RatedProductResponse `json:"worst_products"`
	AvgProductPrice   float64                `json:"avg_product_price"`
	MinProductPrice   float64                `json:"min_product_price"`
	MaxProductPrice   float64                `json:"max_product_price"`
	PriceRanges       map[string]int64       `json:"price_ranges"`
	TotalUnitsSold    int64                  `json:"total_units_sold"`
	AvgOrderSize      float64                `json:"avg_order_size"`
	UniqueBuyers      int64                  `json:"unique_buyers"`
}
