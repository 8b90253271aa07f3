package converter

type ProductInfoRedisModel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Artist       string `json:"artist"`
	CategoryName string `json:"category_name"`
	Price        int64  `json:"price"`
}
