package domain

// NewsSnapshot is the full provider result for a single date. The services
// treat it as an opaque blob: it is fetched, cached and served whole, never
// inspected item by item.
type NewsSnapshot struct {
	Pagination Pagination `json:"pagination"`
	Items      []NewsItem `json:"data"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

type NewsItem struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	PublishedAt string `json:"published_at"`
}
