package types

// FeedRequest GET /feed 查询参数，limit 缺省时使用配置值
type FeedRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     *int   `form:"limit"`
	Search    string `form:"search"`
	Interests string `form:"interests"`
}

type FeedQuery struct {
	Page      int
	Limit     int
	Search    string
	Interests []string
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type FeedResponse struct {
	Profiles   []*AnnotatedProfile `json:"profiles"`
	Pagination Pagination          `json:"pagination"`
}

type TrendingInterest struct {
	Interest string `json:"interest"`
	Count    int64  `json:"count"`
}

type TrendingResponse struct {
	Trending []TrendingInterest `json:"trending"`
}
