package request

type CreateComment struct {
	Content  string `json:"content" binding:"required"`
	PostID   int64  `json:"post_id" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

type UpdateComment struct {
	Content string `json:"content" binding:"required"`
}

// DateRange binds the analytics query params, dates formatted as 2006-01-02.
type DateRange struct {
	DateFrom string `form:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"required,datetime=2006-01-02"`
}
