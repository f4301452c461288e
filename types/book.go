package types

import "encoding/json"

// BookListQuery 书籍列表的过滤/搜索/排序参数
type BookListQuery struct {
	// Price 精确匹配价格
	Price *float64 `form:"price"`
	// Search 书名/作者模糊搜索，不区分大小写
	Search string `form:"search"`
	// Ordering 取值 id / -id / price / -price
	Ordering string `form:"ordering"`
}

type BookReader struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type BookResponse struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Price          float64       `json:"price"`
	Author         string        `json:"author"`
	CountLikes     int64         `json:"count_likes"`
	Rating         *float64      `json:"rating"`
	CountBookmarks int64         `json:"count_bookmarks"`
	OwnerName      *string       `json:"owner_name"`
	Readers        []*BookReader `json:"readers"`
	Discount       *float64      `json:"discount"`
	EndPrice       float64       `json:"end_price"`
}

type CreateBookRequest struct {
	Name     string   `json:"name" binding:"required,max=150"`
	Author   string   `json:"author" binding:"required,max=150"`
	Price    float64  `json:"price" binding:"required"`
	Discount *float64 `json:"discount"`
}

// UpdateBookRequest 部分更新，nil 表示不改
// discount 可以显式传 null 清除折扣，所以要区分 "没传" 和 "传了 null"
type UpdateBookRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=150"`
	Author      *string  `json:"author" binding:"omitempty,max=150"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	HasDiscount bool     `json:"-"`
}

func (r *UpdateBookRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &r.Name); err != nil {
			return err
		}
	}
	if v, ok := raw["author"]; ok {
		if err := json.Unmarshal(v, &r.Author); err != nil {
			return err
		}
	}
	if v, ok := raw["price"]; ok {
		if err := json.Unmarshal(v, &r.Price); err != nil {
			return err
		}
	}
	if v, ok := raw["discount"]; ok {
		r.HasDiscount = true
		if err := json.Unmarshal(v, &r.Discount); err != nil {
			return err
		}
	}
	return nil
}

type CreateBookResponse struct {
	BookID int64 `json:"book_id"`
}
