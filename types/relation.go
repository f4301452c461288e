package types

import "encoding/json"

// PatchRelationRequest 关系记录的部分更新
// 三个字段都可省略；显式传 "rate": null 表示清除评分，
// 所以用 HasXxx 区分 "没传" 和 "传了 null"
type PatchRelationRequest struct {
	Rate        *int16
	HasRate     bool
	Like        *bool
	HasLike     bool
	IsBookmark  *bool
	HasBookmark bool
}

func (r *PatchRelationRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["rate"]; ok {
		r.HasRate = true
		if err := json.Unmarshal(v, &r.Rate); err != nil {
			return err
		}
	}
	if v, ok := raw["like"]; ok {
		r.HasLike = true
		if err := json.Unmarshal(v, &r.Like); err != nil {
			return err
		}
	}
	if v, ok := raw["is_bookmark"]; ok {
		r.HasBookmark = true
		if err := json.Unmarshal(v, &r.IsBookmark); err != nil {
			return err
		}
	}
	return nil
}

// PatchRelationResponse update_rate / rating_recomputed 两个标志
// 只为可观测性返回，不落库
type PatchRelationResponse struct {
	BookID           int64    `json:"book_id"`
	Rate             *int16   `json:"rate"`
	Like             bool     `json:"like"`
	IsBookmark       bool     `json:"is_bookmark"`
	UpdateRate       bool     `json:"update_rate"`
	RatingRecomputed bool     `json:"rating_recomputed"`
	BookRating       *float64 `json:"book_rating"`
}

type RelationStatusResponse struct {
	BookID     int64  `json:"book_id"`
	Rate       *int16 `json:"rate"`
	Like       bool   `json:"like"`
	IsBookmark bool   `json:"is_bookmark"`
}
