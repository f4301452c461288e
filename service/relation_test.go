package service

import (
	"Libro/pkg/response"
	"Libro/types"
	"context"
	"net/http"
	"testing"
)

func i16(v int16) *int16 { return &v }

// 变更检测的真值表
func TestDetectRateChange(t *testing.T) {
	cases := []struct {
		name       string
		oldRate    *int16
		newRate    *int16
		created    bool
		updateRate bool
		recomputed bool
	}{
		// 创建时带评分，必须触发重算
		{"create with rate", nil, i16(3), true, true, true},
		// 创建时不带评分，update_rate 不变但仍要重算一次
		{"create without rate", nil, nil, true, false, true},
		// 只改 like/is_bookmark，评分没动
		{"no rate change", i16(4), i16(4), false, false, false},
		{"no rate both nil", nil, nil, false, false, false},
		// 评分变化
		{"rate changed", i16(4), i16(5), false, true, true},
		{"first rate on existing row", nil, i16(2), false, true, true},
		// 评分被清空不算变更（不对称，按原有行为）
		{"rate cleared", i16(4), nil, false, false, false},
		// 设置同样的评分是空操作
		{"same rate again", i16(5), i16(5), false, false, false},
	}

	for _, c := range cases {
		updateRate, recomputed := detectRateChange(c.oldRate, c.newRate, c.created)
		if updateRate != c.updateRate {
			t.Fatalf("%s: update_rate = %v, want %v", c.name, updateRate, c.updateRate)
		}
		if recomputed != c.recomputed {
			t.Fatalf("%s: rating_recomputed = %v, want %v", c.name, recomputed, c.recomputed)
		}
	}
}

// 场景：创建带 rate=3，之后只把 like 翻成 true
func TestDetectRateChange_CreateThenLikeOnly(t *testing.T) {
	updateRate, recomputed := detectRateChange(nil, i16(3), true)
	if !updateRate || !recomputed {
		t.Fatalf("creation with rate: got (%v, %v), want (true, true)", updateRate, recomputed)
	}

	// like-only 更新：rate 保持 3 不变
	updateRate, recomputed = detectRateChange(i16(3), i16(3), false)
	if updateRate || recomputed {
		t.Fatalf("like-only update: got (%v, %v), want (false, false)", updateRate, recomputed)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.5, 4.5},
		{4.499999, 4.5},
		{(5.0 + 4.0) / 2.0, 4.5},
		{3.333333333, 3.33},
		{1.0, 1.0},
		{4.666666666, 4.67},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Fatalf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// rate 超出 1~5 直接 400，不碰数据库
func TestPatch_RateOutOfRange(t *testing.T) {
	s := &RelationService{}

	for _, rate := range []int16{0, 6, 10, -1} {
		req := &types.PatchRelationRequest{HasRate: true, Rate: i16(rate)}
		_, err := s.Patch(context.Background(), 1, 1, req)
		if err == nil {
			t.Fatalf("rate=%d: expected error, got nil", rate)
		}
		be, ok := err.(*response.BizError)
		if !ok {
			t.Fatalf("rate=%d: expected BizError, got %T", rate, err)
		}
		if be.Code != http.StatusBadRequest {
			t.Fatalf("rate=%d: code = %d, want %d", rate, be.Code, http.StatusBadRequest)
		}
	}
}

// like / is_bookmark 显式传 null 是非法的
func TestPatch_NullBoolRejected(t *testing.T) {
	s := &RelationService{}

	req := &types.PatchRelationRequest{HasLike: true, Like: nil}
	if _, err := s.Patch(context.Background(), 1, 1, req); err == nil {
		t.Fatal("like=null: expected error, got nil")
	}

	req = &types.PatchRelationRequest{HasBookmark: true, IsBookmark: nil}
	if _, err := s.Patch(context.Background(), 1, 1, req); err == nil {
		t.Fatal("is_bookmark=null: expected error, got nil")
	}
}
