package service

import (
	"Libro/dao"
	"Libro/models"
	"Libro/pkg/log"
	"Libro/pkg/response"
	"Libro/types"
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IRelationService = (*RelationService)(nil)

type IRelationService interface {
	Patch(ctx context.Context, userID int64, bookID int64, req *types.PatchRelationRequest) (*types.PatchRelationResponse, error)
	GetRelation(ctx context.Context, userID int64, bookID int64) (*types.RelationStatusResponse, error)
	CheckLikeStatus(ctx context.Context, userID int64, bookID int64) (bool, error)
	CheckBookmarkStatus(ctx context.Context, userID int64, bookID int64) (bool, error)
}

type RelationService struct {
	DB          *gorm.DB
	RelationDAO *dao.UserBookRelationDAO
	BookDAO     *dao.BookDAO
	Redis       *redis.Client
}

// detectRateChange 评分变更检测
// update_rate 仅在新评分非空且与之前观察到的评分不同时为 true，
// 把评分清空(置 null)不算变更；首次创建的保存无条件触发重算
func detectRateChange(oldRate, newRate *int16, created bool) (updateRate bool, recomputed bool) {
	if newRate != nil && (oldRate == nil || *oldRate != *newRate) {
		updateRate = true
	}
	return updateRate, updateRate || created
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Patch 部分更新当前用户对书籍的关系记录
// 流程：取出或创建关系行 -> 落库 -> 变更检测 -> 需要时在同一事务里重算书籍评分
// 事务保证关系写入和评分更新要么一起提交要么一起回滚
func (s *RelationService) Patch(ctx context.Context, userID int64, bookID int64, req *types.PatchRelationRequest) (*types.PatchRelationResponse, error) {
	if req.HasRate && req.Rate != nil && (*req.Rate < 1 || *req.Rate > 5) {
		return nil, response.NewError(http.StatusBadRequest, "rate 必须在 1~5 之间")
	}
	if req.HasLike && req.Like == nil {
		return nil, response.NewError(http.StatusBadRequest, "like 不能为 null")
	}
	if req.HasBookmark && req.IsBookmark == nil {
		return nil, response.NewError(http.StatusBadRequest, "is_bookmark 不能为 null")
	}

	exist, err := s.BookDAO.IsExist(ctx, "id = ?", bookID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NewError(http.StatusNotFound, "书籍不存在")
	}

	var res *types.PatchRelationResponse
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rel, created, err := s.RelationDAO.GetOrCreate(tx, bookID, userID)
		if err != nil {
			return err
		}

		oldRate := rel.Rate
		newRate := oldRate
		updates := map[string]interface{}{}
		if req.HasRate {
			newRate = req.Rate
			updates["rate"] = req.Rate
		}
		if req.HasLike {
			updates["like"] = *req.Like
			rel.Like = *req.Like
		}
		if req.HasBookmark {
			updates["is_bookmark"] = *req.IsBookmark
			rel.IsBookmark = *req.IsBookmark
		}

		if err := s.RelationDAO.UpdateById(tx, rel.ID, updates); err != nil {
			return err
		}

		updateRate, recomputed := detectRateChange(oldRate, newRate, created)

		var bookRating *float64
		if recomputed {
			bookRating, err = s.recomputeRating(tx, bookID)
			if err != nil {
				return err
			}
		}

		res = &types.PatchRelationResponse{
			BookID:           bookID,
			Rate:             newRate,
			Like:             rel.Like,
			IsBookmark:       rel.IsBookmark,
			UpdateRate:       updateRate,
			RatingRecomputed: recomputed,
			BookRating:       bookRating,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshStatusCache(ctx, userID, bookID, req)
	return res, nil
}

// recomputeRating 评分聚合：取书籍全部非空评分的均值写回 books.rating
// 一条评分都没有时不动已有 rating，返回当前存量值
func (s *RelationService) recomputeRating(tx *gorm.DB, bookID int64) (*float64, error) {
	avg, err := s.RelationDAO.AverageRate(tx, bookID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		var book models.Book
		if err := tx.Select("rating").Where("id = ?", bookID).First(&book).Error; err != nil {
			return nil, err
		}
		return book.Rating, nil
	}

	rating := round2(*avg)
	if err := tx.Model(&models.Book{}).Where("id = ?", bookID).Update("rating", rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *RelationService) GetRelation(ctx context.Context, userID int64, bookID int64) (*types.RelationStatusResponse, error) {
	exist, err := s.BookDAO.IsExist(ctx, "id = ?", bookID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NewError(http.StatusNotFound, "书籍不存在")
	}

	rel, err := s.RelationDAO.GetByBookUser(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}
	res := &types.RelationStatusResponse{BookID: bookID}
	if rel != nil {
		res.Rate = rel.Rate
	}
	if res.Like, err = s.CheckLikeStatus(ctx, userID, bookID); err != nil {
		return nil, err
	}
	if res.IsBookmark, err = s.CheckBookmarkStatus(ctx, userID, bookID); err != nil {
		return nil, err
	}
	return res, nil
}

// CheckLikeStatus 点赞状态查询，缓存命中直接返回，否则回源数据库
// 集合里只缓存正向状态，查不到不代表没点过
func (s *RelationService) CheckLikeStatus(ctx context.Context, userID int64, bookID int64) (bool, error) {
	if s.Redis != nil {
		exists, err := s.Redis.SIsMember(ctx, likedBooksKey(userID), bookID).Result()
		if err == nil && exists {
			return true, nil
		}
		if err != nil {
			log.L.Warn("check like cache", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return s.RelationDAO.IsExist(ctx, "book_id = ? AND user_id = ? AND `like` = 1", bookID, userID)
}

func (s *RelationService) CheckBookmarkStatus(ctx context.Context, userID int64, bookID int64) (bool, error) {
	if s.Redis != nil {
		exists, err := s.Redis.SIsMember(ctx, bookmarkedBooksKey(userID), bookID).Result()
		if err == nil && exists {
			return true, nil
		}
		if err != nil {
			log.L.Warn("check bookmark cache", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return s.RelationDAO.IsExist(ctx, "book_id = ? AND user_id = ? AND is_bookmark = 1", bookID, userID)
}

// refreshStatusCache 写后维护用户点赞/收藏集合缓存，失败只记日志
func (s *RelationService) refreshStatusCache(ctx context.Context, userID int64, bookID int64, req *types.PatchRelationRequest) {
	if s.Redis == nil {
		return
	}
	if req.HasLike {
		key := likedBooksKey(userID)
		var err error
		if *req.Like {
			err = s.Redis.SAdd(ctx, key, bookID).Err()
		} else {
			err = s.Redis.SRem(ctx, key, bookID).Err()
		}
		if err != nil {
			log.L.Warn("refresh like cache", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	if req.HasBookmark {
		key := bookmarkedBooksKey(userID)
		var err error
		if *req.IsBookmark {
			err = s.Redis.SAdd(ctx, key, bookID).Err()
		} else {
			err = s.Redis.SRem(ctx, key, bookID).Err()
		}
		if err != nil {
			log.L.Warn("refresh bookmark cache", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
}

func likedBooksKey(userID int64) string {
	return fmt.Sprintf("user:liked:books:%d", userID)
}

func bookmarkedBooksKey(userID int64) string {
	return fmt.Sprintf("user:bookmarked:books:%d", userID)
}
