package services

import (
	"context"
	"database/sql"

	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

func (s *CommentService) ByProduct(ctx context.Context, productID int64) ([]models.CommentWithAuthor, error) {
	return s.repomanager.Comments(s.db).ByProduct(ctx, productID)
}

// Add posts a comment on an existing listing and returns it joined with the
// author.
func (s *CommentService) Add(ctx context.Context, userID, productID int64, text string) (*models.CommentWithAuthor, error) {
	if _, err := s.repomanager.Products(s.db).GetByID(ctx, productID); err != nil {
		return nil, err
	}

	c := &models.Comment{UserID: userID, ProductID: productID, Text: text}
	if _, err := s.repomanager.Comments(s.db).Create(ctx, c); err != nil {
		return nil, err
	}
	return s.repomanager.Comments(s.db).GetWithAuthor(ctx, c.ID)
}

func (s *CommentService) Update(ctx context.Context, userID, id int64, text string) (*models.CommentWithAuthor, error) {
	if err := s.repomanager.Comments(s.db).Update(ctx, userID, id, text); err != nil {
		return nil, err
	}
	return s.repomanager.Comments(s.db).GetWithAuthor(ctx, id)
}

func (s *CommentService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Comments(s.db).Delete(ctx, userID, id)
}
