package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/download"
	repo "app/internal/repository"
)

type DownloadUsecase struct {
	grants download.Store
	books  repo.BookRepository
}

func NewDownloadUsecase(grants download.Store, books repo.BookRepository) *DownloadUsecase {
	return &DownloadUsecase{grants: grants, books: books}
}

type DownloadOutput struct {
	BookID    string `json:"bookId"`
	BookTitle string `json:"bookTitle"`
	FileURL   string `json:"fileUrl"`
}

// Resolve exchanges a link token for the purchased file. Expired tokens have
// already been evicted by the grant store's TTL and resolve to not found.
func (u *DownloadUsecase) Resolve(ctx context.Context, token string) (DownloadOutput, error) {
	if strings.TrimSpace(token) == "" {
		return DownloadOutput{}, NewAppError(KindValidation, "token is required")
	}

	g, err := u.grants.Find(ctx, token)
	if errors.Is(err, download.ErrGrantNotFound) {
		return DownloadOutput{}, NewAppError(KindNotFound, "download link expired or not found")
	}
	if err != nil {
		return DownloadOutput{}, NewAppError(KindInternal, "download store error")
	}

	b, err := u.books.FindByID(ctx, g.BookID)
	if err == repo.ErrNotFound {
		return DownloadOutput{}, NewAppError(KindNotFound, "book not found")
	}
	if err != nil {
		return DownloadOutput{}, NewAppError(KindInternal, "db error")
	}
	if b.FileURL == "" {
		return DownloadOutput{}, NewAppError(KindNotFound, "book file unavailable")
	}

	return DownloadOutput{
		BookID:    b.ID,
		BookTitle: b.Title,
		FileURL:   b.FileURL,
	}, nil
}
