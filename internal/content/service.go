// Package content serves the homepage, footer, blogs, policy pages and
// brochure downloads.
package content

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/pagination"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

const (
	recentBlogCount = 3
	maxBlogPageSize = 50
	dateLayout      = "2006-01-02"
)

type reader interface {
	ListBlogs(ctx context.Context, limit, offset int) ([]models.Blog, error)
	CountBlogs(ctx context.Context) (int64, error)
	FindBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	RecentBlogs(ctx context.Context, excludeSlug string, limit int) ([]models.Blog, error)
	FindPolicy(ctx context.Context, pageName string) (*models.SitePolicy, error)
	ActiveCatalogues(ctx context.Context) ([]models.ProductCatalogue, error)
	FindHomepage(ctx context.Context) (*models.Homepage, error)
	FindFooter(ctx context.Context) (*models.FooterDetail, error)
	CategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
}

type Service interface {
	ListBlogs(ctx context.Context, page, limit int) (BlogPageDTO, error)
	GetBlog(ctx context.Context, slug string) (BlogDetailDTO, error)
	GetPolicy(ctx context.Context, pageName string) (PolicyDTO, error)
	ListCatalogues(ctx context.Context) ([]CatalogueDTO, error)
	Homepage(ctx context.Context) (HomepageDTO, error)
	Footer(ctx context.Context) (FooterDTO, error)
}

type service struct {
	repo      reader
	assetURL  func(string) string
	presenter catalog.Presenter
}

func NewService(repo reader, assetURL func(string) string) (Service, error) {
	if repo == nil {
		return nil, errors.New("content repository is required")
	}
	if assetURL == nil {
		assetURL = func(s string) string { return s }
	}
	return &service{repo: repo, assetURL: assetURL, presenter: catalog.NewPresenter(assetURL)}, nil
}

func (s *service) ListBlogs(ctx context.Context, page, limit int) (BlogPageDTO, error) {
	if limit > maxBlogPageSize {
		limit = maxBlogPageSize
	}
	params := pagination.FromPage(page, limit)
	if page < 1 {
		page = 1
	}

	blogs, err := s.repo.ListBlogs(ctx, params.Limit, params.Offset)
	if err != nil {
		return BlogPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blogs")
	}
	total, err := s.repo.CountBlogs(ctx)
	if err != nil {
		return BlogPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count blogs")
	}

	out := BlogPageDTO{
		Meta: BlogPageMeta{
			Page:      page,
			PageSize:  params.Limit,
			Total:     total,
			PageCount: (total + int64(params.Limit) - 1) / int64(params.Limit),
		},
		Data: make([]BlogDTO, 0, len(blogs)),
	}
	for _, b := range blogs {
		out.Data = append(out.Data, s.blog(b))
	}
	return out, nil
}

func (s *service) GetBlog(ctx context.Context, slug string) (BlogDetailDTO, error) {
	slug = strings.TrimSpace(slug)
	blog, err := s.repo.FindBlogBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BlogDetailDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "Blog not found")
		}
		return BlogDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load blog")
	}
	recent, err := s.repo.RecentBlogs(ctx, slug, recentBlogCount)
	if err != nil {
		return BlogDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent blogs")
	}

	out := BlogDetailDTO{Blog: s.blog(*blog), RecentBlogs: make([]RecentBlogDTO, 0, len(recent))}
	for _, b := range recent {
		out.RecentBlogs = append(out.RecentBlogs, RecentBlogDTO{
			Title: b.Title,
			Slug:  b.Slug,
			Image: s.image(b.CoverImage, b.Title),
		})
	}
	return out, nil
}

func (s *service) GetPolicy(ctx context.Context, pageName string) (PolicyDTO, error) {
	policy, err := s.repo.FindPolicy(ctx, strings.TrimSpace(pageName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "Policy page not found")
		}
		return PolicyDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load policy")
	}
	return PolicyDTO{PageName: policy.PageName, PageDescription: policy.PageDescription}, nil
}

func (s *service) ListCatalogues(ctx context.Context) ([]CatalogueDTO, error) {
	items, err := s.repo.ActiveCatalogues(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalogues")
	}
	out := make([]CatalogueDTO, 0, len(items))
	for _, item := range items {
		dto := CatalogueDTO{ID: item.ID, Name: item.Name, Thumbnail: s.image(item.Thumbnail, item.Name)}
		if item.File != nil && item.File.URL != "" {
			dto.File = &FileDTO{URL: s.assetURL(item.File.URL), Name: item.File.Name}
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) blog(b models.Blog) BlogDTO {
	created := b.CreatedAt
	if b.UploadedDate != nil {
		created = *b.UploadedDate
	}
	dto := BlogDTO{
		ID:               b.ID,
		Title:            b.Title,
		Slug:             b.Slug,
		ShortDescription: b.ShortDescription,
		Content:          b.Content,
		Author:           b.AuthorName,
		CreatedOn:        created.UTC().Format(dateLayout),
		Image:            s.image(b.CoverImage, b.Title),
	}
	if len(b.SEO) > 0 {
		dto.SEO = map[string]any(b.SEO)
	}
	return dto
}

func (s *service) image(img *types.Image, fallbackAlt string) *ImageDTO {
	if img == nil || img.URL == "" {
		return nil
	}
	alt := img.Alt
	if alt == "" {
		alt = fallbackAlt
	}
	return &ImageDTO{URL: s.assetURL(img.URL), Alt: alt}
}
