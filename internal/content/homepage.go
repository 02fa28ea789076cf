package content

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

const homepageBlogCount = 3

var emptyList = json.RawMessage("[]")

// Homepage composes the landing page. Featured categories and best sellers
// keep the editor's order; unknown ids are skipped.
func (s *service) Homepage(ctx context.Context) (HomepageDTO, error) {
	page, err := s.repo.FindHomepage(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HomepageDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "Homepage not found")
		}
		return HomepageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load homepage")
	}

	out := HomepageDTO{
		Banners: make([]BannerDTO, 0, len(page.Banners)),
		Reviews: s.presenter.CustomerReviews(page.CustomerReviews),
		SEO:     s.seo(page.SEO),
	}
	for _, b := range page.Banners {
		out.Banners = append(out.Banners, BannerDTO{
			ID:          b.ID,
			Heading:     b.Heading,
			SubHeading:  b.SubHeading,
			Link:        b.Link,
			BannerImage: s.image(b.Image, b.Heading),
		})
	}
	if out.FeaturedCategory, err = s.featuredCategories(ctx, page.FeaturedCategories); err != nil {
		return HomepageDTO{}, err
	}
	if out.BestSeller, err = s.bestSellers(ctx, page.BestSellers); err != nil {
		return HomepageDTO{}, err
	}

	blogs, err := s.repo.RecentBlogs(ctx, "", homepageBlogCount)
	if err != nil {
		return HomepageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent blogs")
	}
	out.Blogs = make([]HomepageBlogDTO, 0, len(blogs))
	for _, b := range blogs {
		out.Blogs = append(out.Blogs, HomepageBlogDTO{
			ID:               b.ID,
			Title:            b.Title,
			Slug:             b.Slug,
			ShortDescription: b.ShortDescription,
			Author:           b.AuthorName,
			CreatedOn:        b.CreatedAt.UTC().Format(dateLayout),
			Image:            s.image(b.CoverImage, b.Title),
		})
	}
	return out, nil
}

func (s *service) featuredCategories(ctx context.Context, section *models.FeaturedCategorySection) (*FeaturedCategoryDTO, error) {
	if section == nil {
		return nil, nil
	}
	ids := make([]uint, 0, len(section.Items))
	for _, item := range section.Items {
		ids = append(ids, item.CategoryID)
	}
	categories, err := s.repo.CategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load featured categories")
	}
	byID := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	out := &FeaturedCategoryDTO{
		SectionTitle:    section.SectionTitle,
		SectionSubtitle: section.SectionSubtitle,
		Categories:      make([]FeaturedCategoryItemDTO, 0, len(section.Items)),
	}
	for _, item := range section.Items {
		c, ok := byID[item.CategoryID]
		if !ok {
			continue
		}
		out.Categories = append(out.Categories, FeaturedCategoryItemDTO{
			Name:         c.Name,
			Slug:         c.Slug,
			Images:       s.images(c.Images, c.Name),
			StartingFrom: item.StartingFrom,
		})
	}
	return out, nil
}

func (s *service) bestSellers(ctx context.Context, section *models.BestSellerSection) (*BestSellerSectionDTO, error) {
	if section == nil {
		return nil, nil
	}
	products, err := s.repo.FindProductsByIDs(ctx, section.ProductIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load best sellers")
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := &BestSellerSectionDTO{
		SectionTitle:    section.SectionTitle,
		SectionSubtitle: section.SectionSubtitle,
		Products:        make([]catalog.BestSellerDTO, 0, len(section.ProductIDs)),
	}
	for _, id := range section.ProductIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if dto, ok := s.presenter.BestSeller(p); ok {
			out.Products = append(out.Products, dto)
		}
	}
	return out, nil
}

func (s *service) seo(seo *models.PageSEO) *SEODTO {
	if seo == nil {
		return nil
	}
	return &SEODTO{
		MetaTitle:          seo.MetaTitle,
		MetaDescription:    seo.MetaDescription,
		MetaKeyword:        seo.MetaKeyword,
		CanonicalTag:       seo.CanonicalTag,
		Robots:             seo.Robots,
		OGTitle:            seo.OGTitle,
		OGDescription:      seo.OGDescription,
		TwitterTitle:       seo.TwitterTitle,
		TwitterDescription: seo.TwitterDescription,
		OGImage:            s.imageURL(seo.OGImage),
		TwitterImage:       s.imageURL(seo.TwitterImage),
	}
}

// Footer returns the company contact block, or empty defaults before one
// has been saved.
func (s *service) Footer(ctx context.Context) (FooterDTO, error) {
	footer, err := s.repo.FindFooter(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FooterDTO{CompanyPhoneNumbers: emptyList, CompanyEmails: emptyList}, nil
	}
	if err != nil {
		return FooterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load footer")
	}
	return FooterDTO{
		CompanyPhoneNumbers: rawOr(footer.PhoneNumbers, emptyList),
		CompanyEmails:       rawOr(footer.Emails, emptyList),
		CompanyAddress:      rawOr(footer.Address, nil),
		FacebookLink:        footer.FacebookLink,
		TwitterLink:         footer.TwitterLink,
		InstagramLink:       footer.InstagramLink,
		LinkedinLink:        footer.LinkedinLink,
		PinterestLink:       footer.PinterestLink,
	}, nil
}

func rawOr(v datatypes.JSON, fallback json.RawMessage) json.RawMessage {
	if len(v) == 0 || string(v) == "null" {
		return fallback
	}
	return json.RawMessage(v)
}

// images renders an image list, nil when there are none.
func (s *service) images(images types.Images, fallbackAlt string) []ImageDTO {
	if len(images) == 0 {
		return nil
	}
	out := make([]ImageDTO, 0, len(images))
	for i := range images {
		if img := s.image(&images[i], fallbackAlt); img != nil {
			out = append(out, *img)
		}
	}
	return out
}

func (s *service) imageURL(img *types.Image) *string {
	if img == nil || img.URL == "" {
		return nil
	}
	url := s.assetURL(img.URL)
	return &url
}
