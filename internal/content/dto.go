package content

import (
	"encoding/json"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
)

// ImageDTO is an image with alt text defaulted to the owner's title.
type ImageDTO struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// BlogDTO is a full article.
type BlogDTO struct {
	ID               uint           `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	ShortDescription string         `json:"shortDescription"`
	Content          string         `json:"content"`
	Author           string         `json:"author"`
	CreatedOn        string         `json:"createdOn"`
	Image            *ImageDTO      `json:"image"`
	SEO              map[string]any `json:"seo"`
}

// RecentBlogDTO is the teaser shown next to an article.
type RecentBlogDTO struct {
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Image *ImageDTO `json:"image"`
}

// BlogDetailDTO pairs an article with recent ones.
type BlogDetailDTO struct {
	Blog        BlogDTO         `json:"blog"`
	RecentBlogs []RecentBlogDTO `json:"recentBlogs"`
}

// BlogPageMeta describes a blog listing page.
type BlogPageMeta struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	PageCount int64 `json:"pageCount"`
}

// BlogPageDTO is one page of articles.
type BlogPageDTO struct {
	Meta BlogPageMeta `json:"meta"`
	Data []BlogDTO    `json:"data"`
}

// PolicyDTO is a static policy page.
type PolicyDTO struct {
	PageName        string `json:"pageName"`
	PageDescription string `json:"pageDescription"`
}

// FileDTO is a downloadable file.
type FileDTO struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// CatalogueDTO is a downloadable brochure.
type CatalogueDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Thumbnail *ImageDTO `json:"thumbnail"`
	File      *FileDTO  `json:"file"`
}

// HomepageDTO is the composed landing page. Missing sections are null.
type HomepageDTO struct {
	Banners          []BannerDTO                 `json:"banner"`
	FeaturedCategory *FeaturedCategoryDTO        `json:"featuredCategory"`
	BestSeller       *BestSellerSectionDTO       `json:"bestSeller"`
	Reviews          *catalog.CustomerReviewsDTO `json:"reviews"`
	Blogs            []HomepageBlogDTO           `json:"blogs"`
	SEO              *SEODTO                     `json:"seo"`
}

type BannerDTO struct {
	ID          int       `json:"id"`
	Heading     string    `json:"heading"`
	SubHeading  string    `json:"subHeading"`
	Link        string    `json:"link"`
	BannerImage *ImageDTO `json:"bannerImage"`
}

type FeaturedCategoryDTO struct {
	SectionTitle    string                    `json:"sectionTitle"`
	SectionSubtitle string                    `json:"sectionSubtitle"`
	Categories      []FeaturedCategoryItemDTO `json:"categories"`
}

// FeaturedCategoryItemDTO is a featured category tile. Images is null when
// the category has none.
type FeaturedCategoryItemDTO struct {
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Images       []ImageDTO `json:"images"`
	StartingFrom string     `json:"startingFrom"`
}

type BestSellerSectionDTO struct {
	SectionTitle    string                  `json:"sectionTitle"`
	SectionSubtitle string                  `json:"sectionSubtitle"`
	Products        []catalog.BestSellerDTO `json:"products"`
}

// HomepageBlogDTO is a blog teaser. CreatedOn is the creation date.
type HomepageBlogDTO struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"shortDescription"`
	Author           string    `json:"author"`
	CreatedOn        string    `json:"createdOn"`
	Image            *ImageDTO `json:"image"`
}

type SEODTO struct {
	MetaTitle          string  `json:"meta_title"`
	MetaDescription    string  `json:"meta_description"`
	MetaKeyword        string  `json:"meta_keyword"`
	CanonicalTag       string  `json:"canonical_tag"`
	Robots             string  `json:"robots"`
	OGTitle            string  `json:"og_title"`
	OGDescription      string  `json:"og_description"`
	TwitterTitle       string  `json:"twitter_title"`
	TwitterDescription string  `json:"twitter_description"`
	OGImage            *string `json:"og_image"`
	TwitterImage       *string `json:"twitter_image"`
}

// FooterDTO is the company contact block. Lists default to empty, the rest
// to null.
type FooterDTO struct {
	CompanyPhoneNumbers json.RawMessage `json:"companyPhoneNumbers"`
	CompanyEmails       json.RawMessage `json:"companyEmails"`
	CompanyAddress      json.RawMessage `json:"companyAddress"`
	FacebookLink        *string         `json:"facebookLink"`
	TwitterLink         *string         `json:"twitterLink"`
	InstagramLink       *string         `json:"instagramLink"`
	LinkedinLink        *string         `json:"linkedinLink"`
	PinterestLink       *string         `json:"pinterestLink"`
}
