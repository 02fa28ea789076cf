// Package userdetails serves the signed-in customer's profile through a
// short-lived redis read-through cache.
package userdetails

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/redis"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// DefaultCacheTTL bounds how stale a cached profile can be.
const DefaultCacheTTL = 300 * time.Second

const (
	SourceCache = "redis"
	SourceDB    = "db"
)

type store interface {
	FindByUser(ctx context.Context, userID uint) (*models.UserDetail, error)
	Create(ctx context.Context, detail *models.UserDetail) error
	Update(ctx context.Context, detail *models.UserDetail, columns ...string) error
}

// Identity is what the access token tells us about the caller.
type Identity struct {
	UserID   uint
	Username string
	Email    string
}

// ImageDTO is a profile picture with an absolute URL.
type ImageDTO struct {
	ID  int    `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alternativeText,omitempty"`
}

// DetailsDTO is the stored profile block.
type DetailsDTO struct {
	ID             uint                 `json:"id"`
	FullName       string               `json:"fullName"`
	ProfileImage   *ImageDTO            `json:"profileImage"`
	PhoneNumbers   []string             `json:"phoneNumbers"`
	SavedAddresses []types.SavedAddress `json:"savedAddresses"`
}

// Profile is the response of the "me" endpoints. Source is set on reads.
type Profile struct {
	Source      string      `json:"source,omitempty"`
	ID          uint        `json:"id"`
	Username    *string     `json:"username"`
	Email       *string     `json:"email"`
	UserDetails *DetailsDTO `json:"userDetails"`
}

// UpsertInput carries optional fields; nil leaves the stored value alone.
type UpsertInput struct {
	FullName       *string               `json:"fullName"`
	PhoneNumbers   *[]string             `json:"phoneNumbers"`
	SavedAddresses *[]types.SavedAddress `json:"savedAddresses"`
	ProfileImage   *types.Image          `json:"profileImage"`
}

// Cleared reports the removed cache key.
type Cleared struct {
	OK      bool   `json:"ok"`
	Cleared string `json:"cleared"`
}

type Service interface {
	Get(ctx context.Context, who Identity) (Profile, error)
	Upsert(ctx context.Context, who Identity, input UpsertInput) (Profile, error)
	ClearCache(ctx context.Context, userID uint) (Cleared, error)
}

type ServiceParams struct {
	Repo     store
	Cache    redis.Cache
	TTL      time.Duration
	AssetURL func(string) string
	Logger   *logger.Logger
}

type service struct {
	repo     store
	cache    redis.Cache
	ttl      time.Duration
	assetURL func(string) string
	logg     *logger.Logger
}

func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New("user detail repository is required")
	}
	if p.Cache == nil {
		return nil, errors.New("cache is required")
	}
	if p.TTL <= 0 {
		p.TTL = DefaultCacheTTL
	}
	if p.AssetURL == nil {
		p.AssetURL = func(s string) string { return s }
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &service{repo: p.Repo, cache: p.Cache, ttl: p.TTL, assetURL: p.AssetURL, logg: p.Logger}, nil
}

// Get serves from cache when possible. Cache faults fall back to the DB.
func (s *service) Get(ctx context.Context, who Identity) (Profile, error) {
	ctx = s.logg.WithUserID(ctx, strconv.FormatUint(uint64(who.UserID), 10))
	key := s.cache.UserDetailsKey(who.UserID)

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached Profile
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			cached.Source = SourceCache
			return cached, nil
		}
		s.logg.Warn(ctx, "discarding unreadable cached user details")
	case !redis.IsMiss(err):
		s.logg.Error(ctx, "user details cache read failed", err)
	}

	detail, err := s.repo.FindByUser(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, pkgerrors.New(pkgerrors.CodeNotFound, "User details not found")
		}
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user details")
	}

	profile := s.render(who, detail)
	if payload, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logg.Error(ctx, "user details cache write failed", err)
		}
	}
	profile.Source = SourceDB
	return profile, nil
}

// Upsert creates or partially updates the caller's row. The cache entry is
// left to expire on its own.
func (s *service) Upsert(ctx context.Context, who Identity, input UpsertInput) (Profile, error) {
	existing, err := s.repo.FindByUser(ctx, who.UserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		detail := &models.UserDetail{
			UserID:         who.UserID,
			PhoneNumbers:   datatypes.JSONSlice[string]{},
			SavedAddresses: datatypes.JSONSlice[types.SavedAddress]{},
			ProfileImage:   input.ProfileImage,
		}
		if input.FullName != nil {
			detail.FullName = *input.FullName
		}
		if input.PhoneNumbers != nil {
			detail.PhoneNumbers = *input.PhoneNumbers
		}
		if input.SavedAddresses != nil {
			detail.SavedAddresses = *input.SavedAddresses
		}
		if err := s.repo.Create(ctx, detail); err != nil {
			return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user details")
		}
	case err != nil:
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user details")
	default:
		var columns []string
		if input.FullName != nil {
			existing.FullName = *input.FullName
			columns = append(columns, "full_name")
		}
		if input.PhoneNumbers != nil {
			existing.PhoneNumbers = *input.PhoneNumbers
			columns = append(columns, "phone_numbers")
		}
		if input.SavedAddresses != nil {
			existing.SavedAddresses = *input.SavedAddresses
			columns = append(columns, "saved_addresses")
		}
		if input.ProfileImage != nil {
			existing.ProfileImage = input.ProfileImage
			columns = append(columns, "profile_image")
		}
		if err := s.repo.Update(ctx, existing, columns...); err != nil {
			return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user details")
		}
	}

	detail, err := s.repo.FindByUser(ctx, who.UserID)
	if err != nil {
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user details")
	}
	return s.render(who, detail), nil
}

func (s *service) ClearCache(ctx context.Context, userID uint) (Cleared, error) {
	key := s.cache.UserDetailsKey(userID)
	if err := s.cache.Del(ctx, key); err != nil {
		return Cleared{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear user details cache")
	}
	return Cleared{OK: true, Cleared: key}, nil
}

func (s *service) render(who Identity, d *models.UserDetail) Profile {
	profile := Profile{ID: who.UserID, Username: optional(who.Username), Email: optional(who.Email)}
	if d == nil {
		return profile
	}
	details := &DetailsDTO{
		ID:             d.ID,
		FullName:       d.FullName,
		PhoneNumbers:   []string(d.PhoneNumbers),
		SavedAddresses: []types.SavedAddress(d.SavedAddresses),
	}
	if details.PhoneNumbers == nil {
		details.PhoneNumbers = []string{}
	}
	if details.SavedAddresses == nil {
		details.SavedAddresses = []types.SavedAddress{}
	}
	if img := d.ProfileImage; img != nil && img.URL != "" {
		details.ProfileImage = &ImageDTO{ID: img.ID, URL: s.assetURL(img.URL), Alt: img.Alt}
	}
	profile.UserDetails = details
	return profile
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
