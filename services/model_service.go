package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"synthara-api/models"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var ErrModelNotFound = errors.New("model not found")

// ModelProfileView is the API shape of a model profile: tags as a list.
type ModelProfileView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Tagline   string    `json:"tagline"`
	Tags      []string  `json:"tags"`
	Bio       *string   `json:"bio"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ModelGoldStatus struct {
	Drop    *models.GoldNFTDrop `json:"drop"`
	Auction *models.Auction     `json:"auction"`
}

type ModelProfileDetail struct {
	ModelProfileView
	Loras []models.LoRAAsset `json:"loras"`
	Gold  ModelGoldStatus    `json:"gold"`
}

type ModelProfileInput struct {
	Name    string   `json:"name"`
	Tagline string   `json:"tagline"`
	Tags    []string `json:"tags"`
	Bio     *string  `json:"bio"`
}

type ModelProfileUpdate struct {
	Name    *string   `json:"name"`
	Tagline *string   `json:"tagline"`
	Tags    *[]string `json:"tags"`
	Bio     *string   `json:"bio"`
}

type ModelService struct {
	DB *gorm.DB
}

func NewModelService(db *gorm.DB) *ModelService {
	return &ModelService{DB: db}
}

var tagCaser = cases.Lower(language.Und)

// NormalizeTags lower-cases, trims and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = tagCaser.String(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func toView(m models.ModelProfile) ModelProfileView {
	return ModelProfileView{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Tagline:   m.Tagline,
		Tags:      splitTags(m.Tags),
		Bio:       m.Bio,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
	}
}

// uniqueSlug derives a slug from name, suffixing -2, -3, ... on collision.
func (s *ModelService) uniqueSlug(tx *gorm.DB, name string, exceptID uint) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "model"
	}
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&models.ModelProfile{}).
			Where("slug = ? AND id <> ?", candidate, exceptID).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ModelService) List(ctx context.Context) ([]ModelProfileView, error) {
	var profiles []models.ModelProfile
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	views := make([]ModelProfileView, len(profiles))
	for i, p := range profiles {
		views[i] = toView(p)
	}
	return views, nil
}

func (s *ModelService) Create(ctx context.Context, in ModelProfileInput) (*ModelProfileView, error) {
	profile := models.ModelProfile{
		Name:    in.Name,
		Tagline: in.Tagline,
		Tags:    strings.Join(NormalizeTags(in.Tags), ","),
		Bio:     in.Bio,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := s.uniqueSlug(tx, in.Name, 0)
		if err != nil {
			return err
		}
		profile.Slug = slug
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	view := toView(profile)
	return &view, nil
}

func (s *ModelService) find(ctx context.Context, id uint) (*models.ModelProfile, error) {
	var profile models.ModelProfile
	if err := s.DB.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ModelService) Get(ctx context.Context, id uint) (*ModelProfileView, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*profile)
	return &view, nil
}

func (s *ModelService) Detail(ctx context.Context, id uint) (*ModelProfileDetail, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	loras, err := s.Loras(ctx, id)
	if err != nil {
		return nil, err
	}
	gold, err := s.GoldStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ModelProfileDetail{ModelProfileView: toView(*profile), Loras: loras, Gold: *gold}, nil
}

func (s *ModelService) BySlug(ctx context.Context, slug string) (*ModelProfileDetail, error) {
	var profile models.ModelProfile
	if err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return s.Detail(ctx, profile.ID)
}

func (s *ModelService) Update(ctx context.Context, id uint, in ModelProfileUpdate) (*ModelProfileView, error) {
	var updated models.ModelProfile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.ModelProfile
		if err := tx.First(&profile, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModelNotFound
			}
			return err
		}
		if in.Name != nil && *in.Name != profile.Name {
			profile.Name = *in.Name
			slug, err := s.uniqueSlug(tx, profile.Name, profile.ID)
			if err != nil {
				return err
			}
			profile.Slug = slug
		}
		if in.Tagline != nil {
			profile.Tagline = *in.Tagline
		}
		if in.Tags != nil {
			profile.Tags = strings.Join(NormalizeTags(*in.Tags), ",")
		}
		if in.Bio != nil {
			profile.Bio = in.Bio
		}
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := toView(updated)
	return &view, nil
}

func (s *ModelService) SetAvatar(ctx context.Context, id uint, url string) (*ModelProfileView, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = url
	if err := s.DB.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	view := toView(*profile)
	return &view, nil
}

func (s *ModelService) Loras(ctx context.Context, modelID uint) ([]models.LoRAAsset, error) {
	loras := []models.LoRAAsset{}
	err := s.DB.WithContext(ctx).Where("model_id = ?", modelID).Order("id ASC").Find(&loras).Error
	return loras, err
}

func (s *ModelService) CreateLora(ctx context.Context, modelID uint, version, passportMetadata string) (*models.LoRAAsset, error) {
	if _, err := s.find(ctx, modelID); err != nil {
		return nil, err
	}
	lora := models.LoRAAsset{ModelID: modelID, Version: version, PassportMetadata: passportMetadata}
	if err := s.DB.WithContext(ctx).Create(&lora).Error; err != nil {
		return nil, err
	}
	return &lora, nil
}

func (s *ModelService) GoldStatus(ctx context.Context, modelID uint) (*ModelGoldStatus, error) {
	status := &ModelGoldStatus{}

	var drop models.GoldNFTDrop
	err := s.DB.WithContext(ctx).Where("model_id = ?", modelID).Order("id ASC").First(&drop).Error
	switch {
	case err == nil:
		status.Drop = &drop
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var auction models.Auction
	err = s.DB.WithContext(ctx).Where("model_id = ?", modelID).Order("id ASC").First(&auction).Error
	switch {
	case err == nil:
		status.Auction = &auction
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return status, nil
}

func (s *ModelService) CreateDrop(ctx context.Context, modelID uint, drop models.GoldNFTDrop) (*models.GoldNFTDrop, error) {
	if _, err := s.find(ctx, modelID); err != nil {
		return nil, err
	}
	drop.ID = 0
	drop.ModelID = modelID
	if drop.Status == "" {
		drop.Status = "upcoming"
	}
	if err := s.DB.WithContext(ctx).Create(&drop).Error; err != nil {
		return nil, err
	}
	return &drop, nil
}

func (s *ModelService) CreateAuction(ctx context.Context, modelID uint, auction models.Auction) (*models.Auction, error) {
	if _, err := s.find(ctx, modelID); err != nil {
		return nil, err
	}
	auction.ID = 0
	auction.ModelID = modelID
	if err := s.DB.WithContext(ctx).Create(&auction).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

type seedModel struct {
	Name, Tagline, Bio string
	Tags               []string
}

var demoModels = []seedModel{
	{Name: "Aurora", Tagline: "Neon muse for Gen-Z", Tags: []string{"ai", "creator", "fashion"}, Bio: "Synth pop aesthetic with loyal fanbase."},
	{Name: "Nyx", Tagline: "Cyber witch with lore drops", Tags: []string{"ai", "gaming", "lora"}, Bio: "Dark academia meets future spells."},
}

// SeedDemoContent inserts the demo creators with a LoRA, a live drop and an
// auction each. It does nothing when any model profile already exists.
func (s *ModelService) SeedDemoContent(ctx context.Context) ([]ModelProfileView, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.ModelProfile{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return s.List(ctx)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range demoModels {
			bio := m.Bio
			profile := models.ModelProfile{
				Name:    m.Name,
				Slug:    slug.Make(m.Name),
				Tagline: m.Tagline,
				Tags:    strings.Join(m.Tags, ","),
				Bio:     &bio,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.LoRAAsset{ModelID: profile.ID, Version: "v1.0", PassportMetadata: "Initial release"}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.GoldNFTDrop{ModelID: profile.ID, Price: 99.0, Supply: 100, Remaining: 80, Status: "live"}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Auction{ModelID: profile.ID, CurrentBid: 250.0, EndsAt: time.Now().Add(24 * time.Hour)}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed demo content: %w", err)
	}
	log.Printf("🌱 Seeded %d demo model profiles", len(demoModels))
	return s.List(ctx)
}
