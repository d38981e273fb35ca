package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail    = "admin@grapheneosstore.com"
	AdminName     = "GrapheneOS Store Admin"
	SeedBatchSize = 50
)

type SeedServiceImpl struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	publisher   EventPublisher
	config      config.SeedConfig
	newRand     func() *rand.Rand
	// serialises seed and clear runs within this process
	mu sync.Mutex
}

func CreateSeedService(productRepo repository.ProductRepository, userRepo repository.UserRepository, publisher EventPublisher, config *config.Config) SeedService {
	return &SeedServiceImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		config:      config.SeedConfig,
		newRand: func() *rand.Rand {
			now := uint64(time.Now().UnixNano())
			return rand.New(rand.NewPCG(now, now>>1|1))
		},
	}
}

func (s *SeedServiceImpl) SeedCatalog(ctx context.Context) (resp dto.SeedResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return
	}

	products := GenerateCatalog(admin.ID, s.newRand())
	log.Ctx(ctx).Info().Str("component", "SeedCatalog").Int("variants", len(products)).Msg("generated product catalog")

	deleted, err := s.productRepo.DeleteAllProducts(ctx)
	if err != nil {
		return
	}
	log.Ctx(ctx).Info().Str("component", "SeedCatalog").Int64("deleted", deleted).Msg("cleared existing products")

	resp.ByModel = map[string]int{}
	resp.AdminEmail = admin.Email

	for start := 0; start < len(products); start += SeedBatchSize {
		end := min(start+SeedBatchSize, len(products))

		inserted, err := s.productRepo.AddProducts(ctx, products[start:end])
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SeedCatalog").Int("batch", resp.Batches+1).Msg("batch insert failed")
			return resp, err
		}

		resp.Batches++
		resp.ProductsCreated += inserted
		log.Ctx(ctx).Info().Str("component", "SeedCatalog").Int("batch", resp.Batches).Int("inserted", inserted).Msg("")
	}

	for _, product := range products {
		resp.ByModel[product.ModelName]++
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, dto.EventCatalogSeeded, "catalog", resp); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SeedCatalog").Msg("error publishing event")
		}
	}

	return resp, nil
}

func (s *SeedServiceImpl) ensureAdmin(ctx context.Context) (domain.User, error) {
	admin, err := s.userRepo.GetUserByEmail(ctx, AdminEmail)
	if err != nil {
		return admin, err
	}

	if !admin.ID.IsZero() {
		return admin, nil
	}

	if s.config.AdminPasswordDefaulted {
		log.Ctx(ctx).Warn().Str("component", "ensureAdmin").Msg("creating admin with the default password, set ADMIN_PASSWORD")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), PasswordHashCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ensureAdmin").Msg("")
		return admin, errs.ErrInternalServer
	}

	admin = domain.User{
		ExternalID:     ulid.Make().String(),
		Name:           AdminName,
		Email:          AdminEmail,
		HashedPassword: string(hash),
		IsAdmin:        true,
	}

	admin.ID, err = s.userRepo.AddUser(ctx, admin)
	if err != nil {
		return admin, err
	}

	log.Ctx(ctx).Info().Str("component", "ensureAdmin").Str("email", AdminEmail).Msg("admin user created")

	return admin, nil
}

func (s *SeedServiceImpl) ClearCatalog(ctx context.Context) (resp dto.ClearResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp.DeletedCount, err = s.productRepo.DeleteAllProducts(ctx)
	return
}

func (s *SeedServiceImpl) GetSeedStatus(ctx context.Context) (resp dto.SeedStatus, err error) {
	resp.Products.Total, err = s.productRepo.CountProducts(ctx, pkgdto.Filter{})
	if err != nil {
		return
	}

	resp.Products.ByModel, err = s.productRepo.GetModelSummary(ctx)
	if err != nil {
		return
	}

	resp.Products.ByCondition, err = s.productRepo.GetConditionSummary(ctx)
	if err != nil {
		return
	}

	admin, err := s.userRepo.GetUserByEmail(ctx, AdminEmail)
	if err != nil {
		return
	}

	resp.Admin.Exists = !admin.ID.IsZero()
	if resp.Admin.Exists {
		resp.Admin.Email = admin.Email
	}
	resp.HasSeedSecret = s.config.Secret != ""

	return resp, nil
}
