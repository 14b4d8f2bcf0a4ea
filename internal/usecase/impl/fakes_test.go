package impl

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"shopkart/internal/domain/entity"
	"shopkart/internal/domain/repository"
	"shopkart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// fakeUserRepo is an in-memory UserRepository keyed by user id.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmailOrPhone(_ context.Context, email, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email || user.Phone == phone {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshToken = token

	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.RefreshToken = ""
	}

	return nil
}

func (r *fakeUserRepo) UpdateCredentialHash(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.CredentialHash = hash

	return nil
}

// stored returns the live record without cloning, for assertions.
func (r *fakeUserRepo) stored(id uuid.UUID) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[id]
}

// fakeBrandRepo is an in-memory BrandRepository.
type fakeBrandRepo struct {
	mu     sync.Mutex
	brands map[uuid.UUID]*entity.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{brands: make(map[uuid.UUID]*entity.Brand)}
}

func (r *fakeBrandRepo) Create(_ context.Context, brand *entity.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.brands {
		if existing.Name == brand.Name {
			return errors.New("duplicate brand name")
		}
	}

	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	now := time.Now()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	clone := *brand
	r.brands[brand.ID] = &clone

	return nil
}

func (r *fakeBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	brand, ok := r.brands[id]
	if !ok {
		return nil, repository.ErrBrandNotFound
	}

	clone := *brand

	return &clone, nil
}

func (r *fakeBrandRepo) List(_ context.Context) ([]*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Brand, 0, len(r.brands))
	for _, brand := range r.brands {
		clone := *brand
		out = append(out, &clone)
	}

	return out, nil
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	order    []uuid.UUID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	clone := *product
	r.products[product.ID] = &clone
	r.order = append(r.order, product.ID)

	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	clone := *product

	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for i := offset; i < len(r.order) && (limit <= 0 || len(out) < limit); i++ {
		clone := *r.products[r.order[i]]
		out = append(out, &clone)
	}

	return out, nil
}

func (r *fakeProductRepo) UpdateRatingStats(_ context.Context, id uuid.UUID, rating float64, numReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.Rating = rating
	product.NumReviews = numReviews

	return nil
}

// fakeRatingRepo is an in-memory RatingRepository.
type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []*entity.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{}
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	rating.CreatedAt = time.Now()

	clone := *rating
	r.ratings = append(r.ratings, &clone)

	return nil
}

func (r *fakeRatingRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Rating
	for _, rating := range r.ratings {
		if rating.ProductID == productID {
			clone := *rating
			out = append(out, &clone)
		}
	}

	return out, nil
}

// fakeRepoFactory hands out the in-memory repositories.
type fakeRepoFactory struct {
	userRepo    *fakeUserRepo
	brandRepo   *fakeBrandRepo
	productRepo *fakeProductRepo
	ratingRepo  *fakeRatingRepo
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		userRepo:    newFakeUserRepo(),
		brandRepo:   newFakeBrandRepo(),
		productRepo: newFakeProductRepo(),
		ratingRepo:  newFakeRatingRepo(),
	}
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository       { return f.userRepo }
func (f *fakeRepoFactory) BrandRepo() repository.BrandRepository     { return f.brandRepo }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository { return f.productRepo }
func (f *fakeRepoFactory) RatingRepo() repository.RatingRepository   { return f.ratingRepo }

// fakeTxManager runs the unit of work against the shared factory with no
// transactional semantics.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeHasher is a reversible stand-in for the bcrypt hasher.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeCodec issues unique opaque tokens and remembers their claims.
type fakeCodec struct {
	mu      sync.Mutex
	counter int
	refresh map[string]*service.RefreshClaims
	access  map[string]*service.AccessClaims
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{
		refresh: make(map[string]*service.RefreshClaims),
		access:  make(map[string]*service.AccessClaims),
	}
}

func (c *fakeCodec) IssueAccessToken(user *entity.User) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	token := fmt.Sprintf("access-%s-%d", user.ID, c.counter)
	c.access[token] = &service.AccessClaims{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}

	return token, nil
}

func (c *fakeCodec) IssueRefreshToken(user *entity.User) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	token := fmt.Sprintf("refresh-%s-%d", user.ID, c.counter)
	c.refresh[token] = &service.RefreshClaims{
		UserID: user.ID,
		Role:   user.Role,
	}

	return token, nil
}

func (c *fakeCodec) VerifyAccessToken(token string) (*service.AccessClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	claims, ok := c.access[token]
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	return claims, nil
}

func (c *fakeCodec) VerifyRefreshToken(token string) (*service.RefreshClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	claims, ok := c.refresh[token]
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	return claims, nil
}

func (c *fakeCodec) AccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (c *fakeCodec) RefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }

// fakeStorage records uploads and returns deterministic URLs.
type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
	fail    bool
}

func (s *fakeStorage) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(content); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, filename)

	return "https://cdn.example.com/avatars/" + filename, nil
}

func (s *fakeStorage) Delete(_ context.Context, _ string) error { return nil }

// fakeQRService renders a fixed payload.
type fakeQRService struct{}

func (fakeQRService) GenerateProductQRCode(id uuid.UUID) ([]byte, error) {
	return []byte("qr:" + id.String()), nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.CatalogEvent
}

func (p *fakePublisher) PublishCatalogEvent(_ context.Context, event *service.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []*service.CatalogEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.CatalogEvent(nil), p.events...)
}
