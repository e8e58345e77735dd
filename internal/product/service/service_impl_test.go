package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/config"
	merchantdomain "github.com/smallbiznis/storefront/internal/merchant/domain"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/product/repository"
	"github.com/smallbiznis/storefront/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubGateway struct {
	mu       sync.Mutex
	stored   int
	storeErr error
}

func (g *stubGateway) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.storeErr != nil {
		return "", g.storeErr
	}
	g.stored++
	return fmt.Sprintf("uploads/test-%d.png", g.stored), nil
}

func (g *stubGateway) URLFor(ctx context.Context, key string, opts storage.URLOptions) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://signed.example/" + key, nil
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *stubGateway, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&merchantdomain.Merchant{}, &domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	gateway := &stubGateway{}
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		Gateway: gateway,
		Policy:  config.StaticUploadPolicyHolder(config.DefaultUploadPolicy()),
	})
	return svc, db, gateway, node
}

func seedMerchant(t *testing.T, db *gorm.DB, node *snowflake.Node, name, slug string) snowflake.ID {
	t.Helper()
	merchant := merchantdomain.Merchant{
		ID:   node.Generate(),
		Name: name,
		Slug: slug,
	}
	if err := db.Create(&merchant).Error; err != nil {
		t.Fatalf("seed merchant: %v", err)
	}
	return merchant.ID
}

func validCreate(merchantID snowflake.ID) domain.CreateRequest {
	return domain.CreateRequest{
		MerchantID:  merchantID.String(),
		Name:        "Blue Mug",
		Description: "a ceramic mug",
		URL:         "https://example.com/blue-mug",
		PriceCents:  1500,
	}
}

func TestCreateProduct(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	resp, err := svc.Create(context.Background(), validCreate(merchantID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Slug != "blue-mug" {
		t.Fatalf("slug = %q, want %q", resp.Slug, "blue-mug")
	}
	if resp.MerchantID != merchantID.String() {
		t.Fatalf("merchant id = %s, want %s", resp.MerchantID, merchantID)
	}
}

func TestCreateSlugScopedPerMerchant(t *testing.T) {
	svc, db, _, node := newTestService(t)
	first := seedMerchant(t, db, node, "Acme Shop", "acme-shop")
	second := seedMerchant(t, db, node, "Blue Mug Co", "blue-mug-co")

	a, err := svc.Create(context.Background(), validCreate(first))
	if err != nil {
		t.Fatalf("create under first merchant: %v", err)
	}

	// Same name under a different merchant keeps the unsuffixed slug.
	b, err := svc.Create(context.Background(), validCreate(second))
	if err != nil {
		t.Fatalf("create under second merchant: %v", err)
	}
	if a.Slug != "blue-mug" || b.Slug != "blue-mug" {
		t.Fatalf("slugs = %q, %q, want both %q", a.Slug, b.Slug, "blue-mug")
	}

	// Same name under the same merchant gets a suffix.
	c, err := svc.Create(context.Background(), validCreate(first))
	if err != nil {
		t.Fatalf("create duplicate under first merchant: %v", err)
	}
	want := regexp.MustCompile(`^blue-mug-[a-z0-9]{4}$`)
	if !want.MatchString(c.Slug) {
		t.Fatalf("slug = %q, want match %s", c.Slug, want)
	}
}

func TestCreateRejectsUnknownMerchant(t *testing.T) {
	svc, _, _, node := newTestService(t)

	_, err := svc.Create(context.Background(), validCreate(node.Generate()))
	if !errors.Is(err, domain.ErrInvalidMerchant) {
		t.Fatalf("err = %v, want ErrInvalidMerchant", err)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	req := validCreate(merchantID)
	req.PriceCents = -5
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}

	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("product rows = %d, want 0", count)
	}
}

func TestCreateRejectsBadURL(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		req := validCreate(merchantID)
		req.URL = bad
		if _, err := svc.Create(context.Background(), req); !errors.Is(err, domain.ErrInvalidURL) {
			t.Fatalf("url %q: err = %v, want ErrInvalidURL", bad, err)
		}
	}
}

func TestCreateStoreFailureLeavesNoRow(t *testing.T) {
	svc, db, gateway, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")
	gateway.storeErr = storage.ErrUnavailable

	req := validCreate(merchantID)
	req.Image = &domain.Upload{Data: []byte("png bytes"), ContentType: "image/png"}
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("product rows = %d, want 0", count)
	}
}

func TestUpdateRejectsNegativePriceBeforeWrite(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	created, err := svc.Create(context.Background(), validCreate(merchantID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := int64(-5)
	name := "Renamed Mug"
	_, err = svc.Update(context.Background(), domain.UpdateRequest{
		ID:         created.ID,
		Name:       &name,
		PriceCents: &bad,
	})
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}

	var current domain.Product
	if err := db.First(&current, "slug = ?", created.Slug).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if current.Name != "Blue Mug" {
		t.Fatalf("name = %q, partial update leaked", current.Name)
	}
}

func TestUpdateNameChangeRegeneratesSlugWithinMerchant(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	created, err := svc.Create(context.Background(), validCreate(merchantID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Red Mug"
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{ID: created.ID, Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "red-mug" {
		t.Fatalf("slug = %q, want %q", updated.Slug, "red-mug")
	}
}

func TestUpdateWithoutNameKeepsSlug(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	created, err := svc.Create(context.Background(), validCreate(merchantID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	price := int64(2000)
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{ID: created.ID, PriceCents: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != created.Slug {
		t.Fatalf("slug changed %q -> %q", created.Slug, updated.Slug)
	}
	if updated.PriceCents != 2000 {
		t.Fatalf("price = %d, want 2000", updated.PriceCents)
	}
}

func TestGetByIDIncludesMerchantSummary(t *testing.T) {
	svc, db, _, node := newTestService(t)
	merchantID := seedMerchant(t, db, node, "Acme Shop", "acme-shop")

	created, err := svc.Create(context.Background(), validCreate(merchantID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Merchant == nil {
		t.Fatalf("merchant summary missing")
	}
	if got.Merchant.Name != "Acme Shop" || got.Merchant.Slug != "acme-shop" {
		t.Fatalf("merchant summary = %+v", got.Merchant)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc, _, _, node := newTestService(t)

	if _, err := svc.GetByID(context.Background(), node.Generate().String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListFiltersByMerchant(t *testing.T) {
	svc, db, _, node := newTestService(t)
	first := seedMerchant(t, db, node, "Acme Shop", "acme-shop")
	second := seedMerchant(t, db, node, "Blue Mug Co", "blue-mug-co")

	if _, err := svc.Create(context.Background(), validCreate(first)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreate(second)); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.List(context.Background(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}

	scoped, err := svc.List(context.Background(), domain.ListRequest{MerchantID: first.String()})
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("scoped = %d, want 1", len(scoped))
	}
	if scoped[0].MerchantID != first.String() {
		t.Fatalf("merchant id = %s, want %s", scoped[0].MerchantID, first)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	svc, _, _, node := newTestService(t)

	if err := svc.Delete(context.Background(), node.Generate().String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
