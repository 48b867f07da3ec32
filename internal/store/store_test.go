package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
	"github.com/01moynul/storefront-golang/internal/testutil"
)

func newStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	return New(testutil.NewDB(t)), context.Background()
}

func seedCategory(t *testing.T, s *Store, slug string) int64 {
	t.Helper()
	id, err := s.CreateCategory(context.Background(), &models.Category{Name: slug, Slug: slug})
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetProduct(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")

	p := &models.Product{
		Name: "Pixel 9", Slug: "pixel-9", Price: 999, CategoryID: catID,
		Images: []models.ProductImage{
			{ImageURL: "/uploads/a.jpg"},
			{ImageURL: "/uploads/b.jpg", IsPrimary: true},
		},
		Variants: []models.ProductVariant{
			{Color: "black", Storage: "128GB", SKU: strPtr("PX9-B-128"), Price: 999, Stock: 3},
		},
	}
	id, err := s.CreateProduct(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	got, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pixel 9", got.Name)
	assert.Nil(t, got.ComparePrice)
	require.Len(t, got.Images, 2)
	assert.True(t, got.Images[1].IsPrimary)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, 3, got.Variants[0].Stock)

	list, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PrimaryImage)
	assert.Equal(t, "/uploads/b.jpg", *list[0].PrimaryImage)
}

func TestCreateProductRejectsMissingCategory(t *testing.T) {
	s, ctx := newStore(t)

	_, err := s.CreateProduct(ctx, &models.Product{Name: "Orphan", Slug: "orphan", CategoryID: 42})
	require.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, 0, testutil.Count(t, s.DB(), "products"))
}

func TestListProductsFilters(t *testing.T) {
	s, ctx := newStore(t)
	phones := seedCategory(t, s, "phones")
	laptops := seedCategory(t, s, "laptops")
	for _, p := range []models.Product{
		{Name: "Pixel 9", Slug: "pixel-9", CategoryID: phones},
		{Name: "iPhone 16", Slug: "iphone-16", CategoryID: phones},
		{Name: "ThinkPad X1", Slug: "thinkpad-x1", CategoryID: laptops},
	} {
		_, err := s.CreateProduct(ctx, &p)
		require.NoError(t, err)
	}

	byCat, err := s.ListProducts(ctx, ProductFilter{CategorySlug: "phones"})
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	bySearch, err := s.ListProducts(ctx, ProductFilter{Search: "think"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "thinkpad-x1", bySearch[0].Slug)

	none, err := s.ListProducts(ctx, ProductFilter{CategorySlug: "tablets"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListProductsSearchIsLiteral(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "cases")
	for _, p := range []models.Product{
		{Name: "100% Recycled Case", Slug: "recycled-case", CategoryID: catID},
		{Name: "Clear Case", Slug: "clear-case", CategoryID: catID},
		{Name: "Wow! Case", Slug: "wow-case", CategoryID: catID},
	} {
		_, err := s.CreateProduct(ctx, &p)
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"recycled-case"}},
		{"_", nil},
		{"!", []string{"wow-case"}},
		{"case", []string{"recycled-case", "clear-case", "wow-case"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := s.ListProducts(ctx, ProductFilter{Search: tt.search})
			require.NoError(t, err)
			var slugs []string
			for _, p := range got {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

func TestUpdateProductPatch(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	id, err := s.CreateProduct(ctx, &models.Product{
		Name: "Pixel", Slug: "pixel", Price: 500, ComparePrice: func() *float64 { v := 600.0; return &v }(),
		CategoryID: catID, Description: strPtr("old"),
	})
	require.NoError(t, err)

	err = s.UpdateProduct(ctx, id, models.ProductPatch{
		Price:        patch.Of(450.0),
		ComparePrice: patch.Null[float64](),
	})
	require.NoError(t, err)

	got, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.Price)
	assert.Nil(t, got.ComparePrice)
	assert.Equal(t, "Pixel", got.Name, "absent fields are left unchanged")
	require.NotNil(t, got.Description)
	assert.Equal(t, "old", *got.Description)

	assert.ErrorIs(t, s.UpdateProduct(ctx, id, models.ProductPatch{}), ErrNoChanges)
	assert.ErrorIs(t, s.UpdateProduct(ctx, id+100, models.ProductPatch{Name: patch.Of("x")}), ErrNotFound)
	assert.ErrorIs(t, s.UpdateProduct(ctx, id, models.ProductPatch{CategoryID: patch.Of(int64(999))}), ErrInvalidReference)
}

func TestBulkDeleteProductsRemovesDependents(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")

	var ids []int64
	for _, slug := range []string{"a", "b", "c"} {
		id, err := s.CreateProduct(ctx, &models.Product{
			Name: slug, Slug: slug, CategoryID: catID,
			Images:   []models.ProductImage{{ImageURL: "/uploads/" + slug + ".png", IsPrimary: true}},
			Variants: []models.ProductVariant{{Color: "red", Stock: 1}},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	n, err := s.BulkDeleteProducts(ctx, []int64{ids[0], ids[2], 9999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	db := s.DB()
	assert.Equal(t, 1, testutil.Count(t, db, "products"))
	assert.Equal(t, 1, testutil.Count(t, db, "product_images"))
	assert.Equal(t, 1, testutil.Count(t, db, "product_variants"))

	n, err = s.BulkDeleteProducts(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteProductNotFound(t *testing.T) {
	s, ctx := newStore(t)
	assert.ErrorIs(t, s.DeleteProduct(ctx, 1), ErrNotFound)
}

func TestSetPrimaryImage(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	id, err := s.CreateProduct(ctx, &models.Product{
		Name: "p", Slug: "p", CategoryID: catID,
		Images: []models.ProductImage{{ImageURL: "1", IsPrimary: true}, {ImageURL: "2"}, {ImageURL: "3"}},
	})
	require.NoError(t, err)
	got, err := s.GetProduct(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.SetPrimaryImage(ctx, id, got.Images[2].ID))

	got, err = s.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Images[0].IsPrimary)
	assert.False(t, got.Images[1].IsPrimary)
	assert.True(t, got.Images[2].IsPrimary)

	assert.ErrorIs(t, s.SetPrimaryImage(ctx, id, 999), ErrNotFound)
}

func TestEnsureProductIsIdempotent(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	p := models.Product{Name: "Pixel", Slug: "pixel", CategoryID: catID}

	first := p
	id1, created, err := s.EnsureProduct(ctx, &first)
	require.NoError(t, err)
	assert.True(t, created)

	second := p
	id2, created, err := s.EnsureProduct(ctx, &second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, testutil.Count(t, s.DB(), "products"))
}

func TestDeleteCategoryInUse(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	_, err := s.CreateProduct(ctx, &models.Product{Name: "p", Slug: "p", CategoryID: catID})
	require.NoError(t, err)

	err = s.DeleteCategory(ctx, catID)
	assert.ErrorIs(t, err, ErrConflict)

	empty := seedCategory(t, s, "empty")
	require.NoError(t, s.DeleteCategory(ctx, empty))
	assert.ErrorIs(t, s.DeleteCategory(ctx, empty), ErrNotFound)
}

func TestCategoryCRUD(t *testing.T) {
	s, ctx := newStore(t)
	id := seedCategory(t, s, "phones")

	require.NoError(t, s.UpdateCategory(ctx, id, models.CategoryPatch{Name: patch.Of("Mobile Phones")}))
	got, err := s.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mobile Phones", got.Name)
	assert.Equal(t, "phones", got.Slug)

	_, err = s.GetCategory(ctx, id+1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateCategory(ctx, &models.Category{Name: "dup", Slug: "phones"})
	require.Error(t, err)

	list, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBrandCRUD(t *testing.T) {
	s, ctx := newStore(t)

	id, err := s.CreateBrand(ctx, &models.Brand{Name: "Apple", Slug: "apple", IsPopular: true, IsActive: true, SortOrder: 1})
	require.NoError(t, err)
	_, err = s.CreateBrand(ctx, &models.Brand{Name: "Nokia", Slug: "nokia", IsActive: false})
	require.NoError(t, err)

	all, err := s.ListBrands(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := s.ListBrands(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "apple", active[0].Slug)

	require.NoError(t, s.UpdateBrand(ctx, id, models.BrandPatch{Logo: patch.Of("/uploads/apple.svg"), SortOrder: patch.Of(5)}))
	got, err := s.GetBrand(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Logo)
	assert.Equal(t, "/uploads/apple.svg", *got.Logo)
	assert.Equal(t, 5, got.SortOrder)
	assert.True(t, got.IsPopular)

	// same values again still counts as a match
	require.NoError(t, s.UpdateBrand(ctx, id, models.BrandPatch{SortOrder: patch.Of(5)}))

	require.NoError(t, s.DeleteBrand(ctx, id))
	assert.ErrorIs(t, s.DeleteBrand(ctx, id), ErrNotFound)
	_, err = s.GetBrand(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureBrandSkipsExistingSlug(t *testing.T) {
	s, ctx := newStore(t)
	_, err := s.CreateBrand(ctx, &models.Brand{Name: "Apple Inc", Slug: "apple", IsActive: true})
	require.NoError(t, err)

	_, created, err := s.EnsureBrand(ctx, &models.Brand{Name: "Apple", Slug: "apple"})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.ListBrands(ctx, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Apple Inc", got[0].Name, "existing row is not overwritten")
}

func TestAdmins(t *testing.T) {
	s, ctx := newStore(t)

	a := &models.Admin{Name: "Root", Email: " Root@Example.com ", PasswordHash: "$2a$hash"}
	id, err := s.CreateAdmin(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, a.Role)

	got, err := s.GetAdminByEmail(ctx, "root@example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "root@example.com", got.Email)
	assert.Equal(t, "$2a$hash", got.PasswordHash)

	_, err = s.GetAdminByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateAdmin(ctx, &models.Admin{Name: "Again", Email: "root@example.com", PasswordHash: "x"})
	require.Error(t, err)

	list, err := s.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestShippingZonesOrdering(t *testing.T) {
	s, ctx := newStore(t)
	for _, z := range []models.ShippingZone{
		{Name: "Regional", SortOrder: 2, IsActive: true},
		{Name: "Metro", SortOrder: 1, IsActive: true},
		{Name: "Disabled", SortOrder: 0, IsActive: false},
	} {
		_, err := s.CreateZone(ctx, &z)
		require.NoError(t, err)
	}

	all, err := s.ListZones(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Disabled", "Metro", "Regional"}, []string{all[0].Name, all[1].Name, all[2].Name})

	active, err := s.ListActiveZones(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Metro", active[0].Name)
}

func TestShippingZoneUpdateAndDelete(t *testing.T) {
	s, ctx := newStore(t)
	threshold := 100.0
	id, err := s.CreateZone(ctx, &models.ShippingZone{Name: "Metro", FlatRate: 9.5, FreeShippingThreshold: &threshold, IsActive: true})
	require.NoError(t, err)

	require.NoError(t, s.UpdateZone(ctx, id, models.ShippingZonePatch{
		FreeShippingThreshold: patch.Null[float64](),
		Postcodes:             patch.Of("2000-2999"),
	}))
	got, err := s.GetZone(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.FreeShippingThreshold)
	require.NotNil(t, got.Postcodes)
	assert.Equal(t, "2000-2999", *got.Postcodes)
	assert.Equal(t, 9.5, got.FlatRate)

	assert.ErrorIs(t, s.UpdateZone(ctx, id, models.ShippingZonePatch{}), ErrNoChanges)
	require.NoError(t, s.DeleteZone(ctx, id))
	assert.ErrorIs(t, s.DeleteZone(ctx, id), ErrNotFound)
}

func flatShipping(cost float64) ShippingFunc {
	return func(float64) (float64, error) { return cost, nil }
}

func TestPlaceOrderPricesAndReservesStock(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	pid, err := s.CreateProduct(ctx, &models.Product{
		Name: "Pixel", Slug: "pixel", Price: 100, CategoryID: catID,
		Variants: []models.ProductVariant{{Color: "black", Price: 120.5, Stock: 3}},
	})
	require.NoError(t, err)
	plain, err := s.CreateProduct(ctx, &models.Product{Name: "Case", Slug: "case", Price: 19.99, CategoryID: catID})
	require.NoError(t, err)
	got, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	vid := got.Variants[0].ID

	var seenSubtotal float64
	order, err := s.PlaceOrder(ctx, NewOrder{
		CustomerName: "Ada", CustomerEmail: "ada@example.com", ShippingAddress: "1 Loop St", Postcode: "2000",
		Lines: []OrderLine{
			{ProductID: pid, VariantID: &vid, Quantity: 2},
			{ProductID: plain, Quantity: 1},
		},
	}, func(sub float64) (float64, error) {
		seenSubtotal = sub
		return 10, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 260.99, seenSubtotal)
	assert.Equal(t, 260.99, order.Subtotal)
	assert.Equal(t, 270.99, order.Total)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, order.OrderNumber)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 120.5, order.Items[0].UnitPrice)

	after, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Variants[0].Stock)

	loaded, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
	assert.Nil(t, loaded.TrackingNumber)
}

func TestPlaceOrderRejectsOversell(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	pid, err := s.CreateProduct(ctx, &models.Product{
		Name: "Pixel", Slug: "pixel", Price: 100, CategoryID: catID,
		Variants: []models.ProductVariant{{Color: "black", Price: 100, Stock: 1}},
	})
	require.NoError(t, err)
	got, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	vid := got.Variants[0].ID

	_, err = s.PlaceOrder(ctx, NewOrder{
		CustomerName: "Ada", CustomerEmail: "ada@example.com", ShippingAddress: "x", Postcode: "2000",
		Lines: []OrderLine{{ProductID: pid, VariantID: &vid, Quantity: 2}},
	}, flatShipping(0))
	require.ErrorIs(t, err, ErrInsufficientStock)

	after, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Variants[0].Stock, "stock is untouched after a rejected order")
	assert.Equal(t, 0, testutil.Count(t, s.DB(), "orders"))
}

func TestPlaceOrderRollsBackOnShippingError(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	pid, err := s.CreateProduct(ctx, &models.Product{
		Name: "Pixel", Slug: "pixel", Price: 100, CategoryID: catID,
		Variants: []models.ProductVariant{{Color: "black", Price: 100, Stock: 5}},
	})
	require.NoError(t, err)
	got, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	vid := got.Variants[0].ID

	boom := errors.New("no zone")
	_, err = s.PlaceOrder(ctx, NewOrder{
		Lines: []OrderLine{{ProductID: pid, VariantID: &vid, Quantity: 2}},
	}, func(float64) (float64, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	after, err := s.GetProduct(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Variants[0].Stock)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	s, ctx := newStore(t)
	_, err := s.PlaceOrder(ctx, NewOrder{Lines: []OrderLine{{ProductID: 7, Quantity: 1}}}, flatShipping(0))
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = s.PlaceOrder(ctx, NewOrder{}, flatShipping(0))
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestOrdersListAndUpdate(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	pid, err := s.CreateProduct(ctx, &models.Product{Name: "Case", Slug: "case", Price: 10, CategoryID: catID})
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 2; i++ {
		o, err := s.PlaceOrder(ctx, NewOrder{
			CustomerName: "Ada", CustomerEmail: "ada@example.com", ShippingAddress: "x", Postcode: "2000",
			Lines: []OrderLine{{ProductID: pid, Quantity: 1}},
		}, flatShipping(5))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	require.NoError(t, s.UpdateOrder(ctx, ids[0], models.OrderPatch{
		Status:           patch.Of(models.OrderShipped),
		TrackingNumber:   patch.Of("TRK123"),
		ShippingProvider: patch.Of("AusPost"),
	}))

	shipped, err := s.ListOrders(ctx, models.OrderShipped)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	require.NotNil(t, shipped[0].TrackingNumber)
	assert.Equal(t, "TRK123", *shipped[0].TrackingNumber)

	all, err := s.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids[1], all[0].ID, "newest first")

	require.NoError(t, s.UpdateOrder(ctx, ids[0], models.OrderPatch{TrackingNumber: patch.Null[string]()}))
	o, err := s.GetOrder(ctx, ids[0])
	require.NoError(t, err)
	assert.Nil(t, o.TrackingNumber)

	assert.ErrorIs(t, s.UpdateOrder(ctx, 999, models.OrderPatch{Status: patch.Of(models.OrderCancelled)}), ErrNotFound)
}

func TestStats(t *testing.T) {
	s, ctx := newStore(t)
	catID := seedCategory(t, s, "phones")
	_, err := s.CreateProduct(ctx, &models.Product{Name: "Case", Slug: "case", Price: 10, CategoryID: catID})
	require.NoError(t, err)
	_, err = s.CreateBrand(ctx, &models.Brand{Name: "Apple", Slug: "apple"})
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Products: 1, Categories: 1, Brands: 1}, st)
}
