package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "description", "price", "category_id", "image_url", "is_active", "created_at", "cat_id", "cat_name", "quantity"}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	t.Run("List applies filters, search and default order", func(t *testing.T) {
		categoryID := uuid.New()
		productID := uuid.New()
		active := true
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.category_id = $1 AND p.is_active = $2 AND (p.name ILIKE $3 OR p.description ILIKE $4) ORDER BY p.created_at DESC`)).
			WithArgs(categoryID, true, "%mug%", "%mug%").
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(productID.String(), "Mug", "Ceramic mug", "12.50", categoryID.String(), "https://img/mug.png", true, now, categoryID.String(), "Kitchen", 7))

		products, err := repo.List(ctx, models.ProductListParams{CategoryID: &categoryID, IsActive: &active, Search: "mug"})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, productID, products[0].ID)
		assert.True(t, decimal.RequireFromString("12.50").Equal(products[0].Price))
		require.NotNil(t, products[0].Category)
		assert.Equal(t, "Kitchen", products[0].Category.Name)
		require.NotNil(t, products[0].Inventory)
		assert.Equal(t, 7, products[0].Inventory.Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("List without category or inventory", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.price ASC`)).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(uuid.NewString(), "Loose", "", "1.00", nil, "", false, time.Now(), nil, nil, nil))

		products, err := repo.List(ctx, models.ProductListParams{SortBy: "price"})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Nil(t, products[0].CategoryID)
		assert.Nil(t, products[0].Category)
		assert.Nil(t, products[0].Inventory)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productColumns))

		product, err := repo.GetByID(ctx, id)

		assert.Nil(t, product)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create with quantity inserts inventory row", func(t *testing.T) {
		newID := uuid.New()
		qty := 25
		product := &models.Product{Name: "Lamp", Price: decimal.RequireFromString("40.00"), IsActive: true}

		mock.ExpectQuery(`INSERT INTO products`).
			WithArgs("Lamp", "", sqlmock.AnyArg(), nil, "", true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(newID.String(), time.Now()))
		mock.ExpectExec(`INSERT INTO inventory`).
			WithArgs(newID, 25).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, product, &qty)

		require.NoError(t, err)
		assert.Equal(t, newID, product.ID)
		require.NotNil(t, product.Inventory)
		assert.Equal(t, 25, product.Inventory.Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create without quantity skips inventory", func(t *testing.T) {
		product := &models.Product{Name: "Poster", Price: decimal.NewFromInt(5)}

		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

		require.NoError(t, repo.Create(ctx, product, nil))
		assert.Nil(t, product.Inventory)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update with quantity upserts inventory", func(t *testing.T) {
		id := uuid.New()
		qty := 3
		product := &models.Product{ID: id, Name: "Lamp", Price: decimal.NewFromInt(45), IsActive: true}

		mock.ExpectQuery(`UPDATE products`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (product_id) DO UPDATE`)).
			WithArgs(id, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, product, &qty))
		assert.Equal(t, 3, product.Inventory.Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete surfaces backend error", func(t *testing.T) {
		id := uuid.New()
		dbErr := errors.New("permission denied for table products")

		mock.ExpectExec(`DELETE FROM products`).WithArgs(id).WillReturnError(dbErr)

		err := repo.Delete(ctx, id)

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, dbErr.Error(), err.Error())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
