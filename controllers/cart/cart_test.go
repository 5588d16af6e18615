package cartControllers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/database"
	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cart.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Name:     "Awa",
		Surname:  "Kone",
		Contact:  "0700000001",
		Email:    "awa@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Description: "eau de parfum", Price: price, Quantity: 5}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddItemMergesQuantities(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)

	require.NoError(t, AddItem(db, user.ID, p.ID, 2))
	require.NoError(t, AddItem(db, user.ID, p.ID, 3))

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	err := AddItem(db, user.ID, 404, 1)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCartIsLazilyCreated(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, AddItem(db, user.ID, p.ID, 1))
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetItemsProjectsLiveProducts(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)
	require.NoError(t, AddItem(db, user.ID, p.ID, 2))

	items, err := GetItems(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Oud Royal", items[0].Name)
	assert.Equal(t, float64(1000), items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestGetItemsWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	items, err := GetItems(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetItemQuantityZeroDeletesLine(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)
	require.NoError(t, AddItem(db, user.ID, p.ID, 2))

	require.NoError(t, SetItemQuantity(db, user.ID, p.ID, 0))

	items, err := GetItems(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetItemQuantityOverwrites(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)
	require.NoError(t, AddItem(db, user.ID, p.ID, 2))

	require.NoError(t, SetItemQuantity(db, user.ID, p.ID, 7))

	items, err := GetItems(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSyncItemsMergesAndSkipsMissingIDs(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p1 := seedProduct(t, db, "Oud Royal", 1000)
	p2 := seedProduct(t, db, "Fleur Blanche", 500)
	require.NoError(t, AddItem(db, user.ID, p1.ID, 1))

	err := SyncItems(db, user.ID, []SyncCartLine{
		{ProductID: p1.ID, Quantity: 2}, // merges to 3
		{ProductID: p2.ID, Quantity: 1}, // new line
		{Quantity: 5},                   // no product id, skipped
	})
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Order("product_id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "Oud Royal", 1000)
	require.NoError(t, AddItem(db, user.ID, p.ID, 1))

	require.NoError(t, RemoveItem(db, user.ID, p.ID))
	err := RemoveItem(db, user.ID, p.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
