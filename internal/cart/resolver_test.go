package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopora_back_end/internal/models"
)

func TestResolveByLineID(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(testProduct(1, "Clavier", 100))
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", 1, 1)
	require.NoError(t, err)

	views, err := store.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, views[0].LineID)

	updated, err := store.UpdateQuantity(ctx, "u1", views[0].LineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated[0].Quantity)
}

func TestResolveByCatalogID(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(testProduct(42, "Souris", 25))
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", 42, 1)
	require.NoError(t, err)

	updated, err := store.UpdateQuantity(ctx, "u1", "42", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated[0].Quantity)
}

func TestResolveByInternalProductID(t *testing.T) {
	t.Parallel()

	product := testProduct(7, "Écran", 300)
	store, _, _ := newTestStore(product)
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", 7, 1)
	require.NoError(t, err)

	updated, err := store.UpdateQuantity(ctx, "u1", product.ID.Hex(), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, updated[0].Quantity)
}

// L'ordre des stratégies est un arbitrage : un identifiant qui matche à
// la fois une ligne et un id catalogue désigne la ligne.
func TestResolutionOrderPrefersLineID(t *testing.T) {
	t.Parallel()

	keyboard := testProduct(42, "Clavier", 100)
	mouse := testProduct(7, "Souris", 25)
	store, repo, _ := newTestStore(keyboard, mouse)
	ctx := context.Background()

	// Panier artisanal : la ligne de la souris porte l'id de ligne "42",
	// qui est aussi l'id catalogue du clavier.
	repo.carts["u1"] = &models.Cart{
		UserID:  "u1",
		Version: 1,
		Items: []models.CartLine{
			{LineID: "ligne-clavier", Product: keyboard.ID, Quantity: 1},
			{LineID: "42", Product: mouse.ID, Quantity: 1},
		},
	}

	views, err := store.UpdateQuantity(ctx, "u1", "42", 5)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].Quantity, "la ligne clavier ne bouge pas")
	assert.Equal(t, 5, views[1].Quantity, "c'est la ligne 42 (souris) qui est visée")
}

func TestResolveUnknownTarget(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(testProduct(1, "Clavier", 100))
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", 1, 1)
	require.NoError(t, err)

	_, err = store.RemoveItem(ctx, "u1", "nimporte-quoi")
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestUpdateZeroEquivalentToRemove(t *testing.T) {
	t.Parallel()

	setup := func() *Store {
		store, _, _ := newTestStore(testProduct(1, "Clavier", 100))
		_, err := store.AddItem(context.Background(), "u1", 1, 2)
		require.NoError(t, err)
		return store
	}
	ctx := context.Background()

	byUpdate := setup()
	_, err := byUpdate.UpdateQuantity(ctx, "u1", "1", 0)
	require.NoError(t, err)

	byRemove := setup()
	_, err = byRemove.RemoveItem(ctx, "u1", "1")
	require.NoError(t, err)

	va, err := byUpdate.GetCart(ctx, "u1")
	require.NoError(t, err)
	vb, err := byRemove.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, va, vb, "quantité 0 ≡ suppression")
}
