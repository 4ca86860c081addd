package services

import (
	"context"
	"testing"

	"antika-pos/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMenuService(t *testing.T) {
	ctx := context.Background()
	svc := NewMenuService(testutil.NewDB(t))

	lomo, err := svc.Create(ctx, DishInput{Name: ptr("Lomo Saltado"), Category: ptr("Fondos"), Price: ptr(28.0),
		Description: ptr("Lomo de res al wok")})
	require.NoError(t, err)
	assert.True(t, lomo.Available)

	_, err = svc.Create(ctx, DishInput{Name: ptr("Chaufa de Pollo"), Category: ptr("Fondos"), Price: ptr(18.0)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, DishInput{Name: ptr("Caldo de Gallina"), Category: ptr("Sopas"), Price: ptr(20.0)})
	require.NoError(t, err)
	hidden, err := svc.Create(ctx, DishInput{Name: ptr("Sopa del día"), Category: ptr("Sopas"), Price: ptr(12.0),
		Available: ptr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.Available)

	_, err = svc.Create(ctx, DishInput{Name: ptr("Free lunch"), Price: ptr(0.0)})
	assert.True(t, IsKind(err, KindValidation))
	_, err = svc.Create(ctx, DishInput{Price: ptr(3.0)})
	assert.True(t, IsKind(err, KindValidation))

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{"Fondos", 2}, {"Sopas", 1}}, cats)

	menu, err := svc.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, menu.Dishes)
	assert.Equal(t, []string{"Fondos", "Sopas"}, menu.Categories)
	assert.Len(t, menu.Menu["Fondos"], 2)

	found, err := svc.Search(ctx, "wok")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lomo Saltado", found[0].Name)
	_, err = svc.Search(ctx, " ")
	assert.True(t, IsKind(err, KindValidation))

	sopas, err := svc.ByCategory(ctx, "Sopas")
	require.NoError(t, err)
	assert.Len(t, sopas, 1)

	updated, err := svc.Update(ctx, hidden.ID, DishInput{Available: ptr(true), Price: ptr(13.5)})
	require.NoError(t, err)
	assert.True(t, updated.Available)
	assert.Equal(t, 13.5, updated.Price)

	require.NoError(t, svc.Delete(ctx, lomo.ID))
	_, err = svc.Get(ctx, lomo.ID)
	assert.True(t, IsKind(err, KindNotFound))
	assert.True(t, IsKind(svc.Delete(ctx, lomo.ID), KindNotFound))
}

func TestMenuService_ToggleAndStats(t *testing.T) {
	ctx := context.Background()
	svc := NewMenuService(testutil.NewDB(t))

	ceviche, err := svc.Create(ctx, DishInput{Name: ptr("Ceviche"), Category: ptr("Entradas"), Price: ptr(32.0)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, DishInput{Name: ptr("Causa Limeña"), Category: ptr("Entradas"), Price: ptr(15.0)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, DishInput{Name: ptr("Chicha Morada"), Category: ptr("Bebidas"), Price: ptr(8.0)})
	require.NoError(t, err)

	toggled, err := svc.ToggleAvailability(ctx, ceviche.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Available)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, MenuStats{Total: 3, Available: 2, Unavailable: 1, Categories: 2}, *stats)

	toggled, err = svc.ToggleAvailability(ctx, ceviche.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Available)

	_, err = svc.ToggleAvailability(ctx, 999)
	assert.True(t, IsKind(err, KindNotFound))
}
