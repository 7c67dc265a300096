package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-rapido/internal/application/inventory"
)

func TestDialog_Transiciones(t *testing.T) {
	d := inventory.NewViewState().Dialog
	assert.Equal(t, inventory.DialogHidden, d.State)

	d = d.Open("7", 3)
	assert.True(t, d.IsOpen())
	assert.Equal(t, "7", d.ProductID)
	assert.Equal(t, "3", d.NewStock)

	d = d.Cancel()
	assert.False(t, d.IsOpen())

	d = d.Open("8", 0).Close()
	assert.Equal(t, inventory.DialogHidden, d.State)
}

func TestRender_ConservaDialogoYError(t *testing.T) {
	state := inventory.NewViewState()
	state.Dialog = state.Dialog.Open("2", 0)
	state.Error = "algo falló"

	vm := inventory.Render(snapshotOf(sampleProducts()), state, inventory.RenderOptions{})

	assert.Equal(t, state.Dialog, vm.Dialog)
	assert.Equal(t, "algo falló", vm.Error)
}

func TestRender_DialogoSinEstadoSeMuestraOculto(t *testing.T) {
	vm := inventory.Render(inventory.Snapshot{}, inventory.ViewState{}, inventory.RenderOptions{})

	assert.Equal(t, inventory.DialogHidden, vm.Dialog.State)
	assert.Empty(t, vm.Rows)
	assert.Len(t, vm.CategoryOptions, 1)
}
