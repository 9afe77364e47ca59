package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// prepara una orden de 30 confirmada con 20: mismatch con remanente 10.
func seedMismatch(t *testing.T) (*env, *entity.Location, *entity.Location, *entity.Item, *string, *entity.Transfer) {
	t.Helper()
	e, source, dest, item, lot := seedStandard(t)
	tr := createLocationTransfer(t, e, source, dest, item, lot, 30)
	out, err := e.uc.Confirm(context.Background(), tr.ID, 20, testActor)
	require.NoError(t, err)
	require.Equal(t, entity.TransferStatusMismatch, out.Status)
	return e, source, dest, item, lot, out
}

func TestResolve_ReturnSourceDevuelveElRemanente(t *testing.T) {
	e, source, _, item, lot, tr := seedMismatch(t)

	out, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionReturnToSource,
		Actor:  testActor,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusResolved, out.Status)
	require.NotNil(t, out.ResolvedAt)
	assert.Equal(t, int64(80), e.qty(t, source.ID, item, lot))
	assert.Equal(t, int64(0), e.qty(t, e.transit.ID, item, lot))
}

func TestResolve_DiscardSacaElRemanenteDelSistema(t *testing.T) {
	e, source, dest, item, lot, tr := seedMismatch(t)

	out, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionDiscard,
		Notes:  "unidades dañadas en el transporte",
		Actor:  testActor,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusResolved, out.Status)
	assert.Equal(t, int64(70), e.qty(t, source.ID, item, lot))
	assert.Equal(t, int64(20), e.qty(t, dest.ID, item, lot))
	assert.Equal(t, int64(0), e.qty(t, e.transit.ID, item, lot))
}

func TestResolve_CreditDestinationAcreditaElRemanente(t *testing.T) {
	e, _, dest, item, lot, tr := seedMismatch(t)

	_, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionCreditDestination,
		Actor:  testActor,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30), e.qty(t, dest.ID, item, lot))
	assert.Equal(t, int64(0), e.qty(t, e.transit.ID, item, lot))
}

func TestResolve_CreditDestinationSoloParaOrdenesEntreAlmacenes(t *testing.T) {
	e := newEnv(t)
	source := e.addLocation(t, "Almacén", "ALM-01")
	recipient := e.addRecipient(t, "Hospital Municipal")
	item := e.addItem(t, "Jeringas", false)
	e.seedStock(t, source, item, nil, 50)

	tr, err := e.uc.Create(context.Background(), ledger.CreateTransferInput{
		Kind:             entity.TransferKindRecipient,
		SourceLocationID: source.ID,
		RecipientID:      &recipient.ID,
		ItemID:           item.ID,
		Quantity:         30,
		Actor:            testActor,
	})
	require.NoError(t, err)
	_, err = e.uc.Confirm(context.Background(), tr.ID, 25, testActor)
	require.NoError(t, err)

	_, err = e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionCreditDestination,
		Actor:  testActor,
	})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)

	// La transacción revirtió: el remanente sigue en tránsito y la orden en mismatch.
	assert.Equal(t, int64(5), e.qty(t, e.transit.ID, item, nil))
	got, err := e.queries.Transfer(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusMismatch, got.Status)
}

func TestResolve_SoloOrdenesEnMismatch(t *testing.T) {
	e, source, dest, item, lot := seedStandard(t)
	tr := createLocationTransfer(t, e, source, dest, item, lot, 30)

	// Pending no se puede resolver.
	_, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionDiscard,
		Actor:  testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	// Confirmed tampoco.
	_, err = e.uc.Confirm(context.Background(), tr.ID, 30, testActor)
	require.NoError(t, err)
	_, err = e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionDiscard,
		Actor:  testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestResolve_NoSeResuelveDosVeces(t *testing.T) {
	e, _, _, _, _, tr := seedMismatch(t)

	_, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionReturnToSource,
		Actor:  testActor,
	})
	require.NoError(t, err)

	_, err = e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: entity.ResolveActionReturnToSource,
		Actor:  testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestResolve_AccionDesconocida(t *testing.T) {
	e, _, _, _, _, tr := seedMismatch(t)

	_, err := e.uc.ResolveMismatch(context.Background(), tr.ID, ledger.ResolveMismatchInput{
		Action: "burn_it",
		Actor:  testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
