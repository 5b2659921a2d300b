package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
)

func strPtr(s string) *string { return &s }

// mov construye un movimiento de prueba; origen/destino vacíos se traducen a nil.
func mov(product, from, to string, qty int64) *entity.Movement {
	m := &entity.Movement{ProductID: product, Qty: qty}
	if from != "" {
		m.FromLocation = strPtr(from)
	}
	if to != "" {
		m.ToLocation = strPtr(to)
	}
	return m
}

// ── Contribution ──────────────────────────────────────────────────────────────

func TestContribution_EntradaSumaEnDestino(t *testing.T) {
	m := mov("P1", "", "A", 10)
	assert.Equal(t, int64(10), ledger.Contribution(m, "P1", "A"))
}

func TestContribution_SalidaRestaEnOrigen(t *testing.T) {
	m := mov("P1", "A", "", 4)
	assert.Equal(t, int64(-4), ledger.Contribution(m, "P1", "A"))
}

func TestContribution_TrasladoAfectaAmbosLados(t *testing.T) {
	m := mov("P1", "A", "B", 3)
	assert.Equal(t, int64(-3), ledger.Contribution(m, "P1", "A"),
		"el origen del traslado debe perder la cantidad")
	assert.Equal(t, int64(3), ledger.Contribution(m, "P1", "B"),
		"el destino del traslado debe ganar la cantidad")
}

func TestContribution_ProductoDistintoNoAporta(t *testing.T) {
	m := mov("P1", "", "A", 10)
	assert.Zero(t, ledger.Contribution(m, "P2", "A"))
}

func TestContribution_TrasladoMismaUbicacionAportaCero(t *testing.T) {
	// Origen y destino iguales: suma y resta se cancelan.
	m := mov("P1", "A", "A", 7)
	assert.Zero(t, ledger.Contribution(m, "P1", "A"))
}

// ── Net ───────────────────────────────────────────────────────────────────────

func TestNet_EntradasMenosSalidas(t *testing.T) {
	movs := []*entity.Movement{
		mov("P1", "", "A", 10),
		mov("P1", "A", "", 4),
		mov("P1", "A", "B", 3),
	}

	assert.Equal(t, int64(3), ledger.Net(movs, "P1", "A"), "10 - 4 - 3")
	assert.Equal(t, int64(3), ledger.Net(movs, "P1", "B"))
}

func TestNet_SinMovimientosEsCero(t *testing.T) {
	assert.Zero(t, ledger.Net(nil, "P1", "A"))
	assert.Zero(t, ledger.Net([]*entity.Movement{mov("P2", "", "A", 5)}, "P1", "A"))
}

func TestNet_NegativoPosibleConLedgerInconsistente(t *testing.T) {
	// La aritmética es pura: si el ledger quedó inconsistente el neto puede
	// ser negativo, la validación de stock vive en el caso de uso.
	movs := []*entity.Movement{mov("P1", "A", "", 5)}
	assert.Equal(t, int64(-5), ledger.Net(movs, "P1", "A"))
}

// ── Aggregate ─────────────────────────────────────────────────────────────────

func TestAggregate_UnionDeOrigenesYDestinos(t *testing.T) {
	movs := []*entity.Movement{
		mov("P1", "", "A", 10),
		mov("P1", "A", "B", 4),
		mov("P2", "", "B", 2),
	}

	nets := ledger.Aggregate(movs)

	assert.Equal(t, map[ledger.Key]int64{
		{ProductID: "P1", LocationID: "A"}: 6,
		{ProductID: "P1", LocationID: "B"}: 4,
		{ProductID: "P2", LocationID: "B"}: 2,
	}, nets)
}

func TestAggregate_OmiteNetosCero(t *testing.T) {
	movs := []*entity.Movement{
		mov("P1", "", "A", 5),
		mov("P1", "A", "", 5), // drena todo el saldo
	}

	nets := ledger.Aggregate(movs)
	assert.NotContains(t, nets, ledger.Key{ProductID: "P1", LocationID: "A"},
		"un par con neto cero no debe aparecer en el reporte")
	assert.Empty(t, nets)
}

func TestAggregate_ConsistenteConNet(t *testing.T) {
	movs := []*entity.Movement{
		mov("P1", "", "A", 10),
		mov("P1", "A", "B", 4),
		mov("P1", "B", "", 1),
		mov("P2", "", "A", 8),
	}

	nets := ledger.Aggregate(movs)
	for k, v := range nets {
		assert.Equal(t, ledger.Net(movs, k.ProductID, k.LocationID), v,
			"Aggregate y Net deben coincidir para %v", k)
	}
}

func TestAggregate_VacioSinMovimientos(t *testing.T) {
	assert.Empty(t, ledger.Aggregate(nil))
}
