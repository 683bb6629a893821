package habilitados

import (
	"context"
	"testing"

	"habilitados-backend/lib/driver"
	"habilitados-backend/lib/driver/drivertest"
	"habilitados-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func openLoggedIn(t *testing.T, drv *drivertest.Driver, cfg SystemConfig) driver.Session {
	t.Helper()
	session, err := drv.Open(context.Background(), driver.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	require.NoError(t, session.Navigate(context.Background(), cfg.LoginUrl))
	return session
}

func TestExtractPagination(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	cfg.Selectors.NextPage = "a.next"
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {
			NextPage: "a.next",
			Pages: [][][]string{
				{{"A", "ACME", "Habilitado"}},
				{{"B", "ACME", "Habilitado"}},
				{{"C", "ACME", "Vencido"}},
			},
		},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "C", rows[2].Name)
	require.Equal(t, StatusExpired, rows[2].Status)
}

func TestExtractPaginationTerminatesOnStableRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	// a paginator whose "next" control goes nowhere: every read
	// returns the same rows, extraction must stop after one page
	cfg := testConfig("portal")
	cfg.Selectors.NextPage = "a.next"
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {
			NextPage: "a.next",
			Pages:    [][][]string{{{"A", "ACME", "Habilitado"}}},
		},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExtractSinglePageWithoutNextSelector(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{
			{{"A", "ACME", "Habilitado"}},
			{{"never read", "x", "y"}},
		}},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "A", rows[0].Name)
}

func TestExtractAppliesFilters(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	cfg.RequiredFilters = []string{"vigentes", "con_seguro"}
	cfg.FilterSelectors = map[string]string{
		"vigentes":   "#chk-vigentes",
		"con_seguro": "#chk-seguro",
	}
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{{{"A", "ACME", "Habilitado"}}}},
	})

	_, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
}

func TestExtractFilterNotConfigured(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	cfg.RequiredFilters = []string{"vigentes"}
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{{{"A", "ACME", "Habilitado"}}}},
	})

	_, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, "vigentes", xerr.Filter)
}

func TestExtractDropsRowsWithoutName(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{{
			{"", "ACME", "Habilitado"},
			{"   ", "ACME", "Habilitado"},
			{"B", "ACME", "Habilitado"},
		}}},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "B", rows[0].Name)
}

func TestExtractUnknownStatusKeepsRow(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{{{"A", "ACME", "xyz"}}}},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, StatusUnknown, rows[0].Status)
}

func TestExtractMapsColumns(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/habilitados")
	defer cleanup()

	cfg := testConfig("portal")
	cfg.ColumnMap = ColumnMap{Name: 2, Contractor: 0, Status: 1}
	drv := drivertest.New(map[string]*drivertest.Portal{
		cfg.LoginUrl: {Pages: [][][]string{{
			{"ACME SA", "Habilitado", "Grúa 21", "extra column"},
		}}},
	})

	rows, err := extract(context.Background(), openLoggedIn(t, drv, cfg), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Grúa 21", rows[0].Name)
	require.Equal(t, "ACME SA", rows[0].Contractor)
	require.Equal(t, StatusEnabled, rows[0].Status)
}
