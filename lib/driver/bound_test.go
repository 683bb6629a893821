package driver_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"habilitados-backend/lib/driver"
	"habilitados-backend/lib/driver/drivertest"

	"github.com/stretchr/testify/require"
)

func TestBoundSessionConvertsErrors(t *testing.T) {
	drv := drivertest.New(map[string]*drivertest.Portal{
		"https://portal.example.com": {
			FailClick: map[string]error{"#broken": errors.New("boom")},
			Pages:     [][][]string{{{"A"}}},
		},
	})
	session, err := drv.Open(context.Background(), driver.Options{})
	require.NoError(t, err)
	defer session.Close()

	err = session.Navigate(context.Background(), "https://nowhere.example.com")
	var derr *driver.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "navigate", derr.Op)
	require.False(t, derr.Timeout())

	require.NoError(t, session.Navigate(context.Background(), "https://portal.example.com"))

	err = session.Click(context.Background(), "#broken")
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "click", derr.Op)
	require.Equal(t, "#broken", derr.Selector)
}

func TestBoundSessionTimeout(t *testing.T) {
	drv := drivertest.New(map[string]*drivertest.Portal{
		"https://portal.example.com": {HangReadTable: true},
	})
	session, err := drv.Open(context.Background(), driver.Options{
		Timeout: time.Millisecond * 20,
	})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(context.Background(), "https://portal.example.com"))

	_, err = session.ReadTable(context.Background(), "#records", nil)
	var derr *driver.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "read_table", derr.Op)
	require.True(t, derr.Timeout())
}

func TestOptionsEffectiveTimeout(t *testing.T) {
	require.Equal(t, driver.DefaultTimeout, driver.Options{}.EffectiveTimeout())
	require.Equal(t, time.Second, driver.Options{Timeout: time.Second}.EffectiveTimeout())
}
