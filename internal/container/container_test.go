package container

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gift-ledger/internal/config"
	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"
	"gift-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, delimiter string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = delimiter
	cfg.Data.File = filepath.Join(t.TempDir(), "nested", "gifts.csv")
	cfg.Display.CurrencySymbol = "$"
	return cfg
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := NewContainer(cfg,
		WithLogger(logging.NewMockLogger()),
		WithClock(dateutils.FixedClock(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, err)
	return c
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{name: "nil config", config: nil, expectError: true, errorMsg: "configuration cannot be nil"},
		{name: "valid config", config: testConfig(t, ","), expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetNormalizer())
			assert.NotNil(t, c.GetImporter())
			assert.NotNil(t, c.GetExporter())
			assert.NoError(t, c.Close())
		})
	}
}

func TestOpenSession_MissingFileIsEmpty(t *testing.T) {
	c := newTestContainer(t, testConfig(t, ","))

	s, err := c.OpenSession()
	require.NoError(t, err)
	assert.True(t, s.Ledger().IsEmpty())
	assert.Equal(t, []int{2025}, s.Filter().SortedYears())
}

func TestSaveThenOpen_UsesConfiguredDelimiter(t *testing.T) {
	cfg := testConfig(t, ";")
	c := newTestContainer(t, cfg)

	s := c.NewSession()
	s.Add(models.RawRecord{Recipient: "Alice", Occasion: "Birthday", Budget: "25.50"})
	require.NoError(t, c.SaveSession(s))

	data, err := os.ReadFile(cfg.Data.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date;year;recipient;occasion;idea;budget;purchased;purchased_cost\n")
	assert.Contains(t, string(data), "2025-03-01;2025;Alice;Birthday;;25.50;False;0.00\n")

	reopened, err := c.OpenSession()
	require.NoError(t, err)
	assert.True(t, s.Ledger().Equal(reopened.Ledger()))
}

func TestOpenSession_MalformedFile(t *testing.T) {
	cfg := testConfig(t, ",")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Data.File), 0750))
	require.NoError(t, os.WriteFile(cfg.Data.File, []byte("a,b\n1,2,3\n"), 0600))
	c := newTestContainer(t, cfg)

	s, err := c.OpenSession()
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, parsererror.IsImportParseError(err))
}
