package syncer

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	v.Set("sync.docket", "ABC-2020-0001")
	v.Set("sync.posted_date", "01/01/21")
	v.Set("sync.rpp", 50)
	v.Set("sync.page_offset", 100)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "ABC-2020-0001", cfg.DocketID)
	assert.Equal(t, "01/01/21", cfg.PostedDate)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 100, cfg.StartOffset)
}

func TestConfigValidate(t *testing.T) {
	t.Run("MissingDocket", func(t *testing.T) {
		err := Config{PageSize: 10}.Validate()
		require.Error(t, err)
	})
	t.Run("ZeroPageSize", func(t *testing.T) {
		err := Config{DocketID: "X"}.Validate()
		require.Error(t, err)
	})
	t.Run("NegativeOffset", func(t *testing.T) {
		err := Config{DocketID: "X", PageSize: 10, StartOffset: -1}.Validate()
		require.Error(t, err)
	})
	t.Run("Valid", func(t *testing.T) {
		err := Config{DocketID: "X", PageSize: 1}.Validate()
		require.NoError(t, err)
	})
}
