// Package syncer implements the docket comment synchronization loop.
package syncer

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config captures the knobs for one sync run. All values originate from
// Viper so the run can be configured via files, env vars, or CLI flags.
type Config struct {
	DocketID    string
	PostedDate  string
	PageSize    int
	StartOffset int
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		DocketID:    v.GetString("sync.docket"),
		PostedDate:  v.GetString("sync.posted_date"),
		PageSize:    v.GetInt("sync.rpp"),
		StartOffset: v.GetInt("sync.page_offset"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.DocketID == "" {
		return fmt.Errorf("sync.docket must be set")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("sync.rpp must be >= 1")
	}
	if c.StartOffset < 0 {
		return fmt.Errorf("sync.page_offset must be >= 0")
	}
	return nil
}
