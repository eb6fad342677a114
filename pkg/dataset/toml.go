package dataset

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// loadTOML reads a dataset written as two arrays of tables:
//
//	name = "run 4"
//	[[reference]]
//	x = 0.0
//	y = 0.0
//	[[degradation]]
//	x = 0.0
//	y = 0.0
func loadTOML(filename string) (*DataSet, error) {
	var ds DataSet
	meta, err := toml.DecodeFile(filename, &ds)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in dataset: %v", undecoded)
	}
	return &ds, nil
}
