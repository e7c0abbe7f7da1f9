package config

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// legacyKeys maps keys written by older releases to their current names.
var legacyKeys = map[string]string{
	"pomodoro_duration": "focus_duration",
}

// MigrateLegacyKeys renames keys from older config files.
//
// When both the legacy and the current key are present the current one wins
// and the legacy key is dropped. The returned bool reports whether data changed.
func MigrateLegacyKeys(data []byte) ([]byte, bool, error) {
	out := string(data)
	changed := false

	for oldKey, newKey := range legacyKeys {
		legacy := gjson.Get(out, oldKey)
		if !legacy.Exists() {
			continue
		}

		var err error
		if !gjson.Get(out, newKey).Exists() {
			out, err = sjson.SetRaw(out, newKey, legacy.Raw)
			if err != nil {
				return nil, false, err
			}
		}
		out, err = sjson.Delete(out, oldKey)
		if err != nil {
			return nil, false, err
		}
		changed = true
	}

	return []byte(out), changed, nil
}
