package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Duration stores a procedure length as hours and minutes. A raw
// time.Duration would travel through JSON as nanoseconds, so a client posting
// {"duration": 30} would create a 30ns procedure.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Value implements the driver.Valuer interface
func (d Duration) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *Duration) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Duration: unsupported type %T", value)
	}

	return json.Unmarshal(data, d)
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d.Hours)*time.Hour + time.Duration(d.Minutes)*time.Minute
}
