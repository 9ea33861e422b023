package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// AdjustmentType records why a bill total was corrected after finalize.
type AdjustmentType int

const (
	AdjustmentTypeItemReturn       AdjustmentType = 0
	AdjustmentTypeRateCorrection   AdjustmentType = 1
	AdjustmentTypeManualAdjustment AdjustmentType = 2
)

func (t AdjustmentType) String() string {
	names := [...]string{"ITEM_RETURN", "RATE_CORRECTION", "MANUAL_ADJUSTMENT"}
	if int(t) < 0 || int(t) >= len(names) {
		return "MANUAL_ADJUSTMENT"
	}
	return names[t]
}

// ParseAdjustmentType maps a wire string, defaulting to MANUAL_ADJUSTMENT.
func ParseAdjustmentType(s string) (AdjustmentType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ITEM_RETURN":
		return AdjustmentTypeItemReturn, true
	case "RATE_CORRECTION":
		return AdjustmentTypeRateCorrection, true
	case "MANUAL_ADJUSTMENT":
		return AdjustmentTypeManualAdjustment, true
	}
	return AdjustmentTypeManualAdjustment, false
}

func (t AdjustmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AdjustmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = AdjustmentType(i)
		return nil
	}
	parsed, _ := ParseAdjustmentType(str)
	*t = parsed
	return nil
}

func (t AdjustmentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *AdjustmentType) Scan(value interface{}) error {
	if value == nil {
		*t = AdjustmentTypeManualAdjustment
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = AdjustmentType(v)
	case int:
		*t = AdjustmentType(v)
	}
	return nil
}
