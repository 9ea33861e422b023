package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// BillType represents the kind of bill being raised
type BillType int

const (
	BillTypeGST    BillType = 0
	BillTypeNonGST BillType = 1
	BillTypeUdhar  BillType = 2
)

func (t BillType) String() string {
	names := [...]string{"GST", "NON_GST", "UDHAR"}
	if int(t) < 0 || int(t) >= len(names) {
		return "NON_GST"
	}
	return names[t]
}

// ParseBillType maps a wire string to a BillType, defaulting to NON_GST.
func ParseBillType(s string) (BillType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GST":
		return BillTypeGST, true
	case "NON_GST":
		return BillTypeNonGST, true
	case "UDHAR":
		return BillTypeUdhar, true
	}
	return BillTypeNonGST, false
}

func (t BillType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *BillType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = BillType(i)
		return nil
	}
	parsed, _ := ParseBillType(str)
	*t = parsed
	return nil
}

func (t BillType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *BillType) Scan(value interface{}) error {
	if value == nil {
		*t = BillTypeNonGST
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = BillType(v)
	case int:
		*t = BillType(v)
	}
	return nil
}
