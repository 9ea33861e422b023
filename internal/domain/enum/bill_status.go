package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// BillStatus represents where a bill sits in its lifecycle:
// OPEN -> FINALIZED -> PARTIALLY_PAID <-> PAID. Adjustments can move a bill
// between the three finalized states but never back to OPEN.
type BillStatus int

const (
	BillStatusOpen          BillStatus = 0
	BillStatusFinalized     BillStatus = 1
	BillStatusPartiallyPaid BillStatus = 2
	BillStatusPaid          BillStatus = 3
)

func (s BillStatus) String() string {
	names := [...]string{"OPEN", "FINALIZED", "PARTIALLY_PAID", "PAID"}
	if int(s) < 0 || int(s) >= len(names) {
		return "OPEN"
	}
	return names[s]
}

// ParseBillStatus maps a wire string to a BillStatus.
func ParseBillStatus(s string) (BillStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN":
		return BillStatusOpen, true
	case "FINALIZED":
		return BillStatusFinalized, true
	case "PARTIALLY_PAID":
		return BillStatusPartiallyPaid, true
	case "PAID":
		return BillStatusPaid, true
	}
	return BillStatusOpen, false
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	parsed, _ := ParseBillStatus(str)
	*s = parsed
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
