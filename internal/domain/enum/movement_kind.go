package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MovementKind is the reason a stock movement was recorded
type MovementKind string

const (
	MovementKindOpening        MovementKind = "opening"
	MovementKindPurchase       MovementKind = "purchase"
	MovementKindPurchaseReturn MovementKind = "purchase_return"
	MovementKindSale           MovementKind = "sale"
	MovementKindSaleReturn     MovementKind = "sale_return"
	MovementKindAdjustment     MovementKind = "adjustment"
)

// AllMovementKinds lists every valid kind
func AllMovementKinds() []MovementKind {
	return []MovementKind{
		MovementKindOpening,
		MovementKindPurchase,
		MovementKindPurchaseReturn,
		MovementKindSale,
		MovementKindSaleReturn,
		MovementKindAdjustment,
	}
}

func (k MovementKind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known values
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementKindOpening, MovementKindPurchase, MovementKindPurchaseReturn,
		MovementKindSale, MovementKindSaleReturn, MovementKindAdjustment:
		return true
	}
	return false
}

// Direction returns +1 for kinds that bring stock in, -1 for kinds that take it out
// and 0 for adjustments, whose sign is carried by the quantity itself.
func (k MovementKind) Direction() int64 {
	switch k {
	case MovementKindOpening, MovementKindPurchase, MovementKindSaleReturn:
		return 1
	case MovementKindSale, MovementKindPurchaseReturn:
		return -1
	default:
		return 0
	}
}

func (k MovementKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *MovementKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	kind := MovementKind(str)
	if !kind.IsValid() {
		return fmt.Errorf("invalid movement kind %q", str)
	}
	*k = kind
	return nil
}

func (k MovementKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *MovementKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = MovementKind(v)
	case []byte:
		*k = MovementKind(string(v))
	case nil:
		*k = ""
	}
	return nil
}
