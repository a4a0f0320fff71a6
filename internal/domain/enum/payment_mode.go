package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode is how a document is settled at commit time
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeBank   PaymentMode = "bank"
	PaymentModeCard   PaymentMode = "card"
	PaymentModeCredit PaymentMode = "credit"
)

func (m PaymentMode) String() string {
	return string(m)
}

// IsValid checks if the mode is one of the known values
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBank, PaymentModeCard, PaymentModeCredit:
		return true
	}
	return false
}

// IsCredit reports whether nothing is settled immediately
func (m PaymentMode) IsCredit() bool {
	return m == PaymentModeCredit
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMode(str)
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(string(v))
	}
	return nil
}
