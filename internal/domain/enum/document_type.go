package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentType tags every effect row with the kind of document that produced it
type DocumentType string

const (
	DocumentTypeSale       DocumentType = "sale"
	DocumentTypePurchase   DocumentType = "purchase"
	DocumentTypeAdjustment DocumentType = "adjustment"
	DocumentTypeOpening    DocumentType = "opening"
)

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = DocumentType(str)
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = DocumentType(v)
	case []byte:
		*t = DocumentType(string(v))
	case nil:
		*t = ""
	}
	return nil
}
