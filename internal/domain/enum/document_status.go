package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentStatus represents the lifecycle state of a sale or purchase
type DocumentStatus int

const (
	DocumentStatusCompleted DocumentStatus = 1
	DocumentStatusCancelled DocumentStatus = 2
)

func (s DocumentStatus) String() string {
	switch s {
	case DocumentStatusCompleted:
		return "Completed"
	case DocumentStatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DocumentStatus(i)
		return nil
	}
	switch str {
	case "Completed":
		*s = DocumentStatusCompleted
	case "Cancelled":
		*s = DocumentStatusCancelled
	}
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DocumentStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DocumentStatus(v)
	case int:
		*s = DocumentStatus(v)
	}
	return nil
}
