package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ClosingStatus represents the lifecycle state of a closing draft
type ClosingStatus int

const (
	ClosingStatusDraft     ClosingStatus = 0
	ClosingStatusSubmitted ClosingStatus = 1
)

func (s ClosingStatus) String() string {
	names := [...]string{"Draft", "Submitted"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s ClosingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ClosingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ClosingStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = ClosingStatusDraft
	case "Submitted":
		*s = ClosingStatusSubmitted
	}
	return nil
}

func (s ClosingStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ClosingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ClosingStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ClosingStatus(v)
	case int:
		*s = ClosingStatus(v)
	}
	return nil
}
