package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// IssueStatus represents the status of an export issue
type IssueStatus int

const (
	IssueStatusProcessing IssueStatus = 0
	IssueStatusConfirmed  IssueStatus = 1
	IssueStatusDelivered  IssueStatus = 2
	IssueStatusPostponed  IssueStatus = 3
)

func (s IssueStatus) String() string {
	return [...]string{"Processing", "Confirmed", "Delivered", "Postponed"}[s]
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// Confirm is additionally gated by a stock sufficiency check; postpone is
// always allowed from processing and is terminal.
func (s IssueStatus) CanTransitionTo(target IssueStatus) bool {
	switch s {
	case IssueStatusProcessing:
		return target == IssueStatusConfirmed || target == IssueStatusPostponed
	case IssueStatusConfirmed:
		return target == IssueStatusDelivered
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusDelivered || s == IssueStatusPostponed
}

func (s IssueStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *IssueStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = IssueStatus(i)
		return nil
	}
	switch str {
	case "Processing":
		*s = IssueStatusProcessing
	case "Confirmed":
		*s = IssueStatusConfirmed
	case "Delivered":
		*s = IssueStatusDelivered
	case "Postponed":
		*s = IssueStatusPostponed
	}
	return nil
}

func (s IssueStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *IssueStatus) Scan(value interface{}) error {
	if value == nil {
		*s = IssueStatusProcessing
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = IssueStatus(v)
	case int:
		*s = IssueStatus(v)
	}
	return nil
}
