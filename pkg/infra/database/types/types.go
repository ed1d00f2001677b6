package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type IssueTypeArray []string

func (a IssueTypeArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}

	strs := make([]string, len(a))
	for i, t := range a {
		strs[i] = strings.TrimSpace(t)
	}

	return pq.Array(strs).Value()
}

func (a *IssueTypeArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var strs []string
	if err := pq.Array(&strs).Scan(value); err != nil {
		return fmt.Errorf("failed to scan issue type array: %w", err)
	}

	*a = strs
	return nil
}
