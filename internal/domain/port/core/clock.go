package core

import "time"

// Clock abstracts time for the domain so lifecycle timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}
