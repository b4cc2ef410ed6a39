package scheduler

import (
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
)

// Fixed cadences from spec.md §4.6 that don't depend on kinematic
// state.
const (
	StaticReportInterval = 6 * time.Minute
	BaseStationInterval  = 10 * time.Second
	AidToNavInterval     = 3 * time.Minute
	ClassBExtInterval    = 6 * time.Minute
)

func isMooredOrAnchored(status ais.NavStatus) bool {
	return status == ais.NavAtAnchor || status == ais.NavMoored
}

// ClassAInterval returns the Class-A dynamic position report interval
// for the given navigational status, speed, and whether the vessel is
// actively changing course.
func ClassAInterval(status ais.NavStatus, sogKn float64, changingCourse bool) time.Duration {
	switch {
	case isMooredOrAnchored(status) && sogKn <= 3:
		return 3 * time.Minute
	case isMooredOrAnchored(status) && sogKn > 3:
		return 10 * time.Second
	case sogKn <= 14:
		return 10 * time.Second
	case sogKn <= 23:
		if changingCourse {
			return time.Duration(3333333333) // 3 1/3 s
		}
		return 6 * time.Second
	default:
		return 2 * time.Second
	}
}

// ClassBInterval returns the Class-B (type 18) position report
// interval for the given speed.
func ClassBInterval(sogKn float64) time.Duration {
	if sogKn < 2 {
		return 30 * time.Second
	}
	return 3 * time.Second
}
