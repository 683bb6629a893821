package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
}

// force the timezone the portals operate in, deployment hosts can
// end up in arbitrary regions which shifts dates when manipulating
// <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}
