package core

// Ordering is one sort key of a query, e.g. `-last_name` is {Field: "last_name", Ascending: false}.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
