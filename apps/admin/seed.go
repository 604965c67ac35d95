package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// seed prints the totals of the mock dataset.
func (cli *commandLine) seed() error {
	stats, err := cli.svc.Stats("")
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "students\t%d\n", stats.Totals.Students)
	fmt.Fprintf(w, "teachers\t%d\n", stats.Totals.Teachers)
	fmt.Fprintf(w, "staff\t%d\n", stats.Totals.Staff)
	fmt.Fprintf(w, "courses\t%d\n", stats.Totals.Courses)
	fmt.Fprintf(w, "announcements\t%d\n", stats.Totals.Announcements)
	fmt.Fprintf(w, "exams\t%d\n", stats.Totals.Exams)
	fmt.Fprintf(w, "exam results\t%d\n", stats.Exams.Results)
	fmt.Fprintf(w, "finance records\t%d\n", stats.Finance.TotalTransactions)
	return w.Flush()
}
