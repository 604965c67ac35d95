package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// export writes the snapshot, or one of its collections, as indented JSON.
func (cli *commandLine) export(collection string) error {
	snap, err := cli.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking snapshot")
	}

	var data interface{} = snap
	if collection != "" {
		collections := map[string]interface{}{
			"students":        snap.Students,
			"teachers":        snap.Teachers,
			"staff":           snap.Staff,
			"courses":         snap.Courses,
			"announcements":   snap.Announcements,
			"attendance":      snap.Attendance,
			"exams":           snap.Exams,
			"exam_results":    snap.ExamResults,
			"finance_records": snap.FinanceRecords,
		}
		var ok bool
		if data, ok = collections[collection]; !ok {
			return fmt.Errorf("unknown collection %q", collection)
		}
	}

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
