package lead

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"ID", "Project", "Name", "Phone", "Email", "Job Title", "Preferred Contact",
	"Unit Type", "Message", "Status", "Notes", "Source URL", "Created At", "Updated At",
}

// ExportCSV writes every lead, in List order, as CSV with a header row.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(csvRecord(&rows[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(l *LeadWithProject) []string {
	project := ""
	if l.ProjectTitle != nil {
		project = *l.ProjectTitle
	}
	return []string{
		strconv.FormatUint(uint64(l.ID), 10),
		project,
		l.Name,
		l.Phone,
		l.Email,
		l.JobTitle,
		string(l.PreferredContactWay),
		l.UnitType,
		l.Message,
		string(l.Status),
		l.Notes,
		l.SourceURL,
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
