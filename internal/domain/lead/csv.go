package lead

import (
	"strings"
)

// exportDateLayout renders created_at as a date with no time component.
const exportDateLayout = "2006-01-02"

var exportHeader = []string{
	"First Name", "Last Name", "Email", "Phone", "Company",
	"Source", "Status", "Notes", "Created At",
}

var requiredColumns = []string{"first name", "last name", "email"}

// Codec converts between leads and the CSV interchange format.
//
// The format is line-oriented: every value is wrapped in double quotes and
// values are joined with bare commas. Embedded quotes are not escaped and
// commas inside values are not protected; Decode strips quotes instead of
// parsing them, so a comma inside a quoted value splits the value.
type Codec struct{}

// Encode renders leads as CSV text with a fixed header row. Optional fields
// render as empty strings; created_at keeps only its date.
func (Codec) Encode(leads []*Lead) string {
	var b strings.Builder

	writeRow(&b, exportHeader)
	for _, l := range leads {
		b.WriteByte('\n')
		writeRow(&b, []string{
			l.FirstName,
			l.LastName,
			l.Email,
			l.Phone,
			l.Company,
			l.Source,
			string(l.Status),
			l.Notes,
			l.CreatedAt.Format(exportDateLayout),
		})
	}

	return b.String()
}

func writeRow(b *strings.Builder, row []string) {
	for i, cell := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(cell)
		b.WriteByte('"')
	}
}

// Decode parses raw CSV text into candidate leads.
//
// The first non-empty line is the header; a *MissingColumnsError is returned
// when any required column (first name, last name, email) is absent and the
// whole import is rejected. Rows with fewer values than the header are
// skipped silently. A status value outside the known set coerces to new.
// Only rows with first name, last name and email all non-empty survive;
// when none do, ErrNoValidLeads is returned.
func (Codec) Decode(raw string) ([]*Lead, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, &MissingColumnsError{Missing: append([]string(nil), requiredColumns...)}
	}

	headers := splitFields(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	var missing []string
	for _, req := range requiredColumns {
		if !containsColumn(headers, req) {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	var leads []*Lead
	for _, line := range lines[1:] {
		values := splitFields(line)
		if len(values) < len(headers) {
			continue
		}

		l := &Lead{Status: StatusNew}
		for i, header := range headers {
			value := values[i]
			switch header {
			case "first name":
				l.FirstName = value
			case "last name":
				l.LastName = value
			case "email":
				l.Email = value
			case "phone":
				l.Phone = value
			case "company":
				l.Company = value
			case "source":
				l.Source = value
			case "status":
				l.Status = ParseStatus(value)
			case "notes":
				l.Notes = value
			}
		}

		if l.Valid() {
			leads = append(leads, l)
		}
	}

	if len(leads) == 0 {
		return nil, ErrNoValidLeads
	}
	return leads, nil
}

// splitFields splits a line on bare commas and strips quotes and surrounding
// whitespace from every value.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
	}
	return parts
}

func containsColumn(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
