package lead

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeader(t *testing.T) {
	var codec Codec

	out := codec.Encode(nil)
	assert.Equal(t,
		`"First Name","Last Name","Email","Phone","Company","Source","Status","Notes","Created At"`,
		out,
	)
}

func TestEncodeRendersDateOnly(t *testing.T) {
	var codec Codec

	created := time.Date(2026, 3, 15, 13, 45, 12, 0, time.UTC)
	out := codec.Encode([]*Lead{{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Status:    StatusNew,
		CreatedAt: created,
	}})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Ann","Lee","ann@x.com","","","","new","","2026-03-15"`, lines[1])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var codec Codec

	leads := []*Lead{
		{
			FirstName: "Ann",
			LastName:  "Lee",
			Email:     "ann@x.com",
			Phone:     "+1-555-0100",
			Company:   "Acme Corp",
			Source:    "referral",
			Status:    StatusQualified,
			Notes:     "met at conference",
			CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			FirstName: "Bob",
			LastName:  "Stone",
			Email:     "bob@y.io",
			Status:    StatusConverted,
			CreatedAt: time.Date(2026, 2, 3, 11, 0, 0, 0, time.UTC),
		},
	}

	decoded, err := codec.Decode(codec.Encode(leads))
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	for i, l := range leads {
		assert.Equal(t, l.FirstName, decoded[i].FirstName)
		assert.Equal(t, l.LastName, decoded[i].LastName)
		assert.Equal(t, l.Email, decoded[i].Email)
		assert.Equal(t, l.Phone, decoded[i].Phone)
		assert.Equal(t, l.Company, decoded[i].Company)
		assert.Equal(t, l.Source, decoded[i].Source)
		assert.Equal(t, l.Status, decoded[i].Status)
		assert.Equal(t, l.Notes, decoded[i].Notes)
	}
}

func TestDecodeMissingEmailHeaderRejectsImport(t *testing.T) {
	var codec Codec

	_, err := codec.Decode("\"First Name\",\"Last Name\",\"Phone\"\n\"Ann\",\"Lee\",\"123\"")

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"email"}, missing.Missing)
}

func TestDecodeEmptyInputReportsAllRequiredColumns(t *testing.T) {
	var codec Codec

	_, err := codec.Decode("\n\n")

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"first name", "last name", "email"}, missing.Missing)
}

func TestDecodeCoercesUnknownStatus(t *testing.T) {
	var codec Codec

	leads, err := codec.Decode("First Name,Last Name,Email,Status\n\"Ann\",\"Lee\",\"ann@x.com\",\"bogus\"")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, StatusNew, leads[0].Status)
}

func TestDecodeSkipsShortRows(t *testing.T) {
	var codec Codec

	raw := strings.Join([]string{
		"First Name,Last Name,Email",
		"\"Ann\",\"Lee\",\"ann@x.com\"",
		"\"Bob\",\"Stone\"", // fewer values than the header
		"\"Cid\",\"Reed\",\"cid@z.org\"",
	}, "\n")

	leads, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "ann@x.com", leads[0].Email)
	assert.Equal(t, "cid@z.org", leads[1].Email)
}

func TestDecodeDropsRowsMissingRequiredValues(t *testing.T) {
	var codec Codec

	raw := strings.Join([]string{
		"First Name,Last Name,Email",
		"\"Ann\",\"\",\"ann@x.com\"",
		"\"\",\"Lee\",\"lee@x.com\"",
		"\"Cid\",\"Reed\",\"\"",
	}, "\n")

	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrNoValidLeads)
}

func TestDecodeHandlesCRLFAndBlankLines(t *testing.T) {
	var codec Codec

	raw := "First Name,Last Name,Email\r\n\r\n\"Ann\",\"Lee\",\"ann@x.com\"\r\n"

	leads, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Ann", leads[0].FirstName)
}

func TestDecodeDefaultsStatusWhenColumnAbsent(t *testing.T) {
	var codec Codec

	leads, err := codec.Decode("First Name,Last Name,Email\n\"Ann\",\"Lee\",\"ann@x.com\"")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, StatusNew, leads[0].Status)
}
