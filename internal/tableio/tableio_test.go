package tableio

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clustersum/internal/domain"
)

const reviewsCSV = `cluster,doc,verified_purchase,rating
1,excellent,True,5
0,good product,1,4
0,"very good",false,4
1,"excellent service",,5
0,bad item,0,1
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(reviewsCSV), DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
	assert.True(t, table.HasVerified())

	docs := table.Documents()
	assert.Equal(t, domain.IntID(1), docs[0].Cluster)
	assert.Equal(t, "very good", docs[2].Text)
	require.NotNil(t, docs[0].Verified)
	assert.True(t, *docs[0].Verified)
	assert.Nil(t, docs[3].Verified)
	assert.False(t, *docs[4].Verified)
}

func TestReadCSVWithoutVerified(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("doc,cluster\nhello,a\n"), Columns{})
	require.NoError(t, err)
	assert.False(t, table.HasVerified())
	assert.Equal(t, domain.StringID("a"), table.Documents()[0].Cluster)
}

func TestReadCSVCustomColumns(t *testing.T) {
	in := "label_id,review_text,vp\n2,fast shipping,yes\n"
	table, err := ReadCSV(strings.NewReader(in), Columns{Cluster: "label_id", Doc: "review_text", Verified: "vp"})
	require.NoError(t, err)
	assert.True(t, table.HasVerified())
	assert.Equal(t, "fast shipping", table.Documents()[0].Text)
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("cluster,text\n0,hi\n"), DefaultColumns())
	var mc *domain.MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "doc", mc.Column)

	_, err = ReadCSV(strings.NewReader(""), DefaultColumns())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestReadCSVBadFlag(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("cluster,doc,verified_purchase\n0,a,maybe\n"), DefaultColumns())
	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, "maybe", pe.Value)
}

func sampleSummary() domain.SummaryTable {
	return domain.SummaryTable{
		{ClusterID: domain.IntID(0), Label: "Positive", TopTerms: "good, product", NumReviews: 3,
			VerifiedRatio: domain.RatioOf(2.0 / 3.0), Examples: "good product\n---\nvery good"},
		{ClusterID: domain.IntID(1), Label: "Unknown", TopTerms: "excellent", NumReviews: 2,
			VerifiedRatio: domain.NARatio(), Examples: "excellent"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummary()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	want := [][]string{
		{"Cluster ID", "Label", "Top Terms", "Num Reviews", "Verified Ratio", "Examples"},
		{"0", "Positive", "good, product", "3", "0.67", "good product\n---\nvery good"},
		{"1", "Unknown", "excellent", "2", "NA", "excellent"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cluster_summary.csv")
	require.NoError(t, Save(out, "", sampleSummary()))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Cluster ID,Label,Top Terms,Num Reviews,Verified Ratio,Examples\n"))

	err = Save(filepath.Join(dir, "summary.parquet"), "", sampleSummary())
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	in := filepath.Join(dir, "docs.csv")
	require.NoError(t, os.WriteFile(in, []byte(reviewsCSV), 0o644))
	table, err := Load(in, "", "", DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"cluster", "doc", "verified_purchase"},
		{0, "good product", true},
		{1, "excellent"},
		{0, "bad item", false},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path, "", "", DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	docs := table.Documents()
	assert.Equal(t, domain.IntID(1), docs[1].Cluster)
	assert.Nil(t, docs[1].Verified)
	assert.True(t, *docs[0].Verified)
	assert.Equal(t, []domain.ClusterID{domain.IntID(0), domain.IntID(1)}, table.ClusterIDs())
}

func TestReadStream(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"cluster", "doc", "verified_purchase"},
		{"shipping", "late parcel", "False"},
		{"shipping", "box crushed"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := Read(buf, FormatXLSX, "", DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	docs := table.Documents()
	assert.Equal(t, domain.StringID("shipping"), docs[0].Cluster)
	assert.False(t, *docs[0].Verified)
	assert.Nil(t, docs[1].Verified)

	table, err = Read(strings.NewReader(reviewsCSV), "", "", DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	_, err = Read(strings.NewReader(reviewsCSV), "parquet", "", DefaultColumns())
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, Save(path, "", sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())
	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.SummaryHeader(), rows[0])
	assert.Equal(t, "Positive", rows[1][1])
	assert.Equal(t, "3", rows[1][3])
	assert.Equal(t, "NA", rows[2][4])
	assert.Equal(t, "good product\n---\nvery good", rows[1][5])
}

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels([]byte("0: Positive\n\"1\": Negative\nshipping: Delivery\n"))
	require.NoError(t, err)
	assert.Equal(t, "Positive", labels.Resolve(domain.IntID(0)))
	assert.Equal(t, "Negative", labels.Resolve(domain.IntID(1)))
	assert.Equal(t, "Delivery", labels.Resolve(domain.StringID("shipping")))
	assert.Equal(t, domain.UnknownLabel, labels.Resolve(domain.IntID(2)))

	empty, err := ParseLabels(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseLabels([]byte("- a\n- b\n"))
	assert.Error(t, err)
}

func TestLoadLabelsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("3: Battery\n"), 0o644))
	labels, err := LoadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, "Battery", labels.Resolve(domain.IntID(3)))

	_, err = LoadLabels(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFixtures(t *testing.T) {
	table, err := Load(filepath.Join("testdata", "reviews.csv"), "", "", DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
	assert.Equal(t, []domain.ClusterID{domain.IntID(0), domain.IntID(1)}, table.ClusterIDs())

	labels, err := LoadLabels(filepath.Join("testdata", "labels.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Negative", labels.Resolve(domain.IntID(1)))
}
