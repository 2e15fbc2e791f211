package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapIngest(t *testing.T, svc *mockIngestService) {
	t.Helper()
	old := ingestService
	ingestService = svc
	t.Cleanup(func() {
		ingestService = old
	})
}

func TestIngestCmd_RequiresFileArg(t *testing.T) {
	_, err := execute(t, "ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_IndexesCSV(t *testing.T) {
	svc := &mockIngestService{}
	swapIngest(t, svc)

	path := filepath.Join(t.TempDir(), "corpus.csv")
	csv := "email_text,response_text,industry\n" +
		"\"We are raising a seed round.\",\"Thank you for reaching out.\",Fintech\n" +
		"\"Our cybersecurity platform.\",\"We would love to learn more.\",Cybersecurity\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	out, err := execute(t, "ingest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 pairs")
	require.Len(t, svc.pairs, 2)
	assert.Equal(t, "Fintech", svc.pairs[0].Metadata["industry"])
}

func TestIngestCmd_MissingFile(t *testing.T) {
	swapIngest(t, &mockIngestService{})

	_, err := execute(t, "ingest", filepath.Join(t.TempDir(), "absent.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load corpus")
}

func TestSeedCmd_IndexesSamples(t *testing.T) {
	svc := &mockIngestService{}
	swapIngest(t, svc)

	out, err := execute(t, "seed")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 4 sample pairs")
	assert.Len(t, svc.pairs, 4)
}

func TestSeedCmd_IngestError(t *testing.T) {
	swapIngest(t, &mockIngestService{err: errMockService})

	_, err := execute(t, "seed")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed corpus")
}
