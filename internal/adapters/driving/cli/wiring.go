package cli

import (
	"io"
	"os"
	"strings"

	"github.com/lucerne-labs/fundreply/internal/adapters/driven/extraction"
	"github.com/lucerne-labs/fundreply/internal/adapters/driven/research/duckduckgo"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/core/services"
)

func ensureIngest() (driving.IngestService, error) {
	if ingestService != nil {
		return ingestService, nil
	}
	embedder, err := buildEmbedder()
	if err != nil {
		return nil, err
	}
	idx, err := ensureIndex()
	if err != nil {
		return nil, err
	}
	ingestService = services.NewIngestService(embedder, idx)
	return ingestService, nil
}

func ensureRetriever() (driving.Retriever, error) {
	if retrieverService != nil {
		return retrieverService, nil
	}
	embedder, err := buildEmbedder()
	if err != nil {
		return nil, err
	}
	idx, err := ensureIndex()
	if err != nil {
		return nil, err
	}
	retrieverService = services.NewRetrieverService(embedder, idx)
	return retrieverService, nil
}

func ensureReply() (driving.ReplyService, error) {
	if replyService != nil {
		return replyService, nil
	}
	generator, err := buildGenerator()
	if err != nil {
		return nil, err
	}
	retriever, err := ensureRetriever()
	if err != nil {
		return nil, err
	}

	replyService = services.NewPipelineService(
		extraction.NewExtractor(generator),
		retriever,
		services.NewDrafterService(generator),
		services.NewComposerService(generator),
		duckduckgo.NewResearcher(generator, duckduckgo.NewHTMLSearcher()),
	)
	return replyService, nil
}

// readEmailText reads the inbound email from the named file, or from
// stdin when path is empty or "-".
func readEmailText(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// subjectFor derives the reply subject from the inbound email, reusing
// its Subject: line when present.
func subjectFor(emailText string) string {
	for _, line := range strings.Split(emailText, "\n") {
		if len(line) >= 8 && strings.EqualFold(line[:8], "subject:") {
			if s := strings.TrimSpace(line[8:]); s != "" {
				return "Re: " + s
			}
		}
	}
	return "Re: Your recent inquiry"
}
