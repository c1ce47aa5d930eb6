package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/claim"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/segment"
)

var (
	ingestTitle   string
	ingestChannel string
)

// newSourceID mints the 12-hex-character lowercase source id.
func newSourceID() string {
	return model.NewID()
}

func ingestSegments(ctx context.Context, segs []model.Segment, sourceType model.SourceType, url string) error {
	e, err := initEnv(ctx, "cli")
	if err != nil {
		return err
	}
	defer e.Close()

	src := model.Source{
		ID:         newSourceID(),
		URL:        url,
		Title:      ingestTitle,
		Channel:    ingestChannel,
		SourceType: sourceType,
		CreatedAt:  time.Now().UTC(),
	}
	if len(segs) > 0 {
		src.DurationSecs = segs[len(segs)-1].End
	}

	if err := e.Store.CreateSource(ctx, src); err != nil {
		return err
	}

	claims := claim.Extract(src.ID, segs, claim.SourceMeta{Title: src.Title, Channel: src.Channel}, time.Now().UTC())
	inserted, err := e.Store.InsertClaims(ctx, claims)
	if err != nil {
		return err
	}

	zap.L().Info("ingest complete",
		zap.String("source_id", src.ID),
		zap.Int("segments", len(segs)),
		zap.Int("claims", inserted),
	)
	fmt.Printf("source %s ingested: %d segments, %d claims\n", src.ID, len(segs), inserted)
	return nil
}

var ingestTextCmd = &cobra.Command{
	Use:   "ingest-text <path>",
	Short: "Ingest a plain-text source (article, transcript dump) from a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}
		segs, err := segment.FromText(string(data))
		if err != nil {
			return err
		}
		return ingestSegments(cmd.Context(), segs, model.SourceTypeText, "")
	},
}

var ingestURLCmd = &cobra.Command{
	Use:   "ingest-url <url>",
	Short: "Fetch a URL's raw text and ingest it as a source",
	Long:  "HTML/PDF text extraction is an external collaborator outside this engine's scope; this command fetches the raw response body as-is. Run the result through a dedicated extractor first for marked-up pages.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, args[0], nil)
		if err != nil {
			return eris.Wrap(err, "build request")
		}
		if cfg.Providers.UserAgent != "" {
			req.Header.Set("User-Agent", cfg.Providers.UserAgent)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return eris.Wrap(err, "fetch url")
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return eris.Errorf("ingest-url: %s returned status %d", args[0], resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return eris.Wrap(err, "read response body")
		}
		segs, err := segment.FromText(string(body))
		if err != nil {
			return err
		}
		return ingestSegments(cmd.Context(), segs, model.SourceTypeURL, args[0])
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Download and transcribe an audio source, then ingest it",
	Long:  "Audio download and speech-to-text are external collaborators. This command does not perform them itself; transcribe a source externally and use ingest-text, or pass a transcript JSON file to transcribe.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eris.New("ingest: audio download/STT is delegated to an external collaborator; use 'transcribe <path>' with a pre-built transcript, or 'ingest-text'")
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <transcript-path>",
	Short: "Ingest a pre-built transcript JSON blob (segments with start/end/text)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}
		segs, err := segment.FromTranscript(data)
		if err != nil {
			return err
		}
		return ingestSegments(cmd.Context(), segs, model.SourceTypeAudio, "")
	},
}

func init() {
	for _, c := range []*cobra.Command{ingestTextCmd, ingestURLCmd} {
		c.Flags().StringVar(&ingestTitle, "title", "", "source title")
		c.Flags().StringVar(&ingestChannel, "channel", "", "source channel")
	}
	rootCmd.AddCommand(ingestCmd, ingestTextCmd, ingestURLCmd, transcribeCmd)
}
