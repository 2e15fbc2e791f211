package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

var watchNoResearch bool

const replySuffix = ".reply.txt"

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and draft replies for new inquiry files",
	Long: `Watches a directory for new .txt or .eml files. Each new file is
run through the drafting pipeline and the composed reply is written next
to it with a ` + replySuffix + ` suffix. Nothing is sent; drafted replies are
for review.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoResearch, "no-research", false, "skip the company research stage")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	svc, err := ensureReply()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for new inquiries. Press Ctrl+C to stop.\n", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) || !isInquiryFile(event.Name) {
				continue
			}
			if err := draftForFile(cmd, svc, event.Name); err != nil {
				logger.Warn("draft for %s failed: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// isInquiryFile accepts .txt and .eml files, ignoring replies this
// command wrote itself.
func isInquiryFile(path string) bool {
	if strings.HasSuffix(path, replySuffix) {
		return false
	}
	switch filepath.Ext(path) {
	case ".txt", ".eml":
		return true
	}
	return false
}

func draftForFile(cmd *cobra.Command, svc driving.ReplyService, path string) error {
	emailText, err := readEmailText(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if emailText == "" {
		return nil
	}

	cmd.Printf("Drafting reply for %s\n", filepath.Base(path))
	result, err := svc.Process(cmd.Context(), emailText, driving.ProcessOptions{
		SkipResearch: watchNoResearch,
	})
	if err != nil {
		return err
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + replySuffix
	if err := os.WriteFile(out, []byte(result.FinalResponse+"\n"), 0644); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	cmd.Printf("Wrote %s\n", filepath.Base(out))
	return nil
}
