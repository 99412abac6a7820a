package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docsum/internal/model"
	"docsum/internal/workflow"
)

const (
	msgUploadOK     = "File summarized successfully!"
	msgUploadFailed = "Error summarizing file!"
	msgDeleteOK     = "File deleted successfully!"
	msgDeleteFailed = "Error deleting file!"
	msgClearOK      = "All files deleted successfully!"
	msgClearFailed  = "Error deleting all files!"
	msgCancelled    = "Cancelled."

	promptDelete    = "Are you sure you want to delete this file?"
	promptDeleteAll = "Delete all files?"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				return err
			}

			docs := a.session.Documents.Snapshot()
			if len(docs) == 0 {
				cmd.Println("No files uploaded yet.")
				return nil
			}
			for _, doc := range docs {
				printListItem(cmd, doc)
			}
			cmd.Printf("Total: %d files\n", len(docs))
			return nil
		},
	}
}

func (a *app) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [path]",
		Short: "Upload a file and print its summary",
		Long:  `Uploads a .txt, .md, .pdf or .docx file to the summarizer service and prints the generated summary.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				a.log.Warn("initial_refresh_failed", zap.Error(err))
			}

			doc, err := a.session.Upload.Run(cmd.Context(), workflow.File{Name: args[0], Content: content})
			if err != nil {
				if !workflow.IsPrecondition(err) {
					cmd.PrintErrln(msgUploadFailed)
				}
				return err
			}

			cmd.Println(msgUploadOK)
			cmd.Println()
			printDetail(cmd, *doc)
			return nil
		},
	}
}

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "Show a file's content and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				return err
			}
			doc, err := a.session.Library.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDetail(cmd, *doc)
			return nil
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				return err
			}
			if !yes && !confirm(cmd, promptDelete) {
				cmd.Println(msgCancelled)
				return nil
			}
			if err := a.session.Library.Delete(cmd.Context(), args[0]); err != nil {
				cmd.PrintErrln(msgDeleteFailed)
				return err
			}
			cmd.Println(msgDeleteOK)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) deleteAllCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				return err
			}
			if !yes && !confirm(cmd, promptDeleteAll) {
				cmd.Println(msgCancelled)
				return nil
			}
			if err := a.session.Library.DeleteAll(cmd.Context()); err != nil {
				cmd.PrintErrln(msgClearFailed)
				return err
			}
			cmd.Println(msgClearOK)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) askCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Ask the AI assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := a.session.Assistant.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.Println(ex.Response)
			return nil
		},
	}
}

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		Long: `Launch the interactive terminal UI.

Controls:
  ↑/k, ↓/j - Move through files
  Enter    - View file
  c        - Clear selection
  u        - Upload a file
  a        - Ask the assistant
  d / D    - Delete file / delete all
  r        - Refresh
  q        - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.opts.RunTUI == nil {
				return errors.New("interactive UI is not available")
			}
			if err := a.session.Library.Refresh(cmd.Context()); err != nil {
				a.log.Warn("initial_refresh_failed", zap.Error(err))
			}
			return a.opts.RunTUI(cmd.Context(), a.session)
		},
	}
}

func printListItem(cmd *cobra.Command, doc model.Document) {
	cmd.Printf("%s  %s  (%s)\n", doc.ID, doc.Filename, doc.UploadedAtString())
	if doc.PreviewText != "" {
		cmd.Printf("    %s\n", oneLine(doc.PreviewText, 100))
	}
}

func printDetail(cmd *cobra.Command, doc model.Document) {
	cmd.Printf("File:        %s\n", doc.Filename)
	cmd.Printf("ID:          %s\n", doc.ID)
	cmd.Printf("Uploaded at: %s\n", doc.UploadedAtString())
	if doc.Content != "" {
		cmd.Println()
		cmd.Println("Content:")
		cmd.Println(doc.Content)
	}
	cmd.Println()
	cmd.Println("Summary:")
	cmd.Println(doc.Summary)
}

// oneLine collapses whitespace and cuts s to n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
