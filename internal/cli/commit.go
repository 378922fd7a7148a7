package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/ui/styles"
	"github.com/caslab/casvc/internal/util"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit [ref]",
		Short: "Record staged changes as a new commit",
		Long: `Create a new commit from every staged change, advancing ref
(default "main") via an optimistic compare-and-swap against its prior
head commit. If the ref was moved by another writer in the meantime,
the commit fails with a concurrent-modification error and must be
retried.

The message can be given with -m, or is picked up from $CASVC_EDITOR
/ $VISUAL / $EDITOR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommit,
	}
	cmd.Flags().StringP("message", "m", "", "commit message")
	return cmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	refName := refArg(args)
	message, _ := cmd.Flags().GetString("message")

	if message == "" {
		var err error
		message, err = messageFromEditor()
		if err != nil {
			return err
		}
		if message == "" {
			return fmt.Errorf("aborting commit due to empty commit message")
		}
	}
	message = util.ToValidUTF8(message)

	commit, err := app.Engine.Commit(cmd.Context(), refName, message)
	if err != nil {
		if errors.Is(err, objects.ErrNoChangesToCommit) {
			return util.NoChangesError(err)
		}
		if errors.Is(err, objects.ErrConcurrentModification) {
			return util.ConcurrentModificationError(refName, err)
		}
		return err
	}

	author := app.cfg.GetUserName()
	if email := app.cfg.GetUserEmail(); email != "" {
		author = fmt.Sprintf("%s <%s>", author, email)
	}
	fmt.Printf("[%s %s] %s\n", styles.Ref(refName), styles.Hash(commit.Hash, true), firstLine(message))
	if author != "" {
		fmt.Printf("    %s\n", styles.Author(author))
	}
	return nil
}

func messageFromEditor() (string, error) {
	editor, err := findEditor()
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "CASVC_COMMIT_MSG_*.txt")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	template := "\n# Please enter a commit message. Lines starting with '#' are\n# ignored; an empty message aborts the commit.\n"
	if _, err := tmp.WriteString(template); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	editorCmd := exec.Command(editor, tmpPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	content, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}
	return parseCommitMessage(string(content)), nil
}

func parseCommitMessage(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func findEditor() (string, error) {
	for _, env := range []string{"CASVC_EDITOR", "VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			if path, err := exec.LookPath(editor); err == nil {
				return path, nil
			}
		}
	}
	for _, editor := range []string{"vi", "vim", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found; set $EDITOR or $CASVC_EDITOR, or use -m")
}
