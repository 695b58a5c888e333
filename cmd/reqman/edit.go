package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reqmanhq/reqman/internal/codec"
	"github.com/reqmanhq/reqman/internal/config"
)

var editCmd = &cobra.Command{
	Use:   "edit <number>",
	Short: "Edit a request as text",
	Long: `Edit a request in its plain-text form.

By default the request is opened in $EDITOR (falling back to vi). With
--file the edited text is read from the given file, and with "-" from
stdin, which allows scripted edits:

  reqman show 2 > req.txt && vi req.txt && reqman edit 2 --file req.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := requestIndex(args[0])
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("file")
		if path != "" {
			return applyEditFromFile(index, path)
		}
		return editRequest(index)
	},
}

func applyEditFromFile(index int, path string) error {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read edited text: %w", err)
	}

	return application.OnTextEdited(index, string(data))
}

// editRequest round-trips the request through a temp file and $EDITOR:
// encode, edit, decode, replace.
func editRequest(index int) error {
	def := application.Requests()[index]

	tmp, err := os.CreateTemp("", "reqman-edit-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create edit buffer: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(codec.Encode(def)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write edit buffer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close edit buffer: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	editCmd := exec.Command(editor, tmpName)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(tmpName)
	if err != nil {
		return fmt.Errorf("failed to read edited text: %w", err)
	}

	if err := application.OnTextEdited(index, string(edited)); err != nil {
		return err
	}

	fmt.Printf("Updated request %d (store: %s)\n", index+1, filepath.Base(config.RequestsFile))
	return nil
}
