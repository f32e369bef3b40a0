package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

// confirmOverwrite asks before clobbering an existing output path. The --yes
// flag skips the prompt.
func confirmOverwrite(cmd *cobra.Command, path string) bool {
	if flag := cmd.Flag("yes"); flag != nil && flag.Value.String() == "true" {
		return true
	}

	if _, err := os.Stat(path); err != nil {
		return true
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("%s already exists. Overwrite?", path),
		Items: []string{PromptYes, PromptNo},
	}

	_, action, err := prompt.Run()
	return err == nil && action == PromptYes
}
