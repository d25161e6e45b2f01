package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dimchain/dimchain/pkg/model"
)

// viewsCommand creates the view listing command.
func (c *CLI) viewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views <document.json>",
		Short: "List the views available in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := model.ReadFile(args[0])
			if err != nil {
				return err
			}

			if doc.Name != "" {
				fmt.Println(StyleTitle.Render(doc.Name))
			}
			for _, v := range doc.Views {
				label := v.ID
				if v.Name != "" {
					label = fmt.Sprintf("%s · %s", v.ID, v.Name)
				}
				printKeyValue(v.Type, label)
			}
			printDetail("%d views, %d elements", len(doc.Views), len(doc.Elements))
			printNextStep("Dimension a view", fmt.Sprintf("%s dimension %s --views <id>", appName, args[0]))
			return nil
		},
	}
}
