package cli

import (
	"github.com/spf13/cobra"

	"github.com/ObiAU/contentagents/internal/models"
)

var smmCmd = &cobra.Command{
	Use:   "smm <post.md>",
	Short: "Generate and send social media posts for a Markdown post",
	Args:  cobra.ExactArgs(1),
	RunE:  runSMM,
}

func init() {
	rootCmd.AddCommand(smmCmd)
}

func runSMM(cmd *cobra.Command, args []string) error {
	a := loadApp()
	defer a.Close()

	res, err := a.SMM().Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println(headerStyle.Render("Social media posts generated and sent:"))
	for _, platform := range models.Platforms {
		cmd.Printf("%s %s\n", mark(res.Report.Results[platform]), platform)
	}
	cmd.Println("Results saved to: " + res.File)
	return nil
}
