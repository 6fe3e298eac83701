package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved column-mapping profiles",
	Long: `Profiles lists the saved column mappings. A profile is reused on
import when its headers match the file exactly; save one with
'budgetctl import --save-profile <name>'.`,

	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	profiles, err := s.LoadProfiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("No saved profiles.")
		return nil
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := profiles[name]
		fmt.Printf("%-20s date=%q description=%q amount=%q\n",
			name, m.Date, m.Description, m.Amount)
	}
	return nil
}
