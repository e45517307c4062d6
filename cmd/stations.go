package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drshika/warm-ai-agent/internal/stations"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List known station locations and their codes",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Known WARM stations:")
		fmt.Println()

		for _, location := range stations.Locations() {
			code, _ := stations.Code(location)
			fmt.Printf("  %-20s %s\n", location, code)
		}
	},
}
